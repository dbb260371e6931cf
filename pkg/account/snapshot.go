package account

import (
	"sort"

	"cardtable/pkg/game"
)

// PlayerRecord is a player's durable state
type PlayerRecord struct {
	Name  string
	Score int
}

// StatRecord is one player's tally for one game
type StatRecord struct {
	Player string
	Game   string
	Won    int
	Lost   int
	Push   int
}

// Snapshot is a point-in-time copy of the controller's durable state,
// detached from the live structs so it can be written out without holding
// the lock
type Snapshot struct {
	Players []PlayerRecord
	Stats   []StatRecord
}

// Snapshot returns the controller's durable state. Transient round state
// (bet, hand, stand) is deliberately left out; only the score survives.
func (c *Controller) Snapshot() *Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.players))
	for name := range c.players {
		names = append(names, name)
	}
	sort.Strings(names)

	snapshot := &Snapshot{
		Players: make([]PlayerRecord, 0, len(names)),
		Stats:   make([]StatRecord, 0),
	}

	for _, name := range names {
		snapshot.Players = append(snapshot.Players, PlayerRecord{
			Name:  name,
			Score: c.players[name].Score,
		})

		byGame := c.stats[name]
		gameKeys := make([]string, 0, len(byGame))
		for gameKey := range byGame {
			gameKeys = append(gameKeys, gameKey)
		}
		sort.Strings(gameKeys)

		for _, gameKey := range gameKeys {
			stat := byGame[gameKey]
			snapshot.Stats = append(snapshot.Stats, StatRecord{
				Player: name,
				Game:   gameKey,
				Won:    stat.Won,
				Lost:   stat.Lost,
				Push:   stat.Push,
			})
		}
	}

	return snapshot
}

// Restore replaces the controller's state with the snapshot's
func (c *Controller) Restore(snapshot *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.players = make(map[string]*game.Player, len(snapshot.Players))
	for _, record := range snapshot.Players {
		c.players[record.Name] = game.NewPlayer(record.Name, record.Score)
	}

	c.stats = make(map[string]map[string]*Statistic)
	for _, record := range snapshot.Stats {
		byGame, ok := c.stats[record.Player]
		if !ok {
			byGame = make(map[string]*Statistic)
			c.stats[record.Player] = byGame
		}

		byGame[record.Game] = &Statistic{
			Won:  record.Won,
			Lost: record.Lost,
			Push: record.Push,
		}
	}
}
