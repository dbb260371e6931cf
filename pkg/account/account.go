// Package account owns the player registry and per-game statistics. The
// round machines only ever call RecordOutcome on it; everything else is for
// the driver and the persistence layer.
package account

import (
	"errors"
	"sort"
	"sync"

	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
)

// ErrPlayerExists is returned when registering a name that is already taken
var ErrPlayerExists = errors.New("a player with that name already exists")

// ErrEmptyName is returned when registering an empty player name
var ErrEmptyName = errors.New("player name cannot be empty")

// Statistic is a per-player, per-game outcome tally
type Statistic struct {
	Won  int `json:"won"`
	Lost int `json:"lost"`
	Push int `json:"push"`
}

// Controller is the game controller: it registers players and tallies
// outcomes. A mutex guards it because the save worker snapshots it from its
// own goroutine; the engine itself is single-threaded.
type Controller struct {
	mu            sync.Mutex
	startingScore int
	players       map[string]*game.Player
	stats         map[string]map[string]*Statistic
	logger        logrus.FieldLogger
}

// NewController returns an empty controller. New players start with the
// given score.
func NewController(logger logrus.FieldLogger, startingScore int) *Controller {
	return &Controller{
		startingScore: startingScore,
		players:       make(map[string]*game.Player),
		stats:         make(map[string]map[string]*Statistic),
		logger:        logger,
	}
}

// Register creates a new player with the starting score
func (c *Controller) Register(name string) (*game.Player, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.players[name]; ok {
		return nil, ErrPlayerExists
	}

	player := game.NewPlayer(name, c.startingScore)
	c.players[name] = player

	c.logger.WithField("player", name).Info("player registered")
	return player, nil
}

// Player returns the registered player by name
func (c *Controller) Player(name string) (*game.Player, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, ok := c.players[name]
	return player, ok
}

// Names returns the registered player names in a stable order
func (c *Controller) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.players))
	for name := range c.players {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// RecordOutcome tallies a resolved round for the player
func (c *Controller) RecordOutcome(playerName, gameKey string, outcome game.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byGame, ok := c.stats[playerName]
	if !ok {
		byGame = make(map[string]*Statistic)
		c.stats[playerName] = byGame
	}

	stat, ok := byGame[gameKey]
	if !ok {
		stat = &Statistic{}
		byGame[gameKey] = stat
	}

	switch outcome {
	case game.Won:
		stat.Won++
	case game.Lost:
		stat.Lost++
	case game.Push:
		stat.Push++
	default:
		panic("unknown outcome")
	}
}

// StatsFor returns a copy of the player's per-game statistics
func (c *Controller) StatsFor(playerName string) map[string]Statistic {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := make(map[string]Statistic)
	for gameKey, stat := range c.stats[playerName] {
		stats[gameKey] = *stat
	}

	return stats
}
