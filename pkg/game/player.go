package game

import "cardtable/pkg/deck"

// Player is a participant with a durable score and per-round transient state.
// The score is the only field that survives a round reset.
type Player struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Bet   int       `json:"bet"`
	Hand  deck.Hand `json:"hand"`
	Stand bool      `json:"stand"`
}

// NewPlayer returns a player with the given starting score
func NewPlayer(name string, score int) *Player {
	return &Player{
		Name:  name,
		Score: score,
	}
}

// IncreaseScore adds amount to the player's score
func (p *Player) IncreaseScore(amount int) {
	p.Score += amount
}

// DecreaseScore subtracts amount from the player's score
func (p *Player) DecreaseScore(amount int) {
	p.Score -= amount
}

// ResetRound clears the per-round transient state. The hand keeps its backing
// array, and calling this on an already-reset player is a no-op.
func (p *Player) ResetRound() {
	p.Hand.Clear()
	p.Bet = 0
	p.Stand = false
}
