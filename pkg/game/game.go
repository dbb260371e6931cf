// Package game defines the surface shared by every card-game round machine:
// the action envelope the driver sends, the result a resolved round produces,
// and the collaborator contracts for statistics and persistence.
package game

import (
	"time"

	"cardtable/pkg/deck"

	"github.com/google/uuid"
)

// Outcome is the terminal result of a round from the player's point of view
type Outcome string

// outcome constants
const (
	Won  Outcome = "won"
	Lost Outcome = "lost"
	Push Outcome = "push"
)

// Action is a player action a machine may accept
type Action string

// action constants
const (
	ActionBet    Action = "bet"
	ActionHit    Action = "hit"
	ActionStand  Action = "stand"
	ActionDouble Action = "double"
	ActionDraw   Action = "draw"
	ActionAttack Action = "attack"
	ActionDefend Action = "defend"
	ActionPass   Action = "pass"
	ActionTake   Action = "take"
)

// Request is the envelope the driver sends for a player action.
// Amount is only meaningful for a bet, Cards for actions that name cards
// (video poker holds, durak attacks and defenses).
type Request struct {
	Action Action       `json:"action"`
	Amount int          `json:"amount"`
	Cards  []*deck.Card `json:"cards"`
}

// Response is a machine's direct reply to an action, when there is one.
// A nil Card on a double means the player could not afford it.
type Response struct {
	Card  *deck.Card   `json:"card,omitempty"`
	Cards []*deck.Card `json:"cards,omitempty"`
}

// Result describes a resolved round
type Result struct {
	ID      string    `json:"id"`
	Game    string    `json:"game"`
	Outcome Outcome   `json:"outcome"`
	Summary string    `json:"summary"`
	Delta   int       `json:"delta"`
	Time    time.Time `json:"time"`
}

// NewResult returns a Result stamped with a fresh ID and the current time
func NewResult(game string, outcome Outcome, summary string, delta int) *Result {
	return &Result{
		ID:      uuid.New().String(),
		Game:    game,
		Outcome: outcome,
		Summary: summary,
		Delta:   delta,
		Time:    time.Now(),
	}
}

// Machine is a per-game round state machine. A machine is exclusively owned
// by one player session and is never shared across goroutines.
type Machine interface {
	// Name returns the display name of the game
	Name() string

	// Key returns a unique key
	Key() string

	// MinBet and MaxBet are the current bet bounds for the owning player
	MinBet() int
	MaxBet() int

	// PlaceBet starts a round: validates the amount, deals the initial hands
	PlaceBet(amount int) error

	// Act performs a player action in the current round
	Act(req *Request) (*Response, error)

	// LegalActions returns the actions currently accepted by Act (or PlaceBet)
	LegalActions() []Action

	// ShouldEnd returns true once the round has reached a terminal condition
	ShouldEnd() bool

	// Resolve computes the outcome, applies the score delta, records the
	// outcome with the statistics collaborator, requests a save, and resets
	// the round
	Resolve() (*Result, error)

	// Reset abandons the round, clearing all transient state. Safe to call
	// repeatedly.
	Reset()
}

// Recorder is the statistics collaborator. The machines call it once per
// resolved round; they never read it back.
type Recorder interface {
	RecordOutcome(playerName, gameKey string, outcome Outcome)
}

// Saver is the persistence trigger. RequestSave must not block and the
// machines never observe whether the save succeeded.
type Saver interface {
	RequestSave()
}
