package game

import (
	"errors"
	"fmt"
)

// ErrRoundInProgress is returned when a bet is placed while a round is active
var ErrRoundInProgress = errors.New("a round is already in progress")

// ErrNoActiveRound is returned when an action requires an active round
var ErrNoActiveRound = errors.New("no active round")

// ErrRoundNotOver is returned when Resolve is called before the round ended
var ErrRoundNotOver = errors.New("the round is not over")

// ErrIllegalAction is returned when an action is not legal in the current state
var ErrIllegalAction = errors.New("action not allowed right now")

// BetError is returned when a bet falls outside the allowed bounds
type BetError struct {
	Min int
	Max int
	Got int
}

func (b BetError) Error() string {
	return fmt.Sprintf("bet must be between %d and %d, got %d", b.Min, b.Max, b.Got)
}
