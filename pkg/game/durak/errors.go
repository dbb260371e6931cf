package durak

import "errors"

// ErrCardNotHeld is returned when the acting seat doesn't hold the card
var ErrCardNotHeld = errors.New("you do not have that card")

// ErrAttackRankMismatch is returned when a follow-up attack's rank is not on the table
var ErrAttackRankMismatch = errors.New("attack rank must already be on the table")

// ErrAttackLimit is returned when no further attack is allowed this bout
var ErrAttackLimit = errors.New("no further attacks are allowed")

// ErrDefenseTooWeak is returned when the defense card does not beat the attack
var ErrDefenseTooWeak = errors.New("that card does not beat the attack")

// ErrNothingToPass is returned when the attacker passes with an empty table
var ErrNothingToPass = errors.New("no attack to pass on")
