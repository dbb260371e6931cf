// Package blackjack implements the blackjack round machine: bet, deal,
// hit/stand/double, and the fixed-precedence resolution against the dealer.
package blackjack

import (
	"fmt"
	"math"

	"cardtable/pkg/deck"
	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
)

type state int

const (
	stateIdle state = iota
	stateBetting
	stateDealt
	statePlayerActing
)

// Machine is a blackjack round state machine for a single player session
type Machine struct {
	player   *game.Player
	dealer   deck.Hand
	deck     *deck.Deck
	state    state
	logger   logrus.FieldLogger
	recorder game.Recorder
	saver    game.Saver
}

// New returns a blackjack machine owned by the given player
func New(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) *Machine {
	return &Machine{
		player:   player,
		logger:   logger.WithField("game", "blackjack"),
		recorder: recorder,
		saver:    saver,
	}
}

// Name returns the display name of the game
func (m *Machine) Name() string {
	return "Blackjack"
}

// Key returns a unique key
func (m *Machine) Key() string {
	return "blackjack"
}

// MinBet is a twentieth of the player's score
func (m *Machine) MinBet() int {
	return m.player.Score / 20
}

// MaxBet is half of the player's score
func (m *Machine) MaxBet() int {
	return m.player.Score / 2
}

// PlaceBet validates the bet, deals the opening hands from a fresh deck, and
// leaves the machine waiting on player actions
func (m *Machine) PlaceBet(amount int) error {
	if m.state != stateIdle {
		return game.ErrRoundInProgress
	}

	if amount <= 0 || amount < m.MinBet() || amount > m.MaxBet() {
		return game.BetError{Min: m.MinBet(), Max: m.MaxBet(), Got: amount}
	}

	m.state = stateBetting
	m.player.Bet = amount
	m.dealCards()
	m.state = statePlayerActing

	m.logger.WithFields(logrus.Fields{
		"player": m.player.Name,
		"bet":    amount,
	}).Info("round started")

	return nil
}

// dealCards replaces the deck and deals two cards each to the dealer and the
// player. The dealer's hand is fixed here; the dealer never draws again.
func (m *Machine) dealCards() {
	d := deck.New()
	d.Shuffle()
	m.deck = d
	m.state = stateDealt

	m.dealer.AddCard(m.deck.Draw())
	m.dealer.AddCard(m.deck.Draw())
	m.player.Hand.AddCard(m.deck.Draw())
	m.player.Hand.AddCard(m.deck.Draw())
}

// Act performs a player action
func (m *Machine) Act(req *game.Request) (*game.Response, error) {
	if m.state != statePlayerActing {
		return nil, game.ErrNoActiveRound
	}

	switch req.Action {
	case game.ActionHit:
		return &game.Response{Card: m.hit()}, nil
	case game.ActionStand:
		m.player.Stand = true
		return nil, nil
	case game.ActionDouble:
		return &game.Response{Card: m.double()}, nil
	}

	return nil, game.ErrIllegalAction
}

// hit draws a card into the player's hand and returns it
func (m *Machine) hit() *deck.Card {
	card := m.deck.Draw()
	m.player.Hand.AddCard(card)
	return card
}

// double doubles the bet and hits once. If the player cannot cover the
// doubled bet, nil is returned and nothing changes; callers must check.
func (m *Machine) double() *deck.Card {
	newBet := m.player.Bet * 2
	if m.player.Score < newBet {
		return nil
	}

	m.player.Bet = newBet
	return m.hit()
}

// LegalActions returns the actions accepted in the current state
func (m *Machine) LegalActions() []game.Action {
	switch m.state {
	case stateIdle:
		return []game.Action{game.ActionBet}
	case statePlayerActing:
		if m.ShouldEnd() {
			return nil
		}

		return []game.Action{game.ActionHit, game.ActionStand, game.ActionDouble}
	}

	return nil
}

// ShouldEnd returns true if the player has blackjack, busted, or stood.
// The driver must check this after every action and route to Resolve.
func (m *Machine) ShouldEnd() bool {
	if m.state != statePlayerActing {
		return false
	}

	if IsBlackjack(m.player.Hand) {
		return true
	}

	if Value(m.player.Hand) > blackjack {
		return true
	}

	return m.player.Stand
}

// PlayerValue returns the current value of the player's hand
func (m *Machine) PlayerValue() int {
	return Value(m.player.Hand)
}

// Dealer returns the dealer's hand
func (m *Machine) Dealer() deck.Hand {
	return m.dealer
}

// Resolve compares the hands in fixed precedence order, applies the score
// delta, records the outcome, resets the round, and requests a save
func (m *Machine) Resolve() (*game.Result, error) {
	if m.state != statePlayerActing {
		return nil, game.ErrNoActiveRound
	}

	if !m.ShouldEnd() {
		return nil, game.ErrRoundNotOver
	}

	bet := m.player.Bet
	playerValue := Value(m.player.Hand)
	dealerValue := Value(m.dealer)
	playerBlackjack := IsBlackjack(m.player.Hand)
	dealerBlackjack := IsBlackjack(m.dealer)

	var result *game.Result
	switch {
	case !playerBlackjack && dealerBlackjack:
		result = game.NewResult(m.Key(), game.Lost, "You've lost. Dealer has blackjack", -bet)
	case playerBlackjack && dealerBlackjack:
		result = game.NewResult(m.Key(), game.Push, "Push. Dealer has blackjack too", 0)
	case playerBlackjack:
		result = game.NewResult(m.Key(), game.Won, "You've won: blackjack", int(math.Round(float64(bet)*1.5)))
	case playerValue > blackjack:
		result = game.NewResult(m.Key(), game.Lost, "You've lost: overtake", -bet)
	case dealerValue > blackjack && playerValue <= blackjack:
		result = game.NewResult(m.Key(), game.Won, "You've won: dealer overtake", bet)
	case playerValue > dealerValue:
		result = game.NewResult(m.Key(), game.Won, "You've won: you have more points than dealer", bet)
	case playerValue == dealerValue:
		result = game.NewResult(m.Key(), game.Push, "Push. Your points with dealer are equal.", 0)
	case playerValue < dealerValue:
		result = game.NewResult(m.Key(), game.Lost, fmt.Sprintf("You've lost: dealer has more points (%d)", dealerValue), -bet)
	default:
		// the comparisons above cover the whole space
		panic("unresolvable blackjack result")
	}

	m.finish(result)
	return result, nil
}

// finish applies the result to the player and notifies the collaborators
func (m *Machine) finish(result *game.Result) {
	switch {
	case result.Delta > 0:
		m.player.IncreaseScore(result.Delta)
	case result.Delta < 0:
		m.player.DecreaseScore(-result.Delta)
	}

	m.recorder.RecordOutcome(m.player.Name, m.Key(), result.Outcome)

	m.logger.WithFields(logrus.Fields{
		"player":  m.player.Name,
		"outcome": result.Outcome,
		"delta":   result.Delta,
	}).Info("round resolved")

	m.Reset()
	m.saver.RequestSave()
}

// Reset clears both hands, the bet, and the stand flag. Calling it again is
// a no-op.
func (m *Machine) Reset() {
	m.player.ResetRound()
	m.dealer.Clear()
	m.deck = nil
	m.state = stateIdle
}
