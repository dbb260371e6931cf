// Package videopoker implements the video poker round machine: bet, a
// five-card deal, one hold/redraw phase, and a payout keyed off the detected
// combination.
package videopoker

import (
	"errors"
	"fmt"

	"cardtable/pkg/deck"
	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
)

const handSize = 5

// ErrInvalidHold is returned when the held cards are not all in the hand
var ErrInvalidHold = errors.New("held cards must be distinct cards from your hand")

// payouts maps a combination to its bet multiplier. A hand with no
// combination loses the bet.
var payouts = map[Combination]int{
	OnePair:            1,
	TwoPair:            2,
	ThreeOfAKind:       3,
	Straight:           4,
	Flush:              5,
	FullHouse:          8,
	FourOfAKind:        25,
	StraightFlush:      50,
	RoyalStraightFlush: 100,
}

type state int

const (
	stateIdle state = iota
	stateBetting
	stateDealt
	stateDrawing
	stateDrawn
)

// Machine is a video poker round state machine for a single player session
type Machine struct {
	player   *game.Player
	deck     *deck.Deck
	state    state
	logger   logrus.FieldLogger
	recorder game.Recorder
	saver    game.Saver
}

// New returns a video poker machine owned by the given player
func New(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) *Machine {
	return &Machine{
		player:   player,
		logger:   logger.WithField("game", "video-poker"),
		recorder: recorder,
		saver:    saver,
	}
}

// Name returns the display name of the game
func (m *Machine) Name() string {
	return "Video Poker"
}

// Key returns a unique key
func (m *Machine) Key() string {
	return "video-poker"
}

// MinBet is a twentieth of the player's score
func (m *Machine) MinBet() int {
	return m.player.Score / 20
}

// MaxBet is half of the player's score
func (m *Machine) MaxBet() int {
	return m.player.Score / 2
}

// PlaceBet validates the bet and deals five cards from a fresh deck
func (m *Machine) PlaceBet(amount int) error {
	if m.state != stateIdle {
		return game.ErrRoundInProgress
	}

	if amount <= 0 || amount < m.MinBet() || amount > m.MaxBet() {
		return game.BetError{Min: m.MinBet(), Max: m.MaxBet(), Got: amount}
	}

	m.state = stateBetting
	m.player.Bet = amount

	d := deck.New()
	d.Shuffle()
	m.deck = d
	m.state = stateDealt

	for i := 0; i < handSize; i++ {
		m.player.Hand.AddCard(m.deck.Draw())
	}
	m.state = stateDrawing

	m.logger.WithFields(logrus.Fields{
		"player": m.player.Name,
		"bet":    amount,
	}).Info("round started")

	return nil
}

// Act performs a player action. The only mid-round action is the single
// draw: the request names the cards to hold and the rest are replaced.
func (m *Machine) Act(req *game.Request) (*game.Response, error) {
	if m.state != stateDrawing {
		return nil, game.ErrNoActiveRound
	}

	if req.Action != game.ActionDraw {
		return nil, game.ErrIllegalAction
	}

	drawn, err := m.draw(req.Cards)
	if err != nil {
		return nil, err
	}

	return &game.Response{Cards: drawn}, nil
}

// draw replaces every card not held and returns the replacements
func (m *Machine) draw(held []*deck.Card) ([]*deck.Card, error) {
	uniq := make(map[string]bool)
	for _, card := range held {
		if !m.player.Hand.HasCard(card) {
			return nil, ErrInvalidHold
		}

		uniq[card.String()] = true
	}

	if len(uniq) != len(held) {
		return nil, ErrInvalidHold
	}

	keep := deck.Hand(held)
	drawn := make([]*deck.Card, 0, handSize-len(held))
	hand := make(deck.Hand, 0, handSize)
	for _, card := range m.player.Hand {
		if keep.HasCard(card) {
			hand.AddCard(card)
			continue
		}

		replacement := m.deck.Draw()
		hand.AddCard(replacement)
		drawn = append(drawn, replacement)
	}

	m.player.Hand = hand
	m.state = stateDrawn
	return drawn, nil
}

// LegalActions returns the actions accepted in the current state
func (m *Machine) LegalActions() []game.Action {
	switch m.state {
	case stateIdle:
		return []game.Action{game.ActionBet}
	case stateDrawing:
		return []game.Action{game.ActionDraw}
	}

	return nil
}

// ShouldEnd returns true once the single redraw has happened
func (m *Machine) ShouldEnd() bool {
	return m.state == stateDrawn
}

// Combination returns the current best combination of the player's hand
func (m *Machine) Combination() Combination {
	return NewCombinations(m.player.Hand).Best()
}

// Resolve pays out the detected combination, records the outcome, resets the
// round, and requests a save
func (m *Machine) Resolve() (*game.Result, error) {
	if m.state == stateIdle {
		return nil, game.ErrNoActiveRound
	}

	if m.state != stateDrawn {
		return nil, game.ErrRoundNotOver
	}

	bet := m.player.Bet
	combination := m.Combination()

	var result *game.Result
	if multiplier, ok := payouts[combination]; ok {
		result = game.NewResult(m.Key(), game.Won, fmt.Sprintf("You've won: %s", combination), bet*multiplier)
	} else {
		result = game.NewResult(m.Key(), game.Lost, "You've lost: no combination", -bet)
	}

	switch {
	case result.Delta > 0:
		m.player.IncreaseScore(result.Delta)
	case result.Delta < 0:
		m.player.DecreaseScore(-result.Delta)
	}

	m.recorder.RecordOutcome(m.player.Name, m.Key(), result.Outcome)

	m.logger.WithFields(logrus.Fields{
		"player":      m.player.Name,
		"combination": combination.String(),
		"outcome":     result.Outcome,
		"delta":       result.Delta,
	}).Info("round resolved")

	m.Reset()
	m.saver.RequestSave()

	return result, nil
}

// Reset clears the hand and bet. Calling it again is a no-op.
func (m *Machine) Reset() {
	m.player.ResetRound()
	m.deck = nil
	m.state = stateIdle
}
