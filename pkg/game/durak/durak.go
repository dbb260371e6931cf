// Package durak implements the durak round machine: attack/defend bouts over
// a shared table, a trump suit drawn from the bottom of the deck, and hands
// refilled to six after every bout. The machine validates moves for both
// seats; it never plays the opponent's cards itself. The seat that empties
// its hand first wins and the seat left holding cards is the durak.
package durak

import (
	"cardtable/pkg/deck"
	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
)

// handTarget is the hand size both seats refill to after a bout
const handTarget = 6

// maxAttacks is the most attacks a defender can face in one bout
const maxAttacks = 6

// Seat identifies a participant in the round
type Seat int

// seat constants
const (
	SeatPlayer Seat = iota
	SeatOpponent
)

func (s Seat) other() Seat {
	if s == SeatPlayer {
		return SeatOpponent
	}

	return SeatPlayer
}

// Pair is one attack on the table and the card covering it, if any
type Pair struct {
	Attack  *deck.Card `json:"attack"`
	Defense *deck.Card `json:"defense"`
}

type state int

const (
	stateIdle state = iota
	stateAttacking
	stateDefending
	stateResolved
)

// Machine is a durak round state machine for a single player session
type Machine struct {
	player   *game.Player
	opponent deck.Hand
	deck     *deck.Deck
	trump    *deck.Card
	table    []*Pair
	attacker Seat
	state    state
	logger   logrus.FieldLogger
	recorder game.Recorder
	saver    game.Saver
}

// New returns a durak machine owned by the given player
func New(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) *Machine {
	return &Machine{
		player:   player,
		logger:   logger.WithField("game", "durak"),
		recorder: recorder,
		saver:    saver,
	}
}

// Name returns the display name of the game
func (m *Machine) Name() string {
	return "Durak"
}

// Key returns a unique key
func (m *Machine) Key() string {
	return "durak"
}

// MinBet is a twentieth of the player's score
func (m *Machine) MinBet() int {
	return m.player.Score / 20
}

// MaxBet is half of the player's score
func (m *Machine) MaxBet() int {
	return m.player.Score / 2
}

// PlaceBet validates the bet, deals six cards to each seat, and fixes the
// trump as the bottom card of the deck. The player attacks first.
func (m *Machine) PlaceBet(amount int) error {
	if m.state != stateIdle {
		return game.ErrRoundInProgress
	}

	if amount <= 0 || amount < m.MinBet() || amount > m.MaxBet() {
		return game.BetError{Min: m.MinBet(), Max: m.MaxBet(), Got: amount}
	}

	m.player.Bet = amount

	d := deck.New()
	d.Shuffle()
	m.deck = d

	for i := 0; i < handTarget; i++ {
		m.player.Hand.AddCard(m.deck.Draw())
		m.opponent.AddCard(m.deck.Draw())
	}

	// the bottom card is revealed as the trump and is the last card drawn
	m.trump = m.deck.Cards[m.deck.CardsLeft()-1]

	m.attacker = SeatPlayer
	m.state = stateAttacking

	m.logger.WithFields(logrus.Fields{
		"player": m.player.Name,
		"bet":    amount,
		"trump":  m.trump.Suit,
	}).Info("round started")

	return nil
}

// Beats returns true if the defense card beats the attack card under the
// given trump suit: higher rank in the same suit, or any trump over a
// non-trump.
func Beats(defense, attack *deck.Card, trump deck.Suit) bool {
	if defense.Suit == attack.Suit {
		return defense.Rank > attack.Rank
	}

	return defense.Suit == trump && attack.Suit != trump
}

// Trump returns the trump card, or nil before a round started
func (m *Machine) Trump() *deck.Card {
	return m.trump
}

// Table returns the attack/defense pairs of the current bout
func (m *Machine) Table() []*Pair {
	return m.table
}

// Opponent returns the opponent's hand
func (m *Machine) Opponent() deck.Hand {
	return m.opponent
}

// CardsLeft returns the number of cards remaining in the deck
func (m *Machine) CardsLeft() int {
	if m.deck == nil {
		return 0
	}

	return m.deck.CardsLeft()
}

// Attacker returns the seat currently attacking
func (m *Machine) Attacker() Seat {
	return m.attacker
}

// Turn returns the seat expected to act
func (m *Machine) Turn() Seat {
	if m.state == stateDefending {
		return m.attacker.other()
	}

	return m.attacker
}

func (m *Machine) handOf(s Seat) *deck.Hand {
	if s == SeatPlayer {
		return &m.player.Hand
	}

	return &m.opponent
}

// tableHasRank reports whether the rank already appears in the bout
func (m *Machine) tableHasRank(rank deck.Rank) bool {
	for _, pair := range m.table {
		if pair.Attack.Rank == rank {
			return true
		}

		if pair.Defense != nil && pair.Defense.Rank == rank {
			return true
		}
	}

	return false
}

// canAttack reports whether the attacker may add another card this bout
func (m *Machine) canAttack() bool {
	defender := m.handOf(m.attacker.other())
	return len(m.table) < maxAttacks && len(*defender) > 0
}

// Act performs an action for the seat whose turn it is
func (m *Machine) Act(req *game.Request) (*game.Response, error) {
	switch m.state {
	case stateAttacking:
		switch req.Action {
		case game.ActionAttack:
			return nil, m.attack(req.Cards)
		case game.ActionPass:
			return nil, m.pass()
		}
	case stateDefending:
		switch req.Action {
		case game.ActionDefend:
			return nil, m.defend(req.Cards)
		case game.ActionTake:
			return nil, m.take()
		}
	case stateIdle, stateResolved:
		return nil, game.ErrNoActiveRound
	}

	return nil, game.ErrIllegalAction
}

// attack plays one card from the attacker's hand onto the table
func (m *Machine) attack(cards []*deck.Card) error {
	if len(cards) != 1 {
		return ErrCardNotHeld
	}
	card := cards[0]

	hand := m.handOf(m.attacker)
	if !hand.HasCard(card) {
		return ErrCardNotHeld
	}

	if !m.canAttack() {
		return ErrAttackLimit
	}

	if len(m.table) > 0 && !m.tableHasRank(card.Rank) {
		return ErrAttackRankMismatch
	}

	hand.Discard(card)
	m.table = append(m.table, &Pair{Attack: card})
	m.state = stateDefending

	return nil
}

// defend covers the open attack with one card from the defender's hand
func (m *Machine) defend(cards []*deck.Card) error {
	if len(cards) != 1 {
		return ErrCardNotHeld
	}
	card := cards[0]

	hand := m.handOf(m.attacker.other())
	if !hand.HasCard(card) {
		return ErrCardNotHeld
	}

	open := m.table[len(m.table)-1]
	if !Beats(card, open.Attack, m.trump.Suit) {
		return ErrDefenseTooWeak
	}

	hand.Discard(card)
	open.Defense = card
	m.state = stateAttacking

	return nil
}

// pass ends the bout with every attack beaten: the table is discarded, both
// hands refill, and the roles swap
func (m *Machine) pass() error {
	if len(m.table) == 0 {
		return ErrNothingToPass
	}

	m.endBout(true)
	return nil
}

// take ends the bout with the defender picking up the whole table; the
// attacker keeps the attack
func (m *Machine) take() error {
	defender := m.handOf(m.attacker.other())
	for _, pair := range m.table {
		defender.AddCard(pair.Attack)
		if pair.Defense != nil {
			defender.AddCard(pair.Defense)
		}
	}

	m.endBout(false)
	return nil
}

// endBout discards the table, refills both hands attacker-first, swaps the
// roles if the defense held, and checks for the end of the game
func (m *Machine) endBout(defended bool) {
	m.table = nil

	m.refill(m.attacker)
	m.refill(m.attacker.other())

	if defended {
		m.attacker = m.attacker.other()
	}

	if m.deck.CardsLeft() == 0 && (len(m.player.Hand) == 0 || len(m.opponent) == 0) {
		m.state = stateResolved
		return
	}

	m.state = stateAttacking
}

// refill draws the seat's hand back up to six while the deck lasts
func (m *Machine) refill(s Seat) {
	hand := m.handOf(s)
	for len(*hand) < handTarget && m.deck.CanDraw(1) {
		hand.AddCard(m.deck.Draw())
	}
}

// LegalActions returns the actions accepted for the seat whose turn it is
func (m *Machine) LegalActions() []game.Action {
	switch m.state {
	case stateIdle:
		return []game.Action{game.ActionBet}
	case stateAttacking:
		actions := make([]game.Action, 0, 2)
		if m.canAttack() {
			actions = append(actions, game.ActionAttack)
		}

		if len(m.table) > 0 {
			actions = append(actions, game.ActionPass)
		}

		return actions
	case stateDefending:
		return []game.Action{game.ActionDefend, game.ActionTake}
	}

	return nil
}

// ShouldEnd returns true once a seat has gone out with the deck exhausted
func (m *Machine) ShouldEnd() bool {
	return m.state == stateResolved
}

// Resolve determines the durak, applies the score delta, records the
// outcome, resets the round, and requests a save
func (m *Machine) Resolve() (*game.Result, error) {
	if m.state == stateIdle {
		return nil, game.ErrNoActiveRound
	}

	if m.state != stateResolved {
		return nil, game.ErrRoundNotOver
	}

	bet := m.player.Bet
	playerOut := len(m.player.Hand) == 0
	opponentOut := len(m.opponent) == 0

	var result *game.Result
	switch {
	case playerOut && opponentOut:
		result = game.NewResult(m.Key(), game.Push, "Push. Both hands went out together", 0)
	case playerOut:
		result = game.NewResult(m.Key(), game.Won, "You've won: opponent is the durak", bet)
	case opponentOut:
		result = game.NewResult(m.Key(), game.Lost, "You've lost: you are the durak", -bet)
	default:
		// stateResolved is only entered with at least one empty hand
		panic("unresolvable durak result")
	}

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

	return result, nil
}

// Reset clears the table, both hands, and the bet. Calling it again is a
// no-op.
func (m *Machine) Reset() {
	m.player.ResetRound()
	m.opponent.Clear()
	m.table = nil
	m.deck = nil
	m.trump = nil
	m.attacker = SeatPlayer
	m.state = stateIdle
}
