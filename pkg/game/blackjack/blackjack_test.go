package blackjack

import (
	"io"
	"testing"

	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type recordedOutcome struct {
	player  string
	gameKey string
	outcome game.Outcome
}

type fakeRecorder struct {
	outcomes []recordedOutcome
}

func (r *fakeRecorder) RecordOutcome(playerName, gameKey string, outcome game.Outcome) {
	r.outcomes = append(r.outcomes, recordedOutcome{playerName, gameKey, outcome})
}

type fakeSaver struct {
	saves int
}

func (s *fakeSaver) RequestSave() {
	s.saves++
}

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestMachine(score int) (*Machine, *fakeRecorder, *fakeSaver) {
	recorder := &fakeRecorder{}
	saver := &fakeSaver{}
	player := game.NewPlayer("alice", score)
	return New(testLogger(), player, recorder, saver), recorder, saver
}

func TestMachine_PlaceBet(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)

	a.Equal(50, m.MinBet())
	a.Equal(500, m.MaxBet())
	a.Equal([]game.Action{game.ActionBet}, m.LegalActions())

	a.Equal(game.BetError{Min: 50, Max: 500, Got: -5}, m.PlaceBet(-5))
	a.Equal(game.BetError{Min: 50, Max: 500, Got: 0}, m.PlaceBet(0))
	a.Equal(game.BetError{Min: 50, Max: 500, Got: 49}, m.PlaceBet(49))
	a.Equal(game.BetError{Min: 50, Max: 500, Got: 501}, m.PlaceBet(501))

	a.NoError(m.PlaceBet(100))
	a.Equal(100, m.player.Bet)
	a.Len(m.player.Hand, 2)
	a.Len(m.dealer, 2)
	a.Equal(48, m.deck.CardsLeft())

	a.Equal(game.ErrRoundInProgress, m.PlaceBet(100))
}

func TestMachine_Hit(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)

	_, err := m.Act(&game.Request{Action: game.ActionHit})
	a.Equal(game.ErrNoActiveRound, err)

	a.NoError(m.PlaceBet(100))
	res, err := m.Act(&game.Request{Action: game.ActionHit})
	a.NoError(err)
	a.NotNil(res.Card)
	a.Len(m.player.Hand, 3)
	a.Equal(res.Card, m.player.Hand[2])
}

func TestMachine_Stand(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)

	a.NoError(m.PlaceBet(100))
	res, err := m.Act(&game.Request{Action: game.ActionStand})
	a.NoError(err)
	a.Nil(res)
	a.True(m.player.Stand)
	a.True(m.ShouldEnd())
	a.Nil(m.LegalActions())
}

func TestMachine_Double(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)

	a.NoError(m.PlaceBet(300))
	res, err := m.Act(&game.Request{Action: game.ActionDouble})
	a.NoError(err)
	a.NotNil(res.Card)
	a.Equal(600, m.player.Bet)
	a.Len(m.player.Hand, 3)
}

func TestMachine_DoubleInsufficientScore(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)

	a.NoError(m.PlaceBet(300))
	m.player.Score = 500

	// no card drawn and the bet unchanged; the caller must check
	res, err := m.Act(&game.Request{Action: game.ActionDouble})
	a.NoError(err)
	a.Nil(res.Card)
	a.Equal(300, m.player.Bet)
	a.Len(m.player.Hand, 2)
}

func TestMachine_UnknownAction(t *testing.T) {
	m, _, _ := newTestMachine(1000)
	assert.NoError(t, m.PlaceBet(100))

	_, err := m.Act(&game.Request{Action: game.ActionAttack})
	assert.Equal(t, game.ErrIllegalAction, err)
}

func TestMachine_ShouldEnd(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)
	a.False(m.ShouldEnd())

	a.NoError(m.PlaceBet(100))

	m.player.Hand = hand("14s,13s")
	a.True(m.ShouldEnd(), "blackjack ends the round")

	m.player.Hand = hand("10s,9s,8s")
	a.True(m.ShouldEnd(), "bust ends the round")

	m.player.Hand = hand("10s,9s")
	a.False(m.ShouldEnd())

	m.player.Stand = true
	a.True(m.ShouldEnd(), "stand ends the round")
}

// rig puts the machine into a player-acting state with fixed hands
func rig(m *Machine, bet int, playerHand, dealerHand string) {
	m.state = statePlayerActing
	m.player.Bet = bet
	m.player.Hand = hand(playerHand)
	m.player.Stand = true
	m.dealer = hand(dealerHand)
}

func TestMachine_Resolve(t *testing.T) {
	tests := []struct {
		name       string
		playerHand string
		dealerHand string
		outcome    game.Outcome
		summary    string
		delta      int
	}{
		{
			name:       "dealer blackjack",
			playerHand: "10s,9s",
			dealerHand: "14c,13c",
			outcome:    game.Lost,
			summary:    "You've lost. Dealer has blackjack",
			delta:      -10,
		},
		{
			name:       "both blackjack",
			playerHand: "14s,13s",
			dealerHand: "14c,13c",
			outcome:    game.Push,
			summary:    "Push. Dealer has blackjack too",
			delta:      0,
		},
		{
			name:       "player blackjack pays three to two",
			playerHand: "14s,13s",
			dealerHand: "10c,9c",
			outcome:    game.Won,
			summary:    "You've won: blackjack",
			delta:      15,
		},
		{
			name:       "player bust",
			playerHand: "10s,9s,5d",
			dealerHand: "10c,9c",
			outcome:    game.Lost,
			summary:    "You've lost: overtake",
			delta:      -10,
		},
		{
			name:       "dealer bust",
			playerHand: "10s,9s",
			dealerHand: "10c,9c,5d",
			outcome:    game.Won,
			summary:    "You've won: dealer overtake",
			delta:      10,
		},
		{
			name:       "player has more points",
			playerHand: "10s,10d",
			dealerHand: "10c,8c",
			outcome:    game.Won,
			summary:    "You've won: you have more points than dealer",
			delta:      10,
		},
		{
			name:       "push on equal points",
			playerHand: "10s,8d",
			dealerHand: "10c,8c",
			outcome:    game.Push,
			summary:    "Push. Your points with dealer are equal.",
			delta:      0,
		},
		{
			name:       "dealer has more points",
			playerHand: "10s,8d",
			dealerHand: "10c,10h",
			outcome:    game.Lost,
			summary:    "You've lost: dealer has more points (20)",
			delta:      -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := assert.New(t)
			m, recorder, saver := newTestMachine(1000)
			rig(m, 10, tt.playerHand, tt.dealerHand)

			result, err := m.Resolve()
			a.NoError(err)
			a.Equal(tt.outcome, result.Outcome)
			a.Equal(tt.summary, result.Summary)
			a.Equal(tt.delta, result.Delta)
			a.Equal("blackjack", result.Game)
			a.NotEmpty(result.ID)

			a.Equal(1000+tt.delta, m.player.Score)
			a.Equal([]recordedOutcome{{"alice", "blackjack", tt.outcome}}, recorder.outcomes)
			a.Equal(1, saver.saves)

			// the round resets regardless of the outcome
			a.Equal(0, m.player.Bet)
			a.False(m.player.Stand)
			a.Len(m.player.Hand, 0)
			a.Len(m.dealer, 0)
			a.Equal(stateIdle, m.state)
		})
	}
}

func TestMachine_ResolveGuards(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)

	_, err := m.Resolve()
	a.Equal(game.ErrNoActiveRound, err)

	a.NoError(m.PlaceBet(100))
	m.player.Hand = hand("10s,9s")
	m.player.Stand = false
	_, err = m.Resolve()
	a.Equal(game.ErrRoundNotOver, err)
}

func TestMachine_ResetIdempotent(t *testing.T) {
	a := assert.New(t)
	m, _, _ := newTestMachine(1000)
	a.NoError(m.PlaceBet(100))

	m.Reset()
	m.Reset()

	a.Equal(0, m.player.Bet)
	a.False(m.player.Stand)
	a.Len(m.player.Hand, 0)
	a.Len(m.dealer, 0)
	a.Equal(1000, m.player.Score)
}

func TestMachine_FullRound(t *testing.T) {
	a := assert.New(t)
	m, recorder, saver := newTestMachine(1000)

	a.NoError(m.PlaceBet(50))
	for !m.ShouldEnd() {
		_, err := m.Act(&game.Request{Action: game.ActionStand})
		a.NoError(err)
	}

	result, err := m.Resolve()
	a.NoError(err)
	a.Equal(1000+result.Delta, m.player.Score)
	a.Len(recorder.outcomes, 1)
	a.Equal(1, saver.saves)
	a.Equal([]game.Action{game.ActionBet}, m.LegalActions())
}
