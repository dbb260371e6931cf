package account

import (
	"io"
	"testing"

	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestController_Register(t *testing.T) {
	c := NewController(testLogger(), 500)

	player, err := c.Register("alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", player.Name)
	assert.Equal(t, 500, player.Score)

	_, err = c.Register("alice")
	assert.Equal(t, ErrPlayerExists, err)

	_, err = c.Register("")
	assert.Equal(t, ErrEmptyName, err)

	got, ok := c.Player("alice")
	assert.True(t, ok)
	assert.Same(t, player, got)

	_, ok = c.Player("bob")
	assert.False(t, ok)
}

func TestController_Names(t *testing.T) {
	c := NewController(testLogger(), 500)
	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := c.Register(name)
		assert.NoError(t, err)
	}

	assert.Equal(t, []string{"alice", "bob", "carol"}, c.Names())
}

func TestController_RecordOutcome(t *testing.T) {
	c := NewController(testLogger(), 500)
	_, err := c.Register("alice")
	assert.NoError(t, err)

	c.RecordOutcome("alice", "blackjack", game.Won)
	c.RecordOutcome("alice", "blackjack", game.Won)
	c.RecordOutcome("alice", "blackjack", game.Lost)
	c.RecordOutcome("alice", "durak", game.Push)

	stats := c.StatsFor("alice")
	assert.Equal(t, Statistic{Won: 2, Lost: 1}, stats["blackjack"])
	assert.Equal(t, Statistic{Push: 1}, stats["durak"])

	assert.Empty(t, c.StatsFor("bob"))

	assert.PanicsWithValue(t, "unknown outcome", func() {
		c.RecordOutcome("alice", "blackjack", game.Outcome("split"))
	})
}

func TestController_SnapshotRestore(t *testing.T) {
	c := NewController(testLogger(), 500)
	alice, err := c.Register("alice")
	assert.NoError(t, err)
	_, err = c.Register("bob")
	assert.NoError(t, err)

	alice.IncreaseScore(250)
	c.RecordOutcome("alice", "video-poker", game.Won)
	c.RecordOutcome("alice", "blackjack", game.Lost)

	snapshot := c.Snapshot()
	assert.Equal(t, []PlayerRecord{
		{Name: "alice", Score: 750},
		{Name: "bob", Score: 500},
	}, snapshot.Players)
	assert.Equal(t, []StatRecord{
		{Player: "alice", Game: "blackjack", Lost: 1},
		{Player: "alice", Game: "video-poker", Won: 1},
	}, snapshot.Stats)

	restored := NewController(testLogger(), 500)
	restored.Restore(snapshot)

	assert.Equal(t, []string{"alice", "bob"}, restored.Names())

	player, ok := restored.Player("alice")
	assert.True(t, ok)
	assert.Equal(t, 750, player.Score)

	assert.Equal(t, Statistic{Won: 1}, restored.StatsFor("alice")["video-poker"])
	assert.Equal(t, Statistic{Lost: 1}, restored.StatsFor("alice")["blackjack"])
}
