package db

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"cardtable/pkg/account"
	"cardtable/pkg/game"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSaver_FlushOnClose(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cardtable.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	controller := account.NewController(testLogger(), 500)
	player, err := controller.Register("alice")
	require.NoError(t, err)

	saver := NewSaver(testLogger(), store, controller)

	player.IncreaseScore(15)
	controller.RecordOutcome("alice", "blackjack", game.Won)
	saver.RequestSave()
	saver.Close()

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []account.PlayerRecord{{Name: "alice", Score: 515}}, loaded.Players)
	assert.Equal(t, []account.StatRecord{{Player: "alice", Game: "blackjack", Won: 1}}, loaded.Stats)
}

func TestSaver_RequestAfterClose(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cardtable.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	controller := account.NewController(testLogger(), 500)
	saver := NewSaver(testLogger(), store, controller)
	saver.Close()

	assert.NotPanics(t, func() {
		saver.RequestSave()
	})
	assert.NotPanics(t, func() {
		saver.Close()
	})
}

func TestSaver_RequestNeverBlocks(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "cardtable.db"))
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	controller := account.NewController(testLogger(), 500)
	saver := NewSaver(testLogger(), store, controller)

	for i := 0; i < 100; i++ {
		saver.RequestSave()
	}
	saver.Close()

	_, err = store.Load(context.Background())
	assert.NoError(t, err)
}
