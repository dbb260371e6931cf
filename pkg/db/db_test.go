package db

import (
	"context"
	"path/filepath"
	"testing"

	"cardtable/pkg/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "cardtable.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestStore_SaveLoad(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Players)
	assert.Empty(t, loaded.Stats)

	snapshot := &account.Snapshot{
		Players: []account.PlayerRecord{
			{Name: "alice", Score: 750},
			{Name: "bob", Score: 320},
		},
		Stats: []account.StatRecord{
			{Player: "alice", Game: "blackjack", Won: 2, Lost: 1},
			{Player: "alice", Game: "durak", Push: 1},
			{Player: "bob", Game: "video-poker", Lost: 4},
		},
	}
	require.NoError(t, store.Save(ctx, snapshot))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestStore_SaveReplaces(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &account.Snapshot{
		Players: []account.PlayerRecord{{Name: "alice", Score: 500}},
		Stats:   []account.StatRecord{{Player: "alice", Game: "blackjack", Won: 1}},
	}))

	require.NoError(t, store.Save(ctx, &account.Snapshot{
		Players: []account.PlayerRecord{{Name: "alice", Score: 485}},
		Stats:   []account.StatRecord{{Player: "alice", Game: "blackjack", Won: 1, Lost: 1}},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []account.PlayerRecord{{Name: "alice", Score: 485}}, loaded.Players)
	assert.Equal(t, []account.StatRecord{{Player: "alice", Game: "blackjack", Won: 1, Lost: 1}}, loaded.Stats)
}

func TestStore_ReopenKeepsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardtable.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, &account.Snapshot{
		Players: []account.PlayerRecord{{Name: "carol", Score: 1200}},
	}))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close() // nolint:errcheck

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []account.PlayerRecord{{Name: "carol", Score: 1200}}, loaded.Players)
}
