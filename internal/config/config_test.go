package config

import (
	"os"
	"testing"

	"cardtable/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("CARDTABLE_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("CARDTABLE_DATABASE_PATH", "override.db")
	defer clear2()
	config.loaded = false

	a := assert.New(t)
	cfg := Instance()
	a.Equal(1000, cfg.StartingScore)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("override.db", cfg.Database.Path)

	// ensure that it's only loaded once
	_ = os.Setenv("CARDTABLE_DATABASE_PATH", "other.db")
	// ensure we aren't using a pointer
	cfg.Database.Path = "bad"
	cfg = Instance()
	a.Equal("override.db", cfg.Database.Path)
}

func TestDefaults(t *testing.T) {
	clear := util.SetEnv("CARDTABLE_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear()
	config.loaded = false

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, "cardtable.db", cfg.Database.Path)
	assert.Equal(t, 500, cfg.StartingScore)
	assert.Equal(t, "info", cfg.Log.Level)
}
