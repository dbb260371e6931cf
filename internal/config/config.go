package config

import (
	"os"

	"cardtable/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the card table
type Config struct {
	loaded   bool
	Database struct {
		Path string `yaml:"path" envconfig:"database_path"`
	} `yaml:"database"`
	StartingScore int `yaml:"startingScore" envconfig:"starting_score"`
	Log           struct {
		Level string `yaml:"level" envconfig:"log_level"`
	} `yaml:"log"`
}

var config Config

// DefaultConfig returns the configuration used when no config file exists
func DefaultConfig() Config {
	var c Config
	c.Database.Path = "cardtable.db"
	c.StartingScore = 500
	c.Log.Level = "info"
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// the defaults apply and the environment can still override them.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("CARDTABLE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	}

	if err := envconfig.Process("cardtable", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
