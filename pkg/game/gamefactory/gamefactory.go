// Package gamefactory creates round machines by game key, giving the driver
// a single switch point over the supported games.
package gamefactory

import (
	"fmt"
	"sort"

	"cardtable/pkg/game"
	"cardtable/pkg/game/blackjack"
	"cardtable/pkg/game/durak"
	"cardtable/pkg/game/videopoker"

	"github.com/sirupsen/logrus"
)

var factories = map[string]Factory{
	"blackjack":   blackjackFactory{},
	"video-poker": videoPokerFactory{},
	"durak":       durakFactory{},
}

// Factory is a factory for creating machines that implement the game.Machine interface
type Factory interface {
	CreateMachine(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) game.Machine
	Name() string
}

// Get returns a factory by the given key
func Get(key string) (Factory, error) {
	factory, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("no factory with key: %s", key)
	}

	return factory, nil
}

// Keys returns the known game keys in a stable order
func Keys() []string {
	keys := make([]string, 0, len(factories))
	for key := range factories {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}

type blackjackFactory struct{}

func (blackjackFactory) CreateMachine(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) game.Machine {
	return blackjack.New(logger, player, recorder, saver)
}

func (blackjackFactory) Name() string {
	return "Blackjack"
}

type videoPokerFactory struct{}

func (videoPokerFactory) CreateMachine(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) game.Machine {
	return videopoker.New(logger, player, recorder, saver)
}

func (videoPokerFactory) Name() string {
	return "Video Poker"
}

type durakFactory struct{}

func (durakFactory) CreateMachine(logger logrus.FieldLogger, player *game.Player, recorder game.Recorder, saver game.Saver) game.Machine {
	return durak.New(logger, player, recorder, saver)
}

func (durakFactory) Name() string {
	return "Durak"
}
