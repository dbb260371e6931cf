// Command cardtable is the interactive card table: blackjack, video poker,
// and durak against the house, with scores and statistics kept in a local
// SQLite file.
package main

import (
	"context"
	"os"
	"strings"

	"cardtable/internal/config"
	"cardtable/pkg/account"
	"cardtable/pkg/db"
	"cardtable/pkg/game"
	"cardtable/pkg/game/gamefactory"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
)

const newPlayerOption = "New player"
const statsOption = "Statistics"
const switchPlayerOption = "Switch player"
const quitOption = "Quit"

func main() {
	setupLogger()
	cfg := config.Instance()

	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}
	defer store.Close() // nolint:errcheck

	controller := account.NewController(logrus.StandardLogger(), cfg.StartingScore)

	snapshot, err := store.Load(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("could not load player state")
	}
	controller.Restore(snapshot)

	saver := db.NewSaver(logrus.StandardLogger(), store, controller)
	defer saver.Close()

	banner()

	for {
		player := selectPlayer(controller)
		if player == nil {
			return
		}

		if !playerMenu(controller, saver, player) {
			return
		}
	}
}

func banner() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Card", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("table", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}
}

// selectPlayer prompts for an existing player or registers a new one. A nil
// return means the user chose to quit.
func selectPlayer(controller *account.Controller) *game.Player {
	for {
		options := append(controller.Names(), newPlayerOption, quitOption)
		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Who is playing?").
			WithOptions(options).
			Show()

		switch choice {
		case quitOption, "":
			return nil
		case newPlayerOption:
			if player := registerPlayer(controller); player != nil {
				return player
			}
		default:
			if player, ok := controller.Player(choice); ok {
				return player
			}
		}
	}
}

func registerPlayer(controller *account.Controller) *game.Player {
	name, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter a player name").
		Show()

	player, err := controller.Register(strings.TrimSpace(name))
	if err != nil {
		pterm.Error.Println(err)
		return nil
	}

	pterm.Success.Printfln("Welcome, %s! You start with %d points", player.Name, player.Score)
	return player
}

// playerMenu runs the per-player menu. It returns false once the user quits
// outright and true when they switch players.
func playerMenu(controller *account.Controller, saver *db.Saver, player *game.Player) bool {
	keys := gamefactory.Keys()

	for {
		options := make([]string, 0, len(keys)+3)
		names := make(map[string]string, len(keys))
		for _, key := range keys {
			factory, err := gamefactory.Get(key)
			if err != nil {
				continue
			}

			options = append(options, factory.Name())
			names[factory.Name()] = key
		}
		options = append(options, statsOption, switchPlayerOption, quitOption)

		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText(pterm.Sprintf("%s (%d points)", player.Name, player.Score)).
			WithOptions(options).
			Show()

		switch choice {
		case quitOption, "":
			return false
		case switchPlayerOption:
			return true
		case statsOption:
			showStats(controller, player)
		default:
			playGame(names[choice], player, controller, saver)
		}
	}
}

func showStats(controller *account.Controller, player *game.Player) {
	stats := controller.StatsFor(player.Name)
	if len(stats) == 0 {
		pterm.Info.Printfln("%s has not finished a round yet", player.Name)
		return
	}

	rows := pterm.TableData{{"Game", "Won", "Lost", "Push"}}
	for _, key := range gamefactory.Keys() {
		stat, ok := stats[key]
		if !ok {
			continue
		}

		rows = append(rows, []string{
			key,
			pterm.Sprintf("%d", stat.Won),
			pterm.Sprintf("%d", stat.Lost),
			pterm.Sprintf("%d", stat.Push),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
