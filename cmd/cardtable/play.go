package main

import (
	"errors"
	"strconv"
	"strings"

	"cardtable/pkg/deck"
	"cardtable/pkg/game"
	"cardtable/pkg/game/blackjack"
	"cardtable/pkg/game/durak"
	"cardtable/pkg/game/gamefactory"
	"cardtable/pkg/game/videopoker"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
)

// playGame runs rounds of the chosen game until the player stops
func playGame(key string, player *game.Player, recorder game.Recorder, saver game.Saver) {
	factory, err := gamefactory.Get(key)
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	machine := factory.CreateMachine(logrus.StandardLogger(), player, recorder, saver)

	for {
		if machine.MaxBet() < 1 {
			pterm.Error.Printfln("%s does not have enough points to play", player.Name)
			return
		}

		if !placeBet(machine) {
			return
		}

		switch m := machine.(type) {
		case *blackjack.Machine:
			playBlackjack(m, player)
		case *videopoker.Machine:
			playVideoPoker(m, player)
		case *durak.Machine:
			playDurak(m, player)
		}

		again, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Play another round?").
			WithDefaultValue(true).
			Show()
		if !again {
			return
		}
	}
}

// placeBet prompts for a bet within the machine's bounds. It returns false
// if the player backs out.
func placeBet(machine game.Machine) bool {
	for {
		input, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText(pterm.Sprintf("Your bet (%d to %d, empty to go back)", machine.MinBet(), machine.MaxBet())).
			Show()

		input = strings.TrimSpace(input)
		if input == "" {
			return false
		}

		amount, err := strconv.Atoi(input)
		if err != nil {
			pterm.Error.Println("bets are whole numbers")
			continue
		}

		if err := machine.PlaceBet(amount); err != nil {
			var betErr game.BetError
			if errors.As(err, &betErr) {
				pterm.Error.Println(betErr)
				continue
			}

			pterm.Error.Println(err)
			return false
		}

		return true
	}
}

func handString(hand deck.Hand) string {
	cards := make([]string, len(hand))
	for i, card := range hand {
		cards[i] = card.String()
	}

	return strings.Join(cards, " ")
}

// pickCard maps an interactive selection back to a card in the hand
func pickCard(hand deck.Hand, prompt string) *deck.Card {
	options := make([]string, len(hand))
	for i, card := range hand {
		options[i] = card.String()
	}

	choice, _ := pterm.DefaultInteractiveSelect.
		WithDefaultText(prompt).
		WithOptions(options).
		Show()

	for _, card := range hand {
		if card.String() == choice {
			return card
		}
	}

	return nil
}

func printResult(result *game.Result, player *game.Player) {
	switch result.Outcome {
	case game.Won:
		pterm.Success.Printfln("%s (+%d)", result.Summary, result.Delta)
	case game.Lost:
		pterm.Error.Printfln("%s (%d)", result.Summary, result.Delta)
	default:
		pterm.Info.Println(result.Summary)
	}

	pterm.Info.Printfln("%s now has %d points", player.Name, player.Score)
}

func playBlackjack(m *blackjack.Machine, player *game.Player) {
	for !m.ShouldEnd() {
		pterm.Println()
		pterm.Info.Printfln("Dealer shows %s ??", m.Dealer().FirstCard())
		pterm.Info.Printfln("Your hand: %s (%d)", handString(player.Hand), m.PlayerValue())

		actions := m.LegalActions()
		options := make([]string, len(actions))
		for i, action := range actions {
			options[i] = string(action)
		}

		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Your move").
			WithOptions(options).
			Show()

		resp, err := m.Act(&game.Request{Action: game.Action(choice)})
		if err != nil {
			pterm.Error.Println(err)
			continue
		}

		if resp != nil {
			if resp.Card == nil {
				pterm.Error.Println("not enough points to double")
				continue
			}

			pterm.Info.Printfln("You drew %s", resp.Card)
		}
	}

	pterm.Println()
	pterm.Info.Printfln("Dealer's hand: %s (%d)", handString(m.Dealer()), blackjack.Value(m.Dealer()))
	pterm.Info.Printfln("Your hand: %s (%d)", handString(player.Hand), m.PlayerValue())

	result, err := m.Resolve()
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	printResult(result, player)
}

func playVideoPoker(m *videopoker.Machine, player *game.Player) {
	pterm.Println()
	pterm.Info.Printfln("Your hand: %s", handString(player.Hand))

	options := make([]string, len(player.Hand))
	byLabel := make(map[string]*deck.Card, len(player.Hand))
	for i, card := range player.Hand {
		options[i] = card.String()
		byLabel[card.String()] = card
	}

	labels, _ := pterm.DefaultInteractiveMultiselect.
		WithDefaultText("Select the cards to hold").
		WithOptions(options).
		Show()

	held := make([]*deck.Card, 0, len(labels))
	for _, label := range labels {
		held = append(held, byLabel[label])
	}

	resp, err := m.Act(&game.Request{Action: game.ActionDraw, Cards: held})
	if err != nil {
		pterm.Error.Println(err)
		m.Reset()
		return
	}

	if len(resp.Cards) > 0 {
		drawn := make([]string, len(resp.Cards))
		for i, card := range resp.Cards {
			drawn[i] = card.String()
		}

		pterm.Info.Printfln("You drew %s", strings.Join(drawn, " "))
	}

	pterm.Info.Printfln("Final hand: %s", handString(player.Hand))

	result, err := m.Resolve()
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	printResult(result, player)
}

func playDurak(m *durak.Machine, player *game.Player) {
	for !m.ShouldEnd() {
		if m.Turn() == durak.SeatOpponent {
			req, summary := opponentMove(m)
			if _, err := m.Act(req); err != nil {
				// the policy only proposes legal moves
				pterm.Error.Println(err)
				m.Reset()
				return
			}

			pterm.Info.Println(summary)
			continue
		}

		pterm.Println()
		pterm.Info.Printfln("Trump: %s. Opponent holds %d cards, %d left in the deck",
			m.Trump(), len(m.Opponent()), m.CardsLeft())
		if table := tableString(m.Table()); table != "" {
			pterm.Info.Printfln("Table: %s", table)
		}
		pterm.Info.Printfln("Your hand: %s", handString(player.Hand))

		actions := m.LegalActions()
		options := make([]string, len(actions))
		for i, action := range actions {
			options[i] = string(action)
		}

		choice, _ := pterm.DefaultInteractiveSelect.
			WithDefaultText("Your move").
			WithOptions(options).
			Show()

		req := &game.Request{Action: game.Action(choice)}
		switch req.Action {
		case game.ActionAttack, game.ActionDefend:
			prompt := "Attack with"
			if req.Action == game.ActionDefend {
				prompt = "Defend with"
			}

			card := pickCard(player.Hand, prompt)
			if card == nil {
				continue
			}

			req.Cards = []*deck.Card{card}
		}

		if _, err := m.Act(req); err != nil {
			pterm.Error.Println(err)
		}
	}

	result, err := m.Resolve()
	if err != nil {
		pterm.Error.Println(err)
		return
	}

	printResult(result, player)
}

func tableString(table []*durak.Pair) string {
	pairs := make([]string, len(table))
	for i, pair := range table {
		if pair.Defense != nil {
			pairs[i] = pterm.Sprintf("%s covered by %s", pair.Attack, pair.Defense)
		} else {
			pairs[i] = pterm.Sprintf("%s (open)", pair.Attack)
		}
	}

	return strings.Join(pairs, ", ")
}
