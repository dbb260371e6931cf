package main

import (
	"cardtable/pkg/deck"
	"cardtable/pkg/game"
	"cardtable/pkg/game/durak"

	"github.com/pterm/pterm"
)

// opponentMove picks the house's next durak move: the cheapest legal card,
// spending trumps last, passing or taking when nothing fits. The returned
// summary is shown to the player.
func opponentMove(m *durak.Machine) (*game.Request, string) {
	trump := m.Trump().Suit
	hand := m.Opponent()

	if m.Attacker() == durak.SeatOpponent {
		if card := cheapestAttack(m.Table(), hand, trump); card != nil && attackAllowed(m) {
			return &game.Request{Action: game.ActionAttack, Cards: []*deck.Card{card}},
				pterm.Sprintf("Opponent attacks with %s", card)
		}

		return &game.Request{Action: game.ActionPass}, "Opponent ends the attack"
	}

	open := openAttack(m.Table())
	if card := cheapestDefense(hand, open, trump); card != nil {
		return &game.Request{Action: game.ActionDefend, Cards: []*deck.Card{card}},
			pterm.Sprintf("Opponent covers %s with %s", open, card)
	}

	return &game.Request{Action: game.ActionTake}, "Opponent takes the table"
}

func attackAllowed(m *durak.Machine) bool {
	for _, action := range m.LegalActions() {
		if action == game.ActionAttack {
			return true
		}
	}

	return false
}

// cardWeight orders cards for the policy: rank first, trumps after everything
func cardWeight(card *deck.Card, trump deck.Suit) int {
	weight := int(card.Rank)
	if card.Suit == trump {
		weight += 100
	}

	return weight
}

// cheapestAttack returns the lowest card legal to attack with, or nil. After
// the first attack only ranks already on the table may be added.
func cheapestAttack(table []*durak.Pair, hand deck.Hand, trump deck.Suit) *deck.Card {
	ranks := make(map[deck.Rank]bool)
	for _, pair := range table {
		ranks[pair.Attack.Rank] = true
		if pair.Defense != nil {
			ranks[pair.Defense.Rank] = true
		}
	}

	var best *deck.Card
	for _, card := range hand {
		if len(table) > 0 && !ranks[card.Rank] {
			continue
		}

		if best == nil || cardWeight(card, trump) < cardWeight(best, trump) {
			best = card
		}
	}

	return best
}

// cheapestDefense returns the lowest card that beats the attack, or nil
func cheapestDefense(hand deck.Hand, attack *deck.Card, trump deck.Suit) *deck.Card {
	var best *deck.Card
	for _, card := range hand {
		if !durak.Beats(card, attack, trump) {
			continue
		}

		if best == nil || cardWeight(card, trump) < cardWeight(best, trump) {
			best = card
		}
	}

	return best
}

// openAttack returns the uncovered attack on the table
func openAttack(table []*durak.Pair) *deck.Card {
	for i := len(table) - 1; i >= 0; i-- {
		if table[i].Defense == nil {
			return table[i].Attack
		}
	}

	return nil
}
