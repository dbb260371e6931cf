package blackjack

import "cardtable/pkg/deck"

// blackjack is the hand value the game is named after
const blackjack = 21

// Value returns the blackjack value of a hand.
//
// Two totals are kept while summing: one with every ace at 11 and one with
// every ace at 1. The high total is returned unless it busts, in which case
// the low total is. All aces switch together, never per-ace, so some
// multi-ace hands score below the per-ace optimum. Round results depend on
// this exact scoring.
func Value(cards deck.Hand) int {
	high, low := 0, 0
	for _, card := range cards {
		switch card.Rank {
		case deck.Ace:
			high += 11
			low += deck.LowAce
		case deck.Jack, deck.Queen, deck.King:
			high += 10
			low += 10
		case deck.Two, deck.Three, deck.Four, deck.Five, deck.Six,
			deck.Seven, deck.Eight, deck.Nine, deck.Ten:
			high += int(card.Rank)
			low += int(card.Rank)
		default:
			panic("unknown rank")
		}
	}

	if high > blackjack {
		return low
	}

	return high
}

// IsBlackjack returns true for a two-card hand worth 21
func IsBlackjack(cards deck.Hand) bool {
	return len(cards) == 2 && Value(cards) == blackjack
}
