package videopoker

import (
	"sort"

	"cardtable/pkg/deck"
)

// Combination is a detected poker hand combination
type Combination int

// combinations from weakest to strongest
const (
	Nothing Combination = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalStraightFlush
)

func (c Combination) String() string {
	switch c {
	case Nothing:
		return "nothing"
	case OnePair:
		return "one pair"
	case TwoPair:
		return "two pair"
	case ThreeOfAKind:
		return "three of a kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full house"
	case FourOfAKind:
		return "four of a kind"
	case StraightFlush:
		return "straight flush"
	case RoyalStraightFlush:
		return "royal straight flush"
	default:
		panic("unknown combination")
	}
}

// adjacent-repeat counts that classify the paired combinations
const (
	pairRepeats  = 1
	threeRepeats = 2
	fourRepeats  = 3
)

// Combinations detects the combinations in a five-card hand.
//
// The cards are sorted by rank with the ace high, then scanned pairwise:
// repeats counts adjacent equal-rank pairs and repeatedRanks collects the
// distinct ranks involved. The repeat counts only classify correctly on a
// sorted hand.
type Combinations struct {
	cards         deck.Hand
	repeats       int
	repeatedRanks map[deck.Rank]struct{}
}

// NewCombinations analyzes exactly five cards
func NewCombinations(cards deck.Hand) *Combinations {
	if len(cards) != 5 {
		panic("combination detection requires exactly five cards")
	}

	sorted := cards.Clone()
	sort.Sort(deck.SortByRankAceHigh(sorted))

	repeats := 0
	repeatedRanks := make(map[deck.Rank]struct{})
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Rank == sorted[i+1].Rank {
			repeats++
			repeatedRanks[sorted[i].Rank] = struct{}{}
		}
	}

	return &Combinations{
		cards:         sorted,
		repeats:       repeats,
		repeatedRanks: repeatedRanks,
	}
}

// HasFlush returns true if all five cards share one suit
func (c *Combinations) HasFlush() bool {
	suit := c.cards[0].Suit
	for _, card := range c.cards {
		if card.Suit != suit {
			return false
		}
	}

	return true
}

// HasStraight returns true if the ranks are consecutive with the ace counted
// either high or low
func (c *Combinations) HasStraight() bool {
	return c.hasStraight(true) || c.hasStraight(false)
}

func (c *Combinations) hasStraight(aceHigh bool) bool {
	values := make([]int, len(c.cards))
	for i, card := range c.cards {
		if aceHigh {
			values[i] = card.AceHighRank()
		} else {
			values[i] = card.AceLowRank()
		}
	}
	sort.Ints(values)

	for i := 0; i < len(values)-1; i++ {
		if values[i+1]-values[i] != 1 {
			return false
		}
	}

	return true
}

// HasStraightFlush returns true for a straight in a single suit
func (c *Combinations) HasStraightFlush() bool {
	return c.HasFlush() && c.HasStraight()
}

// HasRoyalStraightFlush returns true for an ace-high straight flush: the
// lowest card of the ace-high sort must be a ten
func (c *Combinations) HasRoyalStraightFlush() bool {
	return c.HasFlush() && c.hasStraight(true) && c.cards[0].Rank == deck.Ten
}

// HasOnePair returns true for exactly one pair
func (c *Combinations) HasOnePair() bool {
	return c.repeats == pairRepeats && len(c.repeatedRanks) == 1
}

// HasTwoPair returns true for two distinct pairs
func (c *Combinations) HasTwoPair() bool {
	return c.repeats == threeRepeats && len(c.repeatedRanks) == 2
}

// HasThree returns true for three of a kind
func (c *Combinations) HasThree() bool {
	return c.repeats == threeRepeats && len(c.repeatedRanks) == 1
}

// HasFour returns true for four of a kind
func (c *Combinations) HasFour() bool {
	return c.repeats == fourRepeats && len(c.repeatedRanks) == 1
}

// HasFullHouse returns true for three of a kind plus a pair
func (c *Combinations) HasFullHouse() bool {
	return c.repeats == fourRepeats && len(c.repeatedRanks) == 2
}

// Best returns the strongest combination the hand makes, in payout priority
// order, first match wins
func (c *Combinations) Best() Combination {
	switch {
	case c.HasRoyalStraightFlush():
		return RoyalStraightFlush
	case c.HasStraightFlush():
		return StraightFlush
	case c.HasFour():
		return FourOfAKind
	case c.HasFullHouse():
		return FullHouse
	case c.HasFlush():
		return Flush
	case c.HasStraight():
		return Straight
	case c.HasThree():
		return ThreeOfAKind
	case c.HasTwoPair():
		return TwoPair
	case c.HasOnePair():
		return OnePair
	}

	return Nothing
}
