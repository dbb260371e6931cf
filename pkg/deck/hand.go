package deck

// Hand represents a collection of cards held by one participant
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h *Hand) HasCard(card *Card) bool {
	for _, c := range *h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// Discard will discard the specified card and report whether it was held
func (h *Hand) Discard(card *Card) bool {
	for i, c := range *h {
		if c.Equal(card) {
			*h = append((*h)[:i], (*h)[i+1:]...)
			return true
		}
	}

	return false
}

// Clear empties the hand in place, keeping the backing array for the next round
func (h *Hand) Clear() {
	*h = (*h)[:0]
}

// FirstCard returns the first card in the hand or nil if the cards are empty
func (h Hand) FirstCard() *Card {
	if len(h) == 0 {
		return nil
	}

	return h[0]
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

// SortByRankAceHigh is a sort.Interface ordering cards by rank with the ace high
type SortByRankAceHigh Hand

func (s SortByRankAceHigh) Len() int      { return len(s) }
func (s SortByRankAceHigh) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s SortByRankAceHigh) Less(i, j int) bool {
	return s[i].AceHighRank() < s[j].AceHighRank()
}

// SortByRankAceLow is a sort.Interface ordering cards by rank with the ace low
type SortByRankAceLow Hand

func (s SortByRankAceLow) Len() int      { return len(s) }
func (s SortByRankAceLow) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s SortByRankAceLow) Less(i, j int) bool {
	return s[i].AceLowRank() < s[j].AceLowRank()
}
