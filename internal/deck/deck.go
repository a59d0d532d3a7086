package deck

import (
	rand "math/rand/v2"
)

// Deck represents a deck of playing cards
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a new standard 52-card deck using the provided RNG for
// shuffling. Callers seed the RNG (see randutil) so deals are reproducible.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Remove takes specific cards out of the deck, for stacking decks in tests.
// It returns the number of cards actually removed.
func (d *Deck) Remove(cards ...Card) int {
	removed := 0
	for _, c := range cards {
		for i, dc := range d.cards {
			if dc == c {
				d.cards = append(d.cards[:i], d.cards[i+1:]...)
				removed++
				break
			}
		}
	}
	return removed
}

// Stack places the given cards on top of the deck in order, removing them
// from wherever they currently sit. The first card given is dealt first.
func (d *Deck) Stack(cards ...Card) {
	d.Remove(cards...)
	d.cards = append(append([]Card{}, cards...), d.cards...)
}
