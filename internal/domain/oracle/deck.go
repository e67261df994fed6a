package oracle

import "math/rand/v2"

// Card is one entry of the fixed major arcana catalog.
type Card struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Image           string `json:"image"`
	UprightMeaning  string `json:"upright_meaning"`
	ReversedMeaning string `json:"reversed_meaning"`
}

// Orientation of a drawn card.
type Orientation string

const (
	OrientationUpright  Orientation = "upright"
	OrientationReversed Orientation = "reversed"
)

// DrawnCard is a card together with the orientation it was drawn in.
type DrawnCard struct {
	Card
	Upright bool `json:"upright"`
}

// Orientation returns the drawn orientation.
func (d DrawnCard) Orientation() Orientation {
	if d.Upright {
		return OrientationUpright
	}
	return OrientationReversed
}

// Meaning returns the meaning for the drawn orientation only.
func (d DrawnCard) Meaning() string {
	if d.Upright {
		return d.UprightMeaning
	}
	return d.ReversedMeaning
}

// RNG is the source of randomness for draws. IntN returns a value in [0, n).
// Implementations shared between goroutines must be safe for concurrent use.
type RNG interface {
	IntN(n int) int
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// DefaultRNG returns the auto-seeded, goroutine-safe math/rand/v2 source.
func DefaultRNG() RNG {
	return globalRNG{}
}

// Deck draws from the major arcana catalog.
type Deck struct {
	cards []Card
	rng   RNG
}

// NewDeck creates a deck over the full catalog. A nil rng falls back to
// DefaultRNG.
func NewDeck(rng RNG) *Deck {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Deck{cards: MajorArcana(), rng: rng}
}

// Draw picks a card uniformly from the catalog and, independently, an
// orientation with equal probability.
func (d *Deck) Draw() DrawnCard {
	card := d.cards[d.rng.IntN(len(d.cards))]
	return DrawnCard{Card: card, Upright: d.rng.IntN(2) == 0}
}

// Cards returns a copy of the deck's catalog in catalog order.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Lookup finds a card by key.
func (d *Deck) Lookup(key string) (Card, bool) {
	for _, c := range d.cards {
		if c.Key == key {
			return c, true
		}
	}
	return Card{}, false
}
