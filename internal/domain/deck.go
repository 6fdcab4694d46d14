package domain

import "math/rand"

// Deck is a draw pile with a discard pile. When Reshuffle is set, an empty
// draw pile is refilled from the shuffled discards.
type Deck[T any] struct {
	cards     []T
	discarded []T
	reshuffle bool
	rng       *rand.Rand
}

// NewDeck returns a shuffled deck of cards.
func NewDeck[T any](cards []T, reshuffle bool, rng *rand.Rand) *Deck[T] {
	d := &Deck[T]{
		cards:     append([]T(nil), cards...),
		reshuffle: reshuffle,
		rng:       rng,
	}
	d.shuffle(d.cards)
	return d
}

func (d *Deck[T]) shuffle(cards []T) {
	if d.rng == nil {
		rand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
		return
	}
	d.rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// Draw takes the top card. It returns false when both piles are exhausted.
func (d *Deck[T]) Draw() (T, bool) {
	var zero T
	if len(d.cards) == 0 && d.reshuffle && len(d.discarded) > 0 {
		d.cards, d.discarded = d.discarded, nil
		d.shuffle(d.cards)
	}
	if len(d.cards) == 0 {
		return zero, false
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, true
}

// Discard puts c on the discard pile.
func (d *Deck[T]) Discard(c T) {
	d.discarded = append(d.discarded, c)
}

// Len is the number of cards left in the draw pile.
func (d *Deck[T]) Len() int { return len(d.cards) }

// Discarded is the number of cards on the discard pile.
func (d *Deck[T]) Discarded() int { return len(d.discarded) }

// Stack puts cards on top of the draw pile, last one drawn first.
func (d *Deck[T]) Stack(cards ...T) {
	d.cards = append(d.cards, cards...)
}
