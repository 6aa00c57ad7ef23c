package bridge

import "bridge-lite/card"

// Dealer delivers the 52 cards of a deal one at a time. The engine calls
// Deal exactly 52 times and gives card i to seat i%4.
type Dealer interface {
	Deal() card.Card
}

// SequenceDealer deals a fixed card sequence from the front.
type SequenceDealer struct {
	cards []card.Card
	pos   int
}

func NewSequenceDealer(cards []card.Card) *SequenceDealer {
	return &SequenceDealer{cards: append([]card.Card(nil), cards...)}
}

func (d *SequenceDealer) Deal() card.Card {
	if d.pos >= len(d.cards) {
		return card.CardInvalid
	}
	c := d.cards[d.pos]
	d.pos++
	return c
}

// InterleaveHands flattens four hands into the round-robin order expected
// by DealFrom. Hands shorter than 13 leave CardInvalid gaps.
func InterleaveHands(hands [4]card.CardList) []card.Card {
	out := make([]card.Card, 52)
	for i := range out {
		seat := i % 4
		n := i / 4
		if n < len(hands[seat]) {
			out[i] = hands[seat][n]
		}
	}
	return out
}
