package bridge

import (
	"fmt"

	"bridge-lite/card"
)

// Play is one card played by one seat.
type Play struct {
	Seat Seat
	Card card.Card
}

// Trick holds up to four plays; the first play's suit is the led suit.
type Trick struct {
	Leader Seat
	Plays  []Play
	Winner Seat // InvalidSeat until the trick is complete
}

func NewTrick(leader Seat) *Trick {
	return &Trick{
		Leader: leader,
		Plays:  make([]Play, 0, 4),
		Winner: InvalidSeat,
	}
}

func (t *Trick) LedSuit() (card.Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit(), true
}

func (t *Trick) Complete() bool { return len(t.Plays) == 4 }

// Next is the seat due to play, rotating from the leader.
func (t *Trick) Next() Seat {
	if t.Complete() {
		return InvalidSeat
	}
	return Seat((int(t.Leader) + len(t.Plays)) % 4)
}

// Copy returns a trick that shares no memory with t.
func (t *Trick) Copy() Trick {
	return Trick{Leader: t.Leader, Plays: append([]Play(nil), t.Plays...), Winner: t.Winner}
}

// checkFollow rejects a card of another suit while the hand still holds
// the led suit.
func checkFollow(hand card.CardList, t *Trick, c card.Card) error {
	led, ok := t.LedSuit()
	if !ok || c.Suit() == led || !hand.HasSuit(led) {
		return nil
	}
	return fmt.Errorf("%w: %s led, %s played while holding %s", ErrRevokeSuit, led.Letter(), c, led.Letter())
}

// playKey ranks a card within a trick: trump above led suit above
// everything else, then by rank. Off-suit cards rank -1 and never win.
func playKey(c card.Card, led card.Suit, trump card.Suit, hasTrump bool) (tier int, rank int) {
	switch {
	case hasTrump && c.Suit() == trump:
		return 2, int(c.Rank())
	case c.Suit() == led:
		return 1, int(c.Rank())
	default:
		return 0, -1
	}
}

// Winner picks the winning seat of a trick. It depends only on the led
// suit, the strain and the set of plays, not on their order.
func Winner(led card.Suit, strain Strain, plays []Play) (Seat, error) {
	if len(plays) == 0 {
		return InvalidSeat, errInvariant("winner of an empty trick")
	}
	trump, hasTrump := strain.Trump()

	best := -1
	bestTier, bestRank := -1, -1
	for i, p := range plays {
		tier, rank := playKey(p.Card, led, trump, hasTrump)
		if tier > bestTier || (tier == bestTier && rank > bestRank) {
			best, bestTier, bestRank = i, tier, rank
		}
	}
	if bestTier == 0 {
		return InvalidSeat, errInvariant("no card of the led suit %s in trick", led.Letter())
	}
	return plays[best].Seat, nil
}
