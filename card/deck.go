package card

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// FullDeck is the 52-card Bridge deck in Index order.
var FullDeck = func() []Card {
	cards := make([]Card, 0, 52)
	for i := 0; i < 52; i++ {
		cards = append(cards, FromIndex(i))
	}
	return cards
}()

// NewDeck returns an unshuffled copy of FullDeck.
func NewDeck() CardList {
	var ds CardList
	ds.Init(FullDeck)
	return ds
}

// ShuffledDeck returns a deck shuffled with rng.
func ShuffledDeck(rng *rand.Rand) CardList {
	ds := NewDeck()
	ds.Shuffle(rng)
	return ds
}

// BoardDeck derives a deterministic deck from a board identifier, so the
// same board id always yields the same four hands (duplicate play).
func BoardDeck(board string) (CardList, error) {
	board = strings.TrimSpace(board)
	if board == "" {
		return nil, fmt.Errorf("empty board id")
	}
	sum := blake2b.Sum256([]byte(board))
	seed := int64(binary.BigEndian.Uint64(sum[:8]))
	return ShuffledDeck(rand.New(rand.NewSource(seed))), nil
}

// CheckDeck verifies cards is exactly the 52 distinct valid cards.
func CheckDeck(cards []Card) error {
	if len(cards) != 52 {
		return fmt.Errorf("deck must have 52 cards, got %d", len(cards))
	}
	var seen [52]bool
	for _, c := range cards {
		idx := c.Index()
		if idx < 0 {
			return fmt.Errorf("invalid card 0x%02x in deck", byte(c))
		}
		if seen[idx] {
			return fmt.Errorf("duplicate card %s in deck", c)
		}
		seen[idx] = true
	}
	return nil
}
