package bridge

import (
	"fmt"

	"bridge-lite/card"
)

type Config struct {
	// First seat to call in the auction
	OpeningSeat Seat

	// RNG seed for the internal shuffle (0 => time-based)
	Seed int64

	// Optional: duplicate board id, the deck is derived from it
	Board string

	// Optional: fixed deck dealt in order, card i goes to seat i%4
	DeckOverride []card.Card
}

func (c Config) validate() error {
	if !c.OpeningSeat.Valid() {
		return fmt.Errorf("OpeningSeat must be 0..3, got %d", c.OpeningSeat)
	}
	if c.Board != "" && len(c.DeckOverride) > 0 {
		return fmt.Errorf("Board and DeckOverride are mutually exclusive")
	}
	if len(c.DeckOverride) > 0 {
		if err := card.CheckDeck(c.DeckOverride); err != nil {
			return fmt.Errorf("invalid DeckOverride: %w", err)
		}
	}
	return nil
}
