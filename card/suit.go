package card

import "fmt"

// Suit in Bridge rank order: Club < Diamond < Heart < Spade.
type Suit byte

const (
	Club    Suit = iota // ♣️
	Diamond             // ♦️
	Heart               // ♥️
	Spade               // ♠️
)

// Suits lists the four suits in ascending order.
var Suits = [4]Suit{Club, Diamond, Heart, Spade}

func (s Suit) String() string {
	switch s {
	case Club:
		return "♣️"
	case Diamond:
		return "♦️"
	case Heart:
		return "♥️"
	case Spade:
		return "♠️"
	}
	return "?"
}

// Letter returns the single-letter notation used by bids and card strings.
func (s Suit) Letter() string {
	switch s {
	case Club:
		return "C"
	case Diamond:
		return "D"
	case Heart:
		return "H"
	case Spade:
		return "S"
	}
	return "?"
}

func (s Suit) Valid() bool { return s <= Spade }

// ParseSuit accepts C/D/H/S in either case.
func ParseSuit(r byte) (Suit, error) {
	switch r {
	case 'c', 'C':
		return Club, nil
	case 'd', 'D':
		return Diamond, nil
	case 'h', 'H':
		return Heart, nil
	case 's', 'S':
		return Spade, nil
	}
	return 0, fmt.Errorf("invalid suit: %c", r)
}
