package bridge

import (
	"fmt"
	"strings"

	"bridge-lite/card"
)

// Strain is the denomination of a bid, ordered C < D < H < S < NT.
type Strain uint8

const (
	StrainClubs Strain = iota
	StrainDiamonds
	StrainHearts
	StrainSpades
	NoTrump
)

var StrainDictionary = map[Strain]string{
	StrainClubs:    "C",
	StrainDiamonds: "D",
	StrainHearts:   "H",
	StrainSpades:   "S",
	NoTrump:        "NT",
}

func (s Strain) String() string {
	if name, ok := StrainDictionary[s]; ok {
		return name
	}
	return "?"
}

func (s Strain) Valid() bool { return s <= NoTrump }

// Trump returns the trump suit; ok is false for no-trump.
func (s Strain) Trump() (suit card.Suit, ok bool) {
	if s >= NoTrump {
		return 0, false
	}
	return card.Suit(s), true
}

// StrainOf returns the suit strain matching a card suit.
func StrainOf(s card.Suit) Strain { return Strain(s) }

// Call is either a Bid or a Pass.
type Call interface {
	String() string
	isCall()
}

// Bid names a level 1..7 and a strain.
type Bid struct {
	Level  uint8
	Strain Strain
}

// Pass is the call that names nothing.
type Pass struct{}

func (Bid) isCall()  {}
func (Pass) isCall() {}

func (Pass) String() string { return "Pass" }

func (b Bid) String() string { return fmt.Sprintf("%d%s", b.Level, b.Strain) }

func (b Bid) Valid() bool { return b.Level >= 1 && b.Level <= 7 && b.Strain.Valid() }

// Key is the ranking key level*10 + strain index.
func (b Bid) Key() int { return int(b.Level)*10 + int(b.Strain) }

// Outranks reports whether b strictly beats o.
func (b Bid) Outranks(o Bid) bool { return b.Key() > o.Key() }

// NewBid validates level and strain.
func NewBid(level int, strain Strain) (Bid, error) {
	b := Bid{Level: uint8(level), Strain: strain}
	if level < 1 || level > 7 || !b.Valid() {
		return Bid{}, fmt.Errorf("%w: level %d strain %d", ErrIllegalBid, level, strain)
	}
	return b, nil
}

// AllBids lists the 35 bids from 1C to 7NT in ranking order.
func AllBids() []Bid {
	out := make([]Bid, 0, 35)
	for level := uint8(1); level <= 7; level++ {
		for s := StrainClubs; s <= NoTrump; s++ {
			out = append(out, Bid{Level: level, Strain: s})
		}
	}
	return out
}

// ParseCall reads "Pass" (or "P") and bids such as "1C", "4s", "7NT", "3N".
func ParseCall(s string) (Call, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	switch raw {
	case "PASS", "P":
		return Pass{}, nil
	case "":
		return nil, fmt.Errorf("%w: empty call", ErrIllegalBid)
	}
	level := raw[0]
	if level < '1' || level > '7' {
		return nil, fmt.Errorf("%w: bad level in %q", ErrIllegalBid, s)
	}
	var strain Strain
	switch raw[1:] {
	case "C":
		strain = StrainClubs
	case "D":
		strain = StrainDiamonds
	case "H":
		strain = StrainHearts
	case "S":
		strain = StrainSpades
	case "NT", "N":
		strain = NoTrump
	default:
		return nil, fmt.Errorf("%w: bad strain in %q", ErrIllegalBid, s)
	}
	return Bid{Level: level - '0', Strain: strain}, nil
}

// MustParseCall is ParseCall for literals.
func MustParseCall(s string) Call {
	c, err := ParseCall(s)
	if err != nil {
		panic(err)
	}
	return c
}
