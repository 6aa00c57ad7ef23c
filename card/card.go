package card

import (
	"fmt"
	"strings"
)

// Card 牌值
//
// 编码规则:
// - 高4位: 花色 (0:Club, 1:Diamond, 2:Heart, 3:Spade)
// - 低4位: 点数 (2..10, 11:J, 12:Q, 13:K, 14:A)
type Card byte

// Rank orders 2 < 3 < ... < 10 < J < Q < K < A.
type Rank byte

const (
	Two   Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r < Ten {
		return fmt.Sprintf("%d", byte(r))
	}
	return "?"
}

func (r Rank) Valid() bool { return r >= Two && r <= Ace }

// New builds a card from suit and rank. The result is CardInvalid when
// either part is out of range.
func New(s Suit, r Rank) Card {
	if !s.Valid() || !r.Valid() {
		return CardInvalid
	}
	return Card(byte(s)<<4 | byte(r))
}

func (c Card) Suit() Suit { return Suit(c >> 4) }

func (c Card) Rank() Rank {
	if c == CardInvalid || c == CardRear {
		return 0
	}
	return Rank(c & 0x0F)
}

func (c Card) Valid() bool {
	return c.Suit().Valid() && c.Rank().Valid()
}

// Index maps the 52 cards onto 0..51 (suit major, rank minor).
// Invalid cards return -1.
func (c Card) Index() int {
	if !c.Valid() {
		return -1
	}
	return int(c.Suit())*13 + int(c.Rank()-Two)
}

// FromIndex is the inverse of Index.
func FromIndex(i int) Card {
	if i < 0 || i >= 52 {
		return CardInvalid
	}
	return New(Suit(i/13), Rank(i%13)+Two)
}

// String renders rank then suit letter, e.g. "AS", "10H".
func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	if c == CardRear {
		return "Rear"
	}
	return c.Rank().String() + c.Suit().Letter()
}

// Parse 将字符串 (如 "AS", "Td", "10h") 转换为 Card
func Parse(cardStr string) (Card, error) {
	cardStr = strings.TrimSpace(cardStr)
	if len(cardStr) < 2 {
		return CardInvalid, fmt.Errorf("invalid card string: %q", cardStr)
	}

	// 1. 花色 (最后一个字符)
	suit, err := ParseSuit(cardStr[len(cardStr)-1])
	if err != nil {
		return CardInvalid, err
	}

	// 2. 点数
	var rank Rank
	switch rankStr := strings.ToUpper(cardStr[:len(cardStr)-1]); rankStr {
	case "A":
		rank = Ace
	case "K":
		rank = King
	case "Q":
		rank = Queen
	case "J":
		rank = Jack
	case "T", "10":
		rank = Ten
	case "2", "3", "4", "5", "6", "7", "8", "9":
		rank = Rank(rankStr[0] - '0')
	default:
		return CardInvalid, fmt.Errorf("invalid rank: %s", rankStr)
	}
	return New(suit, rank), nil
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(cardStr string) Card {
	c, err := Parse(cardStr)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseList parses a slice of card strings.
func ParseList(strs []string) (CardList, error) {
	out := make(CardList, 0, len(strs))
	for _, s := range strs {
		c, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
