package card

import (
	"math/rand"
	"sort"
)

type CardList []Card

func (ds *CardList) Init(cards []Card) {
	*ds = make([]Card, len(cards))
	copy(*ds, cards)
}

// Count 获取总牌数
func (ds CardList) Count() int {
	return len(ds)
}

func (ds CardList) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(ds), func(i, j int) {
		ds[i], ds[j] = ds[j], ds[i]
	})
}

func (ds *CardList) Add(cards ...Card) {
	*ds = append(*ds, cards...)
}

func (ds *CardList) PopCard() Card {
	totalCount := ds.Count()
	if totalCount == 0 {
		return CardInvalid
	}
	card := (*ds)[totalCount-1]
	*ds = (*ds)[:totalCount-1]
	return card
}

// Deal pops the top card, so a CardList satisfies the engine's dealer contract.
func (ds *CardList) Deal() Card { return ds.PopCard() }

func (ds CardList) Contains(c Card) bool {
	for _, cc := range ds {
		if cc == c {
			return true
		}
	}
	return false
}

// Remove drops the first occurrence of c and reports whether it was held.
func (ds *CardList) Remove(c Card) bool {
	for i, cc := range *ds {
		if cc == c {
			*ds = append((*ds)[:i], (*ds)[i+1:]...)
			return true
		}
	}
	return false
}

func (ds CardList) HasSuit(s Suit) bool {
	for _, c := range ds {
		if c.Suit() == s {
			return true
		}
	}
	return false
}

func (ds CardList) OfSuit(s Suit) CardList {
	var out CardList
	for _, c := range ds {
		if c.Suit() == s {
			out = append(out, c)
		}
	}
	return out
}

// Sorted returns a copy ordered by suit then rank, highest first.
func (ds CardList) Sorted() CardList {
	out := make(CardList, len(ds))
	copy(out, ds)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suit() != out[j].Suit() {
			return out[i].Suit() > out[j].Suit()
		}
		return out[i].Rank() > out[j].Rank()
	})
	return out
}

func (ds CardList) Strings() []string {
	out := make([]string, 0, len(ds))
	for _, c := range ds {
		out = append(out, c.String())
	}
	return out
}
