package npc

import (
	"math"
	"math/rand"

	"bridge-lite/bridge"
	"bridge-lite/card"
)

// RuleBrain bids on high-card points and plays follow/win/discard.
type RuleBrain struct {
	Persona *NPCPersona
	rng     *rand.Rand
}

// NewRuleBrain creates a RuleBrain from a persona definition.
func NewRuleBrain(persona *NPCPersona, seed int64) *RuleBrain {
	return &RuleBrain{
		Persona: persona,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (b *RuleBrain) Name() string { return b.Persona.Name }

// Decide implements BrainDecider.
func (b *RuleBrain) Decide(view GameView) Decision {
	switch view.Phase {
	case bridge.PhaseAuction:
		return Decision{Call: b.decideCall(view)}
	case bridge.PhasePlay:
		return Decision{Card: b.decidePlay(view)}
	}
	return Decision{}
}

// HighCardPoints counts A=4 K=3 Q=2 J=1.
func HighCardPoints(hand []card.Card) int {
	hcp := 0
	for _, c := range hand {
		switch c.Rank() {
		case card.Ace:
			hcp += 4
		case card.King:
			hcp += 3
		case card.Queen:
			hcp += 2
		case card.Jack:
			hcp++
		}
	}
	return hcp
}

// longestSuit prefers the higher suit on equal length.
func longestSuit(hand card.CardList) (card.Suit, int) {
	best, bestLen := card.Club, -1
	for _, s := range card.Suits {
		if n := len(hand.OfSuit(s)); n >= bestLen {
			best, bestLen = s, n
		}
	}
	return best, bestLen
}

func balanced(hand card.CardList) bool {
	doubletons := 0
	for _, s := range card.Suits {
		n := len(hand.OfSuit(s))
		if n < 2 {
			return false
		}
		if n == 2 {
			doubletons++
		}
	}
	return doubletons <= 1
}

func (b *RuleBrain) decideCall(view GameView) bridge.Call {
	p := b.Persona.Brain
	if len(view.LegalCalls) == 0 {
		return bridge.Pass{}
	}
	if p.Randomness > 0 && b.rng.Float64() < p.Randomness*0.2 {
		return view.LegalCalls[b.rng.Intn(len(view.LegalCalls))]
	}

	hcp := HighCardPoints(view.Hand)
	bonus := int(math.Round(p.Boldness * 2))
	openAt := 12 - bonus

	_, _, anyBid := view.highestBid()
	partner, partnerBid := view.partnerBid()

	var want bridge.Bid
	switch {
	case !partnerBid && !anyBid:
		if hcp < openAt {
			return bridge.Pass{}
		}
		if balanced(view.Hand) && hcp >= 15 && hcp <= 17 {
			want = bridge.Bid{Level: 1, Strain: bridge.NoTrump}
		} else {
			suit, _ := longestSuit(view.Hand)
			want = bridge.Bid{Level: 1, Strain: bridge.StrainOf(suit)}
		}
	case partnerBid:
		// Partner's bid shows an opening hand; aim for the level the
		// combined points support.
		combined := hcp + 12 + bonus
		if hcp < 6-bonus || combined < 20 {
			return bridge.Pass{}
		}
		maxLevel := 1 + (combined-20)/3
		if maxLevel > 7 {
			maxLevel = 7
		}
		want = bridge.Bid{Level: uint8(maxLevel), Strain: b.fitStrain(view.Hand, partner.Strain)}
	default:
		// Overcall only with a good suit.
		suit, n := longestSuit(view.Hand)
		if hcp < openAt || n < 5 {
			return bridge.Pass{}
		}
		want = bridge.Bid{Level: 2, Strain: bridge.StrainOf(suit)}
	}
	return cheapestUpTo(view.LegalCalls, want)
}

// fitStrain supports partner's suit with three cards, else names our own
// five-card suit, else no-trump.
func (b *RuleBrain) fitStrain(hand card.CardList, partner bridge.Strain) bridge.Strain {
	if suit, ok := partner.Trump(); ok && len(hand.OfSuit(suit)) >= 3 {
		return partner
	}
	if partner == bridge.NoTrump {
		return bridge.NoTrump
	}
	if suit, n := longestSuit(hand); n >= 5 {
		return bridge.StrainOf(suit)
	}
	return bridge.NoTrump
}

// cheapestUpTo returns the lowest legal bid in want's strain at or below
// want's level, or Pass.
func cheapestUpTo(legal []bridge.Call, want bridge.Bid) bridge.Call {
	for _, c := range legal {
		bid, ok := c.(bridge.Bid)
		if !ok || bid.Strain != want.Strain {
			continue
		}
		if bid.Level <= want.Level {
			return bid
		}
		break
	}
	return bridge.Pass{}
}

func (b *RuleBrain) decidePlay(view GameView) card.Card {
	legal := card.CardList(view.LegalPlays)
	if len(legal) == 0 {
		return card.CardInvalid
	}
	if len(view.Trick) == 0 || view.Contract == nil {
		return leadCard(view.Hand, legal)
	}

	strain := view.Contract.Strain
	led := view.Trick[0].Card.Suit()
	winning, err := bridge.Winner(led, strain, view.Trick)
	if err == nil && winning == view.Seat.Partner() {
		return lowest(legal, strain)
	}

	// Cheapest card that takes the trick so far.
	var win card.Card
	for _, c := range legal {
		plays := append(append([]bridge.Play(nil), view.Trick...), bridge.Play{Seat: view.Seat, Card: c})
		w, err := bridge.Winner(led, strain, plays)
		if err != nil || w != view.Seat {
			continue
		}
		if win == card.CardInvalid || cheaper(c, win, strain) {
			win = c
		}
	}
	if win != card.CardInvalid {
		return win
	}
	return lowest(legal, strain)
}

// leadCard cashes an ace when holding one, otherwise leads low from the
// longest suit.
func leadCard(hand, legal card.CardList) card.Card {
	for _, c := range legal.Sorted() {
		if c.Rank() == card.Ace {
			return c
		}
	}
	suit, _ := longestSuit(hand)
	if of := legal.OfSuit(suit); len(of) > 0 {
		return lowest(of, bridge.NoTrump)
	}
	return lowest(legal, bridge.NoTrump)
}

// cheaper orders non-trumps before trumps, then by rank.
func cheaper(a, b card.Card, strain bridge.Strain) bool {
	trump, hasTrump := strain.Trump()
	at := hasTrump && a.Suit() == trump
	bt := hasTrump && b.Suit() == trump
	if at != bt {
		return !at
	}
	return a.Rank() < b.Rank()
}

func lowest(cards card.CardList, strain bridge.Strain) card.Card {
	low := cards[0]
	for _, c := range cards[1:] {
		if cheaper(c, low, strain) {
			low = c
		}
	}
	return low
}
