package npc

import (
	"testing"

	"bridge-lite/bridge"
	"bridge-lite/card"
)

func steadyBrain() *RuleBrain {
	return NewRuleBrain(&NPCPersona{ID: "steady_test", Name: "STEADY_TEST"}, 42)
}

func hand(t *testing.T, cards ...string) card.CardList {
	t.Helper()
	h, err := card.ParseList(cards)
	if err != nil {
		t.Fatalf("ParseList err: %v", err)
	}
	return h
}

func TestHighCardPoints(t *testing.T) {
	h := hand(t, "AS", "KS", "QH", "JD", "10C", "2C")
	if got := HighCardPoints(h); got != 10 {
		t.Fatalf("hcp=%d, want 10", got)
	}
}

func TestRuleBrainOpensLongestSuit(t *testing.T) {
	// 13 点，红桃五张
	h := hand(t, "AH", "KH", "9H", "7H", "3H", "KS", "5S", "2S", "QD", "8D", "JC", "4C", "2C")
	view := GameView{
		Phase:      bridge.PhaseAuction,
		Seat:       bridge.North,
		Hand:       h,
		LegalCalls: append([]bridge.Call{bridge.Pass{}}, toCalls(bridge.AllBids())...),
	}
	d := steadyBrain().Decide(view)
	if d.Call != (bridge.Bid{Level: 1, Strain: bridge.StrainHearts}) {
		t.Fatalf("expected 1H, got %v", d.Call)
	}
}

func TestRuleBrainOpensNoTrumpBalanced(t *testing.T) {
	// 16 点均型
	h := hand(t, "AS", "KS", "4S", "AH", "QH", "3H", "KD", "7D", "6D", "2D", "JC", "8C", "5C")
	view := GameView{
		Phase:      bridge.PhaseAuction,
		Seat:       bridge.East,
		Hand:       h,
		LegalCalls: append([]bridge.Call{bridge.Pass{}}, toCalls(bridge.AllBids())...),
	}
	d := steadyBrain().Decide(view)
	if d.Call != (bridge.Bid{Level: 1, Strain: bridge.NoTrump}) {
		t.Fatalf("expected 1NT, got %v", d.Call)
	}
}

func TestRuleBrainPassesWeakHand(t *testing.T) {
	h := hand(t, "9S", "8S", "4S", "QH", "7H", "3H", "6D", "5D", "4D", "2D", "JC", "8C", "5C")
	view := GameView{
		Phase:      bridge.PhaseAuction,
		Seat:       bridge.South,
		Hand:       h,
		LegalCalls: append([]bridge.Call{bridge.Pass{}}, toCalls(bridge.AllBids())...),
	}
	if d := steadyBrain().Decide(view); d.Call != (bridge.Pass{}) {
		t.Fatalf("expected Pass, got %v", d.Call)
	}
}

func TestRuleBrainPlay(t *testing.T) {
	contract := &bridge.Contract{Level: 2, Strain: bridge.StrainSpades, Declarer: bridge.North}
	brain := steadyBrain()

	// partner (North) is winning: play low
	view := GameView{
		Phase:      bridge.PhasePlay,
		Seat:       bridge.South,
		Contract:   contract,
		Hand:       hand(t, "KH", "3H", "AS"),
		LegalPlays: hand(t, "KH", "3H"),
		Trick: []bridge.Play{
			{Seat: bridge.North, Card: card.MustParse("AH")},
			{Seat: bridge.East, Card: card.MustParse("5H")},
		},
	}
	if got := brain.Decide(view).Card; got != card.MustParse("3H") {
		t.Fatalf("partner winning: got %s, want 3H", got)
	}

	// opponent winning: cheapest winner
	view.Trick = []bridge.Play{
		{Seat: bridge.East, Card: card.MustParse("QH")},
	}
	view.Hand = hand(t, "KH", "AH", "3H")
	view.LegalPlays = hand(t, "KH", "AH", "3H")
	if got := brain.Decide(view).Card; got != card.MustParse("KH") {
		t.Fatalf("opponent winning: got %s, want KH", got)
	}

	// void in the led suit: ruff with the smallest trump
	view.Hand = hand(t, "9S", "2S", "4D")
	view.LegalPlays = hand(t, "9S", "2S", "4D")
	if got := brain.Decide(view).Card; got != card.MustParse("2S") {
		t.Fatalf("void: got %s, want 2S", got)
	}

	// cannot win: discard lowest non-trump
	view.Trick = []bridge.Play{
		{Seat: bridge.East, Card: card.MustParse("AH")},
	}
	view.Hand = hand(t, "KH", "3H", "AS")
	view.LegalPlays = hand(t, "KH", "3H")
	if got := brain.Decide(view).Card; got != card.MustParse("3H") {
		t.Fatalf("cannot win: got %s, want 3H", got)
	}
}

func toCalls(bids []bridge.Bid) []bridge.Call {
	out := make([]bridge.Call, 0, len(bids))
	for _, b := range bids {
		out = append(out, b)
	}
	return out
}
