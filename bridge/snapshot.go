package bridge

import "bridge-lite/card"

type Snapshot struct {
	Phase  Phase
	Turn   Seat
	Opener Seat

	Hands [4][]card.Card
	Calls []CallRecord

	Contract *Contract
	Leader   Seat

	CurrentTrick    *Trick
	CompletedTricks []Trick
	TricksWon       [4]int

	Outcome *Outcome
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:           g.phase,
		Turn:            g.Turn(),
		Opener:          g.cfg.OpeningSeat,
		Calls:           g.Calls(),
		Leader:          InvalidSeat,
		CompletedTricks: g.CompletedTricks(),
		TricksWon:       g.tricksWon,
	}
	for _, seat := range Seats {
		s.Hands[seat] = append([]card.Card{}, g.hands[seat]...)
	}
	if g.contract != nil {
		c := *g.contract
		s.Contract = &c
		s.Leader = c.Declarer.Next()
	}
	if g.trick != nil {
		t := g.trick.Copy()
		s.CurrentTrick = &t
	}
	if g.outcome != nil {
		o := *g.outcome
		s.Outcome = &o
	}
	return s
}
