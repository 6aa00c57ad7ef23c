package npc

import (
	"fmt"

	"bridge-lite/bridge"
)

// DealRecord is everything PlayDeal observed, in order.
type DealRecord struct {
	Calls     []bridge.CallRecord
	Plays     []bridge.Play
	PassedOut bool
	Contract  *bridge.Contract
	Outcome   *bridge.Outcome
}

// PlayDeal drives a dealt game to the end, asking brains[seat] for every
// decision. An illegal decision aborts the deal.
func PlayDeal(g *bridge.Game, brains [4]BrainDecider) (*DealRecord, error) {
	if g.Phase() != bridge.PhaseAuction {
		return nil, fmt.Errorf("%w: deal not ready, phase %s", bridge.ErrWrongPhase, g.Phase())
	}
	for _, b := range brains {
		if b == nil {
			return nil, fmt.Errorf("play deal: missing brain")
		}
	}

	rec := &DealRecord{}
	for g.Phase() == bridge.PhaseAuction {
		seat := g.Turn()
		view, err := ViewFor(g, seat)
		if err != nil {
			return rec, err
		}
		d := brains[seat].Decide(view)
		res, err := g.Bid(seat, d.Call)
		if err != nil {
			return rec, fmt.Errorf("%s at %s called %v: %w", brains[seat].Name(), seat, d.Call, err)
		}
		if res != nil {
			rec.Calls = res.Calls
			rec.PassedOut = res.PassedOut
			rec.Contract = res.Contract
		}
	}
	if rec.PassedOut {
		return rec, nil
	}

	for g.Phase() == bridge.PhasePlay {
		seat := g.Turn()
		view, err := ViewFor(g, seat)
		if err != nil {
			return rec, err
		}
		d := brains[seat].Decide(view)
		res, err := g.Play(seat, d.Card)
		if err != nil {
			return rec, fmt.Errorf("%s at %s played %s: %w", brains[seat].Name(), seat, d.Card, err)
		}
		rec.Plays = append(rec.Plays, bridge.Play{Seat: seat, Card: d.Card})
		if res != nil && res.Outcome != nil {
			rec.Outcome = res.Outcome
		}
	}
	return rec, nil
}
