package npc

import (
	"fmt"

	"bridge-lite/bridge"
	"bridge-lite/card"
)

// GameView is a read-only projection of the deal visible to one seat.
type GameView struct {
	Phase bridge.Phase
	Seat  bridge.Seat
	Hand  card.CardList

	Calls      []bridge.CallRecord
	LegalCalls []bridge.Call

	Contract   *bridge.Contract
	Trick      []bridge.Play // plays of the trick in progress
	LegalPlays []card.Card
	TricksWon  [4]int
}

// Decision is what a BrainDecider returns: Call during the auction, Card
// during play.
type Decision struct {
	Call bridge.Call
	Card card.Card
}

// BrainDecider is the core interface all NPC types implement.
type BrainDecider interface {
	// Decide is called when it's the seat's turn.
	Decide(view GameView) Decision
	// Name returns a human-readable identifier for debugging.
	Name() string
}

// ViewFor builds the projection for the seat whose turn it is.
func ViewFor(g *bridge.Game, seat bridge.Seat) (GameView, error) {
	view := GameView{
		Phase:     g.Phase(),
		Seat:      seat,
		Hand:      g.Hand(seat),
		Calls:     g.Calls(),
		TricksWon: g.TricksWon(),
	}
	if c, ok := g.Contract(); ok {
		view.Contract = &c
	}
	switch g.Phase() {
	case bridge.PhaseAuction:
		legal, err := g.LegalCalls(seat)
		if err != nil {
			return GameView{}, err
		}
		view.LegalCalls = legal
	case bridge.PhasePlay:
		legal, err := g.LegalPlays(seat)
		if err != nil {
			return GameView{}, err
		}
		view.LegalPlays = legal
		if tr, ok := g.CurrentTrick(); ok {
			view.Trick = tr.Plays
		}
	default:
		return GameView{}, fmt.Errorf("%w: no decision during %s", bridge.ErrWrongPhase, g.Phase())
	}
	return view, nil
}

// highestBid returns the last bid in the auction and who made it.
func (v GameView) highestBid() (bridge.Bid, bridge.Seat, bool) {
	for i := len(v.Calls) - 1; i >= 0; i-- {
		if b, ok := v.Calls[i].Call.(bridge.Bid); ok {
			return b, v.Calls[i].Seat, true
		}
	}
	return bridge.Bid{}, bridge.InvalidSeat, false
}

// partnerBid returns partner's most recent bid.
func (v GameView) partnerBid() (bridge.Bid, bool) {
	partner := v.Seat.Partner()
	for i := len(v.Calls) - 1; i >= 0; i-- {
		if v.Calls[i].Seat != partner {
			continue
		}
		if b, ok := v.Calls[i].Call.(bridge.Bid); ok {
			return b, true
		}
	}
	return bridge.Bid{}, false
}
