package replay

import (
	"encoding/base64"
	"fmt"

	"bridge-lite/bridge"

	"google.golang.org/protobuf/types/known/structpb"
)

const defaultTableID = "replay_local"

// GenerateReplayTape replays spec through the engine and records every
// event. Steps number the calls first, then the plays.
func GenerateReplayTape(spec DealSpec) (*ReplayTape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	game, err := bridge.NewGame(bridge.Config{
		OpeningSeat:  ns.opener,
		Seed:         1,
		Board:        ns.board,
		DeckOverride: ns.deck,
	})
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "engine_init_failed", Message: err.Error()}
	}
	if err := game.StartDeal(); err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_deal", Message: err.Error()}
	}

	builder := newTapeBuilder(defaultTableID)
	builder.addDealStart(game, ns)
	builder.addPrompt(game)

	step := int32(0)
	for _, c := range ns.calls {
		res, err := game.Bid(c.seat, c.call)
		if err != nil {
			return nil, stepError(game, step, err)
		}
		builder.push("call", map[string]any{"seat": seatName(c.seat), "call": c.call.String()})
		if res != nil {
			builder.addAuctionEnd(res)
		}
		builder.addPrompt(game)
		step++
	}

	for _, p := range ns.plays {
		res, err := game.Play(p.seat, p.card)
		if err != nil {
			return nil, stepError(game, step, err)
		}
		builder.push("play", map[string]any{"seat": seatName(p.seat), "card": p.card.String()})
		if res != nil {
			builder.addTrickEnd(res)
		}
		builder.addPrompt(game)
		step++
	}

	if builder.err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "encode_failed", Message: builder.err.Error()}
	}
	return &ReplayTape{
		TapeVersion: 1,
		TableID:     builder.tableID,
		OpeningSeat: seatName(ns.opener),
		Events:      builder.events,
	}, nil
}

func stepError(g *bridge.Game, step int32, err error) *ReplayError {
	return &ReplayError{
		StepIndex: step,
		Reason:    reasonFor(err),
		Message:   err.Error(),
		Expected:  expectedState(g),
	}
}

func expectedState(g *bridge.Game) *ExpectedState {
	turn := g.Turn()
	out := &ExpectedState{Seat: seatName(turn), Phase: g.Phase().String()}
	switch g.Phase() {
	case bridge.PhaseAuction:
		if calls, err := g.LegalCalls(turn); err == nil {
			out.LegalCalls = callStrings(calls)
		}
	case bridge.PhasePlay:
		if plays, err := g.LegalPlays(turn); err == nil {
			out.LegalPlays = cardStrings(plays)
		}
	}
	return out
}

type tapeBuilder struct {
	tableID string
	seq     uint64
	events  []ReplayEvent
	err     error
}

func newTapeBuilder(tableID string) *tapeBuilder {
	return &tapeBuilder{
		tableID: tableID,
		events:  make([]ReplayEvent, 0, 128),
	}
}

func (b *tapeBuilder) addDealStart(g *bridge.Game, ns normalizedSpec) {
	payload := map[string]any{
		"opening_seat": seatName(ns.opener),
		"hands":        handsValue(g),
	}
	if ns.board != "" {
		payload["board"] = ns.board
	}
	b.push("dealStart", payload)
}

// addPrompt announces who acts next and what is legal for them.
func (b *tapeBuilder) addPrompt(g *bridge.Game) {
	exp := expectedState(g)
	if exp.Seat == "" {
		return
	}
	payload := map[string]any{"seat": exp.Seat, "phase": exp.Phase}
	if len(exp.LegalCalls) > 0 {
		payload["legal_calls"] = stringsValue(exp.LegalCalls)
	}
	if len(exp.LegalPlays) > 0 {
		payload["legal_plays"] = stringsValue(exp.LegalPlays)
	}
	b.push("prompt", payload)
}

func (b *tapeBuilder) addAuctionEnd(res *bridge.AuctionResult) {
	payload := map[string]any{
		"passed_out": res.PassedOut,
		"history":    callsValue(res.Calls),
	}
	if res.Contract != nil {
		payload["contract"] = contractValue(*res.Contract)
		payload["leader"] = seatName(res.Leader)
	}
	b.push("auctionEnd", payload)
	if res.PassedOut {
		b.push("dealEnd", map[string]any{"passed_out": true})
	}
}

func (b *tapeBuilder) addTrickEnd(res *bridge.TrickResult) {
	b.push("trickEnd", map[string]any{
		"number": res.Number,
		"leader": seatName(res.Trick.Leader),
		"plays":  playsValue(res.Trick.Plays),
		"winner": seatName(res.Winner),
	})
	if res.Outcome != nil {
		payload := outcomeValue(*res.Outcome)
		payload["passed_out"] = false
		b.push("dealEnd", payload)
	}
}

func (b *tapeBuilder) push(typ string, payload map[string]any) {
	if b.err != nil {
		return
	}
	b.seq++
	env, err := structpb.NewStruct(map[string]any{
		"table_id": b.tableID,
		"seq":      b.seq,
		"ts_ms":    int64(b.seq),
		"type":     typ,
		"payload":  payload,
	})
	if err != nil {
		b.err = fmt.Errorf("encode %s event: %w", typ, err)
		return
	}
	bin, err := marshalOpts.Marshal(env)
	if err != nil {
		b.err = fmt.Errorf("marshal %s event: %w", typ, err)
		return
	}
	b.events = append(b.events, ReplayEvent{
		Type:        typ,
		Seq:         b.seq,
		Value:       env,
		EnvelopeB64: base64.StdEncoding.EncodeToString(bin),
	})
}
