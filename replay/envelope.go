package replay

import (
	"encoding/base64"
	"fmt"
	"strings"

	"bridge-lite/bridge"
	"bridge-lite/card"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var marshalOpts = proto.MarshalOptions{Deterministic: true}

// DecodeEnvelope reverses EnvelopeB64.
func DecodeEnvelope(b64 string) (*structpb.Struct, error) {
	bin, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	env := &structpb.Struct{}
	if err := proto.Unmarshal(bin, env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

func seatName(s bridge.Seat) string {
	if !s.Valid() {
		return ""
	}
	return s.String()
}

func cardsValue(cards []card.Card) []any {
	out := make([]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

func handsValue(g *bridge.Game) map[string]any {
	out := make(map[string]any, 4)
	for _, seat := range bridge.Seats {
		out[strings.ToLower(seat.String())] = cardsValue(g.Hand(seat).Sorted())
	}
	return out
}

func callsValue(calls []bridge.CallRecord) []any {
	out := make([]any, 0, len(calls))
	for _, r := range calls {
		out = append(out, map[string]any{"seat": seatName(r.Seat), "call": r.Call.String()})
	}
	return out
}

func contractValue(c bridge.Contract) map[string]any {
	return map[string]any{
		"level":    int(c.Level),
		"strain":   c.Strain.String(),
		"declarer": seatName(c.Declarer),
		"bid":      c.Bid().String(),
	}
}

func playsValue(plays []bridge.Play) []any {
	out := make([]any, 0, len(plays))
	for _, p := range plays {
		out = append(out, map[string]any{"seat": seatName(p.Seat), "card": p.Card.String()})
	}
	return out
}

func outcomeValue(o bridge.Outcome) map[string]any {
	return map[string]any{
		"contract":        contractValue(o.Contract),
		"ns_tricks":       o.SideTricks[bridge.SideNS],
		"ew_tricks":       o.SideTricks[bridge.SideEW],
		"required":        o.Required,
		"declarer_tricks": o.DeclarerTricks,
		"fulfilled":       o.Fulfilled,
		"margin":          o.Margin,
		"result":          o.String(),
	}
}

func callStrings(calls []bridge.Call) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.String())
	}
	return out
}

func cardStrings(cards []card.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.String())
	}
	return out
}

func stringsValue(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}
