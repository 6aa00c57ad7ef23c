package replay

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// WireReplayTape is the JSON form sent to viewers and stored in the
// ledger: events keep only their encoded envelope.
type WireReplayTape struct {
	TapeVersion int               `json:"tapeVersion"`
	TableID     string            `json:"tableId"`
	OpeningSeat string            `json:"openingSeat"`
	Events      []WireReplayEvent `json:"events"`
}

type WireReplayEvent struct {
	Type        string `json:"type"`
	Seq         uint64 `json:"seq"`
	EnvelopeB64 string `json:"envelopeB64"`
}

func ToWireReplayTape(tape *ReplayTape) *WireReplayTape {
	if tape == nil {
		return nil
	}
	events := make([]WireReplayEvent, len(tape.Events))
	for i, e := range tape.Events {
		events[i] = WireReplayEvent{Type: e.Type, Seq: e.Seq, EnvelopeB64: e.EnvelopeB64}
	}
	return &WireReplayTape{
		TapeVersion: tape.TapeVersion,
		TableID:     tape.TableID,
		OpeningSeat: tape.OpeningSeat,
		Events:      events,
	}
}

// Payload decodes the envelope of event i and returns its payload.
func (t *WireReplayTape) Payload(i int) (*structpb.Struct, error) {
	if t == nil || i < 0 || i >= len(t.Events) {
		return nil, fmt.Errorf("event %d out of range", i)
	}
	env, err := DecodeEnvelope(t.Events[i].EnvelopeB64)
	if err != nil {
		return nil, err
	}
	if typ := env.GetFields()["type"].GetStringValue(); typ != t.Events[i].Type {
		return nil, fmt.Errorf("event %d: envelope type %q, want %q", i, typ, t.Events[i].Type)
	}
	return env.GetFields()["payload"].GetStructValue(), nil
}

// DealEnd returns the dealEnd payload, or ok=false when the tape stops
// before the deal is over.
func (t *WireReplayTape) DealEnd() (payload map[string]any, ok bool, err error) {
	if t == nil || len(t.Events) == 0 {
		return nil, false, nil
	}
	last := len(t.Events) - 1
	if t.Events[last].Type != "dealEnd" {
		return nil, false, nil
	}
	p, err := t.Payload(last)
	if err != nil {
		return nil, false, err
	}
	return p.AsMap(), true, nil
}
