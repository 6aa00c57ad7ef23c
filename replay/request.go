package replay

import (
	"encoding/json"
	"errors"
)

// Request is the JSON body a replay viewer sends.
type Request struct {
	Spec DealSpec `json:"spec"`
}

// Response carries either a tape or the error that stopped generation.
type Response struct {
	OK    bool            `json:"ok"`
	Tape  *WireReplayTape `json:"tape,omitempty"`
	Error *ReplayError    `json:"error,omitempty"`
}

func failed(reason, msg string) Response {
	return Response{OK: false, Error: &ReplayError{StepIndex: -1, Reason: reason, Message: msg}}
}

// HandleRequest decodes a Request and replays its spec.
func HandleRequest(raw []byte) Response {
	if len(raw) == 0 {
		return failed("invalid_request", "missing request payload")
	}
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return failed("invalid_json", err.Error())
	}
	return HandleSpec(req.Spec)
}

func HandleSpec(spec DealSpec) Response {
	tape, err := GenerateReplayTape(spec)
	if err != nil {
		var replayErr *ReplayError
		if errors.As(err, &replayErr) {
			return Response{OK: false, Error: replayErr}
		}
		return failed("replay_generation_failed", err.Error())
	}
	return Response{OK: true, Tape: ToWireReplayTape(tape)}
}

// Marshal encodes r, degrading to an error response if r itself cannot
// be encoded.
func (r Response) Marshal() []byte {
	b, err := json.Marshal(r)
	if err != nil {
		b, _ = json.Marshal(failed("marshal_failed", err.Error()))
	}
	return b
}
