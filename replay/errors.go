package replay

import (
	"errors"
	"fmt"

	"bridge-lite/bridge"
)

type ReplayError struct {
	StepIndex int32          `json:"step_index"`
	Reason    string         `json:"reason"`
	Message   string         `json:"message"`
	Expected  *ExpectedState `json:"expected,omitempty"`
}

type ExpectedState struct {
	Seat       string   `json:"seat"`
	Phase      string   `json:"phase,omitempty"`
	LegalCalls []string `json:"legal_calls,omitempty"`
	LegalPlays []string `json:"legal_plays,omitempty"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("replay error(step=%d reason=%s): %s", e.StepIndex, e.Reason, e.Message)
}

// reasonFor maps an engine error to its replay reason code. Closed is
// checked before phase since a late call carries both.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, bridge.ErrAuctionClosed):
		return "auction_closed"
	case errors.Is(err, bridge.ErrOutOfTurn):
		return "out_of_turn"
	case errors.Is(err, bridge.ErrIllegalBid):
		return "illegal_bid"
	case errors.Is(err, bridge.ErrCardNotHeld):
		return "card_not_held"
	case errors.Is(err, bridge.ErrRevokeSuit):
		return "revoke"
	case errors.Is(err, bridge.ErrWrongPhase):
		return "wrong_phase"
	}
	var iv bridge.InvariantViolation
	if errors.As(err, &iv) {
		return "invariant_violation"
	}
	return "action_apply_failed"
}
