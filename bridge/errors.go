package bridge

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfTurn     = errors.New("out of turn")
	ErrAuctionClosed = errors.New("auction closed")
	ErrIllegalBid    = errors.New("illegal bid")
	ErrCardNotHeld   = errors.New("card not held")
	ErrRevokeSuit    = errors.New("must follow led suit")
	ErrWrongPhase    = errors.New("wrong phase")
	ErrNoContract    = errors.New("deal passed out")
)

// InvariantViolation reports a broken engine invariant. Correct drivers
// never see it.
type InvariantViolation string

func (e InvariantViolation) Error() string { return "invariant violation: " + string(e) }

func errInvariant(format string, args ...any) error {
	return InvariantViolation(fmt.Sprintf(format, args...))
}
