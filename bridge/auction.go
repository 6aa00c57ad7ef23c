package bridge

import (
	"fmt"
	"strings"

	"bridge-lite/card"
)

// CallRecord is one accepted call in auction order.
type CallRecord struct {
	Seat Seat
	Call Call
}

// Contract is the result of an auction that was not passed out.
type Contract struct {
	Level    uint8
	Strain   Strain
	Declarer Seat
}

func (c Contract) Bid() Bid { return Bid{Level: c.Level, Strain: c.Strain} }

// Side is the declaring partnership.
func (c Contract) Side() Side { return c.Declarer.Side() }

func (c Contract) Trump() (card.Suit, bool) { return c.Strain.Trump() }

// RequiredTricks is the book of six plus the contract level.
func (c Contract) RequiredTricks() int { return int(c.Level) + 6 }

func (c Contract) String() string {
	return fmt.Sprintf("%s by %s", c.Bid(), c.Declarer)
}

// Auction enforces call order, bid ranking and termination.
type Auction struct {
	opener Seat
	turn   Seat
	calls  []CallRecord

	// passes counts consecutive passes since the last bid, or since the
	// start when no bid has been made.
	passes  int
	highest Bid
	bidder  Seat
	closed  bool
}

func NewAuction(opener Seat) *Auction {
	return &Auction{
		opener: opener,
		turn:   opener,
		calls:  make([]CallRecord, 0, 16),
		bidder: InvalidSeat,
	}
}

func (a *Auction) Opener() Seat { return a.opener }

// Turn is the seat expected to call next, InvalidSeat once closed.
func (a *Auction) Turn() Seat {
	if a.closed {
		return InvalidSeat
	}
	return a.turn
}

func (a *Auction) Closed() bool { return a.closed }

// PassedOut reports a closed auction in which nobody bid.
func (a *Auction) PassedOut() bool { return a.closed && a.bidder == InvalidSeat }

// Highest returns the current highest bid and its bidder.
func (a *Auction) Highest() (Bid, Seat, bool) {
	if a.bidder == InvalidSeat {
		return Bid{}, InvalidSeat, false
	}
	return a.highest, a.bidder, true
}

func (a *Auction) History() []CallRecord {
	return append([]CallRecord(nil), a.calls...)
}

// Submit validates and applies one call.
func (a *Auction) Submit(seat Seat, call Call) error {
	if a.closed {
		return ErrAuctionClosed
	}
	if seat != a.turn {
		return fmt.Errorf("%w: %s called, expected %s", ErrOutOfTurn, seat, a.turn)
	}

	switch c := call.(type) {
	case Bid:
		if !c.Valid() {
			return fmt.Errorf("%w: %d%s is not a bid", ErrIllegalBid, c.Level, c.Strain)
		}
		if a.bidder != InvalidSeat && !c.Outranks(a.highest) {
			return fmt.Errorf("%w: %s does not outrank %s", ErrIllegalBid, c, a.highest)
		}
		a.highest = c
		a.bidder = seat
		a.passes = 0
	case Pass:
		a.passes++
	default:
		return fmt.Errorf("%w: unknown call %v", ErrIllegalBid, call)
	}
	a.calls = append(a.calls, CallRecord{Seat: seat, Call: call})

	// Opening round of four passes and the three passes after a bid are
	// separate rules over the same counter.
	if a.bidder == InvalidSeat && a.passes == 4 {
		a.closed = true
	} else if a.bidder != InvalidSeat && a.passes == 3 {
		a.closed = true
	}
	a.turn = seat.Next()
	return nil
}

// Resolve returns the contract once the auction is closed. ok is false when
// the deal was passed out.
func (a *Auction) Resolve() (c Contract, ok bool, err error) {
	if !a.closed {
		return Contract{}, false, errInvariant("resolve called on an open auction")
	}
	if a.bidder == InvalidSeat {
		return Contract{}, false, nil
	}
	return Contract{Level: a.highest.Level, Strain: a.highest.Strain, Declarer: a.bidder}, true, nil
}

// LegalCalls lists Pass and every bid that outranks the current highest.
// The projection is empty once the auction is closed.
func (a *Auction) LegalCalls() []Call {
	if a.closed {
		return nil
	}
	out := []Call{Pass{}}
	for _, b := range AllBids() {
		if a.bidder == InvalidSeat || b.Outranks(a.highest) {
			out = append(out, b)
		}
	}
	return out
}

// FormatHistory renders one "Seat: Call" per line.
func FormatHistory(calls []CallRecord) string {
	lines := make([]string, 0, len(calls))
	for _, r := range calls {
		lines = append(lines, fmt.Sprintf("%s: %s", r.Seat, r.Call))
	}
	return strings.Join(lines, "\n")
}
