package bridge

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func submitAll(t *testing.T, a *Auction, calls ...string) {
	t.Helper()
	for _, s := range calls {
		if err := a.Submit(a.Turn(), MustParseCall(s)); err != nil {
			t.Fatalf("submit %s by %s err: %v", s, a.Turn(), err)
		}
	}
}

func TestAuction_OneClubThreePasses(t *testing.T) {
	a := NewAuction(North)
	submitAll(t, a, "1C", "Pass", "Pass")
	if a.Closed() {
		t.Fatalf("auction must stay open after two passes")
	}
	submitAll(t, a, "Pass")
	if !a.Closed() {
		t.Fatalf("auction must close after a bid and three passes")
	}

	c, ok, err := a.Resolve()
	if err != nil || !ok {
		t.Fatalf("Resolve ok=%v err=%v", ok, err)
	}
	if c.Level != 1 || c.Strain != StrainClubs || c.Declarer != North {
		t.Fatalf("unexpected contract %v", c)
	}
	if trump, has := c.Trump(); !has || trump != 0 {
		t.Fatalf("expected clubs trump, got %v %v", trump, has)
	}
	if c.RequiredTricks() != 7 {
		t.Fatalf("required tricks=%d, want 7", c.RequiredTricks())
	}
	if c.Side() != SideNS {
		t.Fatalf("declarer side=%v, want NS", c.Side())
	}
}

// 四家开叫全部 Pass，任意开叫位都必须判定为流局。
func TestAuction_FourPassesPassedOut(t *testing.T) {
	for _, opener := range Seats {
		a := NewAuction(opener)
		submitAll(t, a, "Pass", "Pass", "Pass")
		if a.Closed() {
			t.Fatalf("opener %s: three opening passes must not close", opener)
		}
		submitAll(t, a, "Pass")
		if !a.Closed() || !a.PassedOut() {
			t.Fatalf("opener %s: expected passed out", opener)
		}
		_, ok, err := a.Resolve()
		if err != nil || ok {
			t.Fatalf("opener %s: Resolve ok=%v err=%v", opener, ok, err)
		}
		if a.Turn() != InvalidSeat {
			t.Fatalf("opener %s: closed auction has turn %s", opener, a.Turn())
		}
	}
}

func TestAuction_DeclarerIsLastBidder(t *testing.T) {
	a := NewAuction(East)
	submitAll(t, a, "Pass", "1H", "1S", "2H", "Pass", "Pass", "3S", "Pass", "Pass")
	if a.Closed() {
		t.Fatalf("auction closed early")
	}
	submitAll(t, a, "Pass")
	c, ok, err := a.Resolve()
	if err != nil || !ok {
		t.Fatalf("Resolve ok=%v err=%v", ok, err)
	}
	// East opens: E P, S 1H, W 1S, N 2H, E P, S P, W 3S
	if c.Declarer != West || c.Bid() != (Bid{Level: 3, Strain: StrainSpades}) {
		t.Fatalf("unexpected contract %v", c)
	}
}

func TestAuction_PassCounterResetsOnBid(t *testing.T) {
	a := NewAuction(North)
	submitAll(t, a, "Pass", "Pass", "Pass", "1D", "Pass", "Pass")
	if a.Closed() {
		t.Fatalf("three opening passes then a bid must reopen the count")
	}
	submitAll(t, a, "Pass")
	c, ok, _ := a.Resolve()
	if !ok || c.Declarer != West {
		t.Fatalf("expected 1D by West, got %v ok=%v", c, ok)
	}
}

func TestAuction_Rejections(t *testing.T) {
	a := NewAuction(South)
	if err := a.Submit(North, Pass{}); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("expected ErrOutOfTurn, got %v", err)
	}
	submitAll(t, a, "2S")
	for _, s := range []string{"1NT", "2C", "2S"} {
		if err := a.Submit(West, MustParseCall(s)); !errors.Is(err, ErrIllegalBid) {
			t.Fatalf("%s over 2S: expected ErrIllegalBid, got %v", s, err)
		}
	}
	if err := a.Submit(West, Bid{Level: 9, Strain: StrainClubs}); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("expected ErrIllegalBid for level 9, got %v", err)
	}
	if err := a.Submit(West, nil); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("expected ErrIllegalBid for nil call, got %v", err)
	}
	if len(a.History()) != 1 || a.Turn() != West {
		t.Fatalf("rejected calls must not change state: history=%d turn=%s", len(a.History()), a.Turn())
	}

	submitAll(t, a, "2NT", "Pass", "Pass", "Pass")
	if err := a.Submit(West, Pass{}); !errors.Is(err, ErrAuctionClosed) {
		t.Fatalf("expected ErrAuctionClosed, got %v", err)
	}
	// closed is checked before turn
	if err := a.Submit(North, Pass{}); !errors.Is(err, ErrAuctionClosed) {
		t.Fatalf("expected ErrAuctionClosed before turn check, got %v", err)
	}
}

func TestAuction_ResolveOpenIsInvariant(t *testing.T) {
	a := NewAuction(North)
	_, _, err := a.Resolve()
	var iv InvariantViolation
	if !errors.As(err, &iv) {
		t.Fatalf("expected InvariantViolation, got %v", err)
	}
}

func TestAuction_AcceptedBidsMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	all := AllBids()
	for round := 0; round < 200; round++ {
		a := NewAuction(Seats[round%4])
		for i := 0; i < 60 && !a.Closed(); i++ {
			var call Call = Pass{}
			if rng.Intn(3) > 0 {
				call = all[rng.Intn(len(all))]
			}
			_ = a.Submit(a.Turn(), call)
		}
		last := -1
		for _, r := range a.History() {
			b, ok := r.Call.(Bid)
			if !ok {
				continue
			}
			if b.Key() <= last {
				t.Fatalf("round %d: accepted %v after key %d", round, b, last)
			}
			last = b.Key()
		}
	}
}

func TestAuction_LegalCalls(t *testing.T) {
	a := NewAuction(North)
	if got := len(a.LegalCalls()); got != 36 {
		t.Fatalf("opening legal calls=%d, want 36", got)
	}
	submitAll(t, a, "6NT")
	legal := a.LegalCalls()
	if len(legal) != 6 {
		t.Fatalf("legal calls over 6NT=%d, want 6", len(legal))
	}
	if legal[0] != (Pass{}) || legal[1] != (Bid{Level: 7, Strain: StrainClubs}) {
		t.Fatalf("unexpected legal calls %v", legal)
	}
	submitAll(t, a, "Pass", "Pass", "Pass")
	if a.LegalCalls() != nil {
		t.Fatalf("closed auction must have no legal calls")
	}
}

func TestFormatHistory(t *testing.T) {
	a := NewAuction(West)
	submitAll(t, a, "1NT", "Pass", "3NT")
	got := FormatHistory(a.History())
	want := strings.Join([]string{"West: 1NT", "North: Pass", "East: 3NT"}, "\n")
	if got != want {
		t.Fatalf("FormatHistory=\n%s\nwant\n%s", got, want)
	}
}
