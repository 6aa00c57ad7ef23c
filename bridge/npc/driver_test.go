package npc

import (
	"errors"
	"testing"

	"bridge-lite/bridge"
)

func dealtGame(t *testing.T, seed int64) *bridge.Game {
	t.Helper()
	g, err := bridge.NewGame(bridge.Config{OpeningSeat: bridge.Seat(seed % 4), Seed: seed})
	if err != nil {
		t.Fatalf("NewGame err: %v", err)
	}
	if err := g.StartDeal(); err != nil {
		t.Fatalf("StartDeal err: %v", err)
	}
	return g
}

func checkRecord(t *testing.T, seed int64, rec *DealRecord) {
	t.Helper()
	if rec.PassedOut {
		if rec.Contract != nil || len(rec.Plays) != 0 || len(rec.Calls) != 4 {
			t.Fatalf("seed %d: passed out record %+v", seed, rec)
		}
		return
	}
	if rec.Contract == nil || rec.Outcome == nil {
		t.Fatalf("seed %d: missing contract or outcome", seed)
	}
	if len(rec.Plays) != 52 {
		t.Fatalf("seed %d: %d plays", seed, len(rec.Plays))
	}
	o := rec.Outcome
	if o.SideTricks[0]+o.SideTricks[1] != 13 {
		t.Fatalf("seed %d: side tricks %v", seed, o.SideTricks)
	}
	if rec.Plays[0].Seat != rec.Contract.Declarer.Next() {
		t.Fatalf("seed %d: opening lead by %s, declarer %s", seed, rec.Plays[0].Seat, rec.Contract.Declarer)
	}
}

func TestPlayDealRandomBrains(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		g := dealtGame(t, seed)
		var brains [4]BrainDecider
		for _, s := range bridge.Seats {
			brains[s] = NewRandomBrain(s.String(), seed*10+int64(s))
		}
		rec, err := PlayDeal(g, brains)
		if err != nil {
			t.Fatalf("seed %d: PlayDeal err: %v", seed, err)
		}
		checkRecord(t, seed, rec)
	}
}

func TestPlayDealRuleBrains(t *testing.T) {
	m := NewManager(DefaultRegistry(), 7)
	for seed := int64(1); seed <= 40; seed++ {
		brains, err := m.SeatAll([4]string{"steady", "pusher", "wildcard", "steady"})
		if err != nil {
			t.Fatalf("SeatAll err: %v", err)
		}
		rec, err := PlayDeal(dealtGame(t, seed), brains)
		if err != nil {
			t.Fatalf("seed %d: PlayDeal err: %v", seed, err)
		}
		checkRecord(t, seed, rec)
	}
}

func TestPlayDealDeterministic(t *testing.T) {
	run := func() *DealRecord {
		m := NewManager(DefaultRegistry(), 99)
		brains, err := m.SeatAll([4]string{"wildcard", RandomID, "pusher", RandomID})
		if err != nil {
			t.Fatalf("SeatAll err: %v", err)
		}
		rec, err := PlayDeal(dealtGame(t, 5), brains)
		if err != nil {
			t.Fatalf("PlayDeal err: %v", err)
		}
		return rec
	}
	a, b := run(), run()
	if len(a.Calls) != len(b.Calls) || len(a.Plays) != len(b.Plays) {
		t.Fatalf("runs differ: %d/%d calls, %d/%d plays", len(a.Calls), len(b.Calls), len(a.Plays), len(b.Plays))
	}
	for i := range a.Plays {
		if a.Plays[i] != b.Plays[i] {
			t.Fatalf("play %d differs: %v vs %v", i, a.Plays[i], b.Plays[i])
		}
	}
}

func TestPlayDealRejectsUndealt(t *testing.T) {
	g, err := bridge.NewGame(bridge.Config{Seed: 1})
	if err != nil {
		t.Fatalf("NewGame err: %v", err)
	}
	var brains [4]BrainDecider
	if _, err := PlayDeal(g, brains); !errors.Is(err, bridge.ErrWrongPhase) {
		t.Fatalf("expected ErrWrongPhase, got %v", err)
	}
}

func TestManagerUnknownPersona(t *testing.T) {
	m := NewManager(DefaultRegistry(), 1)
	if _, err := m.SeatAll([4]string{"steady", "nobody", "steady", "steady"}); err == nil {
		t.Fatalf("expected error for unknown persona")
	}
	if m.Registry().Count() != 3 {
		t.Fatalf("default registry has %d personas", m.Registry().Count())
	}
}
