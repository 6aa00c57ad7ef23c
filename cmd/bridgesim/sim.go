package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"bridge-lite/bridge"
	"bridge-lite/bridge/npc"
	"bridge-lite/card"
	"bridge-lite/internal/ledger"
	"bridge-lite/replay"
)

type simulator struct {
	logger  *slog.Logger
	ledger  ledger.Service
	manager *npc.Manager
	ids     [4]string
	seed    int64
	board   string
}

type dealResult struct {
	id     string
	record *npc.DealRecord
}

func (s *simulator) playOne(ctx context.Context, index int, opener bridge.Seat) (*dealResult, error) {
	cfg := bridge.Config{OpeningSeat: opener}
	if s.seed != 0 {
		cfg.Seed = s.seed + int64(index)
	}
	if s.board != "" {
		cfg.Board = fmt.Sprintf("%s-%d", s.board, index+1)
	}
	g, err := bridge.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	if err := g.StartDeal(); err != nil {
		return nil, err
	}

	var hands [4]card.CardList
	for _, seat := range bridge.Seats {
		hands[seat] = g.Hand(seat)
	}

	brains, err := s.manager.SeatAll(s.ids)
	if err != nil {
		return nil, err
	}
	rec, err := npc.PlayDeal(g, brains)
	if err != nil {
		return nil, err
	}

	tape, err := replay.GenerateReplayTape(replay.SpecFromDeal(opener, hands, rec.Calls, rec.Plays))
	if err != nil {
		return nil, fmt.Errorf("build tape: %w", err)
	}

	id := ledger.NewDealID()
	err = s.ledger.RecordDeal(ctx, ledger.DealRecord{
		DealID:   id,
		Source:   ledger.SourceSim,
		PlayedAt: time.Now(),
		Summary:  dealSummary(opener, cfg.Board, rec),
		Events:   ledger.EventsFromTape(replay.ToWireReplayTape(tape)),
	})
	if err != nil {
		s.logger.Warn("record deal", "deal", id, "err", err)
	}

	if rec.PassedOut {
		s.logger.Info("deal passed out", "deal", index+1, "opener", opener)
	} else {
		s.logger.Info("deal finished", "deal", index+1, "result", rec.Outcome.String())
	}
	return &dealResult{id: id, record: rec}, nil
}

func dealSummary(opener bridge.Seat, board string, rec *npc.DealRecord) map[string]any {
	out := map[string]any{
		"opener":     opener.String(),
		"calls":      len(rec.Calls),
		"passed_out": rec.PassedOut,
	}
	if board != "" {
		out["board"] = board
	}
	if rec.Outcome != nil {
		o := rec.Outcome
		out["contract"] = o.Contract.String()
		out["result"] = o.String()
		out["declarer_tricks"] = o.DeclarerTricks
		out["fulfilled"] = o.Fulfilled
		out["margin"] = o.Margin
	}
	return out
}

type runSummary struct {
	made       int
	failed     int
	passedOut  int
	aborted    int
	overtrick  int
	undertrick int
	byStrain   map[bridge.Strain]int
}

func (r *runSummary) add(res *dealResult) {
	rec := res.record
	if rec.PassedOut || rec.Outcome == nil {
		r.passedOut++
		return
	}
	if r.byStrain == nil {
		r.byStrain = make(map[bridge.Strain]int)
	}
	r.byStrain[rec.Outcome.Contract.Strain]++
	if rec.Outcome.Fulfilled {
		r.made++
		r.overtrick += rec.Outcome.Margin
	} else {
		r.failed++
		r.undertrick -= rec.Outcome.Margin
	}
}

func (r *runSummary) render() {
	total := r.made + r.failed + r.passedOut + r.aborted
	data := pterm.TableData{
		{"Outcome", "Deals"},
		{"Made", humanize.Comma(int64(r.made))},
		{"Failed", humanize.Comma(int64(r.failed))},
		{"Passed out", humanize.Comma(int64(r.passedOut))},
		{"Aborted", humanize.Comma(int64(r.aborted))},
		{"Overtricks", humanize.Comma(int64(r.overtrick))},
		{"Undertricks", humanize.Comma(int64(r.undertrick))},
	}
	for _, st := range []bridge.Strain{bridge.StrainClubs, bridge.StrainDiamonds, bridge.StrainHearts, bridge.StrainSpades, bridge.NoTrump} {
		if n := r.byStrain[st]; n > 0 {
			data = append(data, []string{"Contracts in " + st.String(), humanize.Comma(int64(n))})
		}
	}
	pterm.DefaultSection.Printfln("%s deals", humanize.Comma(int64(total)))
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func printRecent(ctx context.Context, store ledger.Service, limit int) error {
	items, err := store.ListRecent(ctx, ledger.SourceSim, limit)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Deal", "Played", "Result"}}
	for _, it := range items {
		result, _ := it.Summary["result"].(string)
		if passed, _ := it.Summary["passed_out"].(bool); passed {
			result = "passed out"
		}
		data = append(data, []string{it.DealID, humanize.Time(it.PlayedAt), result})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
