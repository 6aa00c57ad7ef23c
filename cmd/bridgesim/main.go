package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"bridge-lite/bridge"
	"bridge-lite/bridge/npc"
	"bridge-lite/internal/ledger"
	"bridge-lite/replay"
)

func main() {
	dealsFlag := flag.Int("deals", 10, "number of deals to simulate")
	seedFlag := flag.Int64("seed", 0, "base seed, 0 for time based")
	openerFlag := flag.String("opener", "N", "seat that calls first on the first deal")
	boardFlag := flag.String("board", "", "board name, deal i uses <board>-<i>")
	brainsFlag := flag.String("brains", "steady,random,pusher,random", "persona ids for N,E,S,W")
	personasFlag := flag.String("personas", "", "extra persona definitions (json)")
	ledgerFlag := flag.String("ledger", "memory", "ledger backend: memory, sqlite, postgres")
	replayFlag := flag.String("replay", "", "replay a deal spec file and print its tape")
	recentFlag := flag.Int("recent", 0, "list this many recent deals from the ledger after the run")
	serveFlag := flag.String("serve", "", "after the run, serve the ledger history API on this address")
	flag.Parse()

	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	if *replayFlag != "" {
		if err := runReplay(*replayFlag); err != nil {
			logger.Error("replay failed", "file", *replayFlag, "err", err)
			os.Exit(1)
		}
		return
	}

	opener, err := bridge.ParseSeat(*openerFlag)
	if err != nil {
		logger.Error("bad -opener", "err", err)
		os.Exit(2)
	}
	ids, err := parseBrains(*brainsFlag)
	if err != nil {
		logger.Error("bad -brains", "err", err)
		os.Exit(2)
	}

	registry := npc.DefaultRegistry()
	if *personasFlag != "" {
		if err := registry.LoadFromFile(*personasFlag); err != nil {
			logger.Error("load personas", "file", *personasFlag, "err", err)
			os.Exit(1)
		}
	}

	store, backend, err := ledger.NewServiceFromEnv(*ledgerFlag)
	if err != nil {
		logger.Error("open ledger", "mode", *ledgerFlag, "err", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("ledger ready", "backend", backend)

	sim := &simulator{
		logger:  logger,
		ledger:  store,
		manager: npc.NewManager(registry, *seedFlag),
		ids:     ids,
		seed:    *seedFlag,
		board:   *boardFlag,
	}

	ctx := context.Background()
	var summary runSummary
	for i := 0; i < *dealsFlag; i++ {
		res, err := sim.playOne(ctx, i, rotate(opener, i))
		if err != nil {
			logger.Error("deal aborted", "deal", i+1, "err", err)
			summary.aborted++
			continue
		}
		summary.add(res)
	}
	summary.render()

	if *recentFlag > 0 {
		if err := printRecent(ctx, store, *recentFlag); err != nil {
			logger.Warn("list recent deals", "err", err)
		}
	}

	if *serveFlag != "" {
		mux := http.NewServeMux()
		ledger.NewHTTPHandler(store).RegisterRoutes(mux)
		logger.Info("serving ledger", "addr", *serveFlag)
		if err := http.ListenAndServe(*serveFlag, mux); err != nil {
			logger.Error("serve", "err", err)
			os.Exit(1)
		}
	}
}

func parseBrains(raw string) ([4]string, error) {
	var ids [4]string
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return ids, fmt.Errorf("want 4 ids, got %d", len(parts))
	}
	for i, p := range parts {
		ids[i] = strings.TrimSpace(p)
		if ids[i] == "" {
			return ids, fmt.Errorf("empty id for %s", bridge.Seat(i))
		}
	}
	return ids, nil
}

func rotate(s bridge.Seat, n int) bridge.Seat {
	for i := 0; i < n%4; i++ {
		s = s.Next()
	}
	return s
}

func runReplay(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var spec replay.DealSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return fmt.Errorf("parse spec: %w", err)
	}
	resp := replay.HandleSpec(spec)
	fmt.Println(string(resp.Marshal()))
	if !resp.OK {
		return resp.Error
	}
	return nil
}
