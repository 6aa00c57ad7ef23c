package ledger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bridge-lite/replay"

	"github.com/google/uuid"
)

const (
	defaultRecentLimit = 200
	defaultSavedLimit  = 50
	defaultCacheSize   = 128
)

type Source string

const (
	SourceSim    Source = "sim"
	SourceReplay Source = "replay"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrSavedLimitReach = errors.New("saved deal limit reached")
)

// Service stores finished deals and their replay tapes.
type Service interface {
	Close() error
	RecordDeal(ctx context.Context, rec DealRecord) error
	ListRecent(ctx context.Context, source Source, limit int) ([]HistoryItem, error)
	GetDeal(ctx context.Context, dealID string) (*DealDetail, error)
	SetSaved(ctx context.Context, dealID string, saved bool) error
}

type DealRecord struct {
	DealID   string
	Source   Source
	PlayedAt time.Time
	Summary  map[string]any
	Events   []EventItem
}

type HistoryItem struct {
	DealID    string         `json:"deal_id"`
	Source    Source         `json:"source"`
	PlayedAt  time.Time      `json:"played_at"`
	IsSaved   bool           `json:"is_saved"`
	SavedAt   *time.Time     `json:"saved_at,omitempty"`
	Summary   map[string]any `json:"summary"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type DealDetail struct {
	HistoryItem
	Events []EventItem `json:"events"`
}

type EventItem struct {
	Seq         uint64 `json:"seq"`
	EventType   string `json:"event_type"`
	EnvelopeB64 string `json:"envelope_b64"`
	ServerTsMs  *int64 `json:"server_ts_ms,omitempty"`
}

// NewDealID returns a fresh random deal id.
func NewDealID() string {
	return uuid.NewString()
}

// EventsFromTape converts a replay tape into ledger rows.
func EventsFromTape(tape *replay.WireReplayTape) []EventItem {
	if tape == nil {
		return nil
	}
	out := make([]EventItem, 0, len(tape.Events))
	for _, e := range tape.Events {
		ts := int64(e.Seq)
		out = append(out, EventItem{
			Seq:         e.Seq,
			EventType:   e.Type,
			EnvelopeB64: e.EnvelopeB64,
			ServerTsMs:  &ts,
		})
	}
	return out
}

type noopService struct{}

func (n *noopService) Close() error { return nil }

func (n *noopService) RecordDeal(_ context.Context, _ DealRecord) error { return nil }

func (n *noopService) ListRecent(_ context.Context, _ Source, _ int) ([]HistoryItem, error) {
	return []HistoryItem{}, nil
}

func (n *noopService) GetDeal(_ context.Context, _ string) (*DealDetail, error) {
	return nil, ErrNotFound
}

func (n *noopService) SetSaved(_ context.Context, _ string, _ bool) error {
	return ErrNotFound
}

// NewServiceFromEnv picks the storage backend. An empty mode falls back to
// LEDGER_MODE, then to sqlite. The second return value names the backend.
func NewServiceFromEnv(mode string) (Service, string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = strings.ToLower(strings.TrimSpace(os.Getenv("LEDGER_MODE")))
	}

	var (
		svc  Service
		name string
		err  error
	)
	switch mode {
	case "memory", "noop":
		return &noopService{}, "memory-noop", nil
	case "", "local", "sqlite":
		svc, err = NewSQLiteServiceFromEnv()
		name = "sqlite"
	case "postgres", "pg":
		svc, err = NewPostgresService(ledgerDSNFromEnv())
		name = "postgres"
	default:
		return nil, "", fmt.Errorf("unknown ledger mode %q", mode)
	}
	if err != nil {
		return nil, "", err
	}

	size := envIntOrDefault("LEDGER_CACHE_SIZE", defaultCacheSize)
	cached, err := NewCachedService(svc, size)
	if err != nil {
		_ = svc.Close()
		return nil, "", err
	}
	return cached, name + "+lru", nil
}

func validSource(source Source) bool {
	return source == SourceSim || source == SourceReplay
}

func validateRecord(rec *DealRecord) error {
	if strings.TrimSpace(rec.DealID) == "" {
		return fmt.Errorf("deal id is required")
	}
	if rec.Source == "" {
		rec.Source = SourceSim
	}
	if !validSource(rec.Source) {
		return fmt.Errorf("invalid source %q", rec.Source)
	}
	if len(rec.Events) == 0 {
		return fmt.Errorf("events is required")
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = time.Now().UTC()
	}
	if rec.Summary == nil {
		rec.Summary = map[string]any{}
	}
	if _, ok := rec.Summary["event_count"]; !ok {
		rec.Summary["event_count"] = len(rec.Events)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

func envIntOrDefault(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func nullableInt64Ptr(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
