package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultLocalDBName = "bridge_local.db"

type SQLiteService struct {
	db          *sql.DB
	recentLimit int
	savedLimit  int
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	dbPath, err := ledgerLocalDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteService(dbPath)
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteLedgerSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Printf("[Ledger] sqlite ready: path=%s", dbPath)
	return &SQLiteService{
		db:          db,
		recentLimit: envIntOrDefault("LEDGER_RECENT_LIMIT", defaultRecentLimit),
		savedLimit:  envIntOrDefault("LEDGER_SAVED_LIMIT", defaultSavedLimit),
	}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordDeal(ctx context.Context, rec DealRecord) error {
	if err := validateRecord(&rec); err != nil {
		return err
	}
	summaryRaw, err := json.Marshal(rec.Summary)
	if err != nil {
		return err
	}
	playedAtMs := rec.PlayedAt.UTC().UnixMilli()
	nowMs := time.Now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range rec.Events {
		if e.EventType == "" {
			e.EventType = "unknown"
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO deal_event_stream (
    source, deal_id, seq, event_type, envelope_b64, server_ts_ms, created_at_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (source, deal_id, seq) DO UPDATE
SET
    event_type = excluded.event_type,
    envelope_b64 = excluded.envelope_b64,
    server_ts_ms = excluded.server_ts_ms
`, string(rec.Source), rec.DealID, int64(e.Seq), e.EventType, e.EnvelopeB64, nullableInt64Ptr(e.ServerTsMs), nowMs)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO deal_history (
    source, deal_id, played_at_ms, summary_json, is_saved, saved_at_ms, created_at_ms, updated_at_ms
)
VALUES (?, ?, ?, ?, 0, NULL, ?, ?)
ON CONFLICT (deal_id) DO UPDATE
SET
    played_at_ms = excluded.played_at_ms,
    summary_json = excluded.summary_json,
    updated_at_ms = excluded.updated_at_ms
`, string(rec.Source), rec.DealID, playedAtMs, string(summaryRaw), nowMs, nowMs)
	if err != nil {
		return err
	}

	if s.recentLimit > 0 {
		if err := s.trimLocked(ctx, tx, rec.Source); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// trimLocked drops unsaved deals beyond recentLimit, oldest first.
func (s *SQLiteService) trimLocked(ctx context.Context, tx *sql.Tx, source Source) error {
	_, err := tx.ExecContext(ctx, `
DELETE FROM deal_event_stream
WHERE source = ?
  AND deal_id IN (
      SELECT deal_id
      FROM deal_history
      WHERE source = ?
        AND is_saved = 0
      ORDER BY played_at_ms DESC, id DESC
      LIMIT -1 OFFSET ?
  )
`, string(source), string(source), s.recentLimit)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
DELETE FROM deal_history
WHERE source = ?
  AND is_saved = 0
  AND id IN (
      SELECT id
      FROM deal_history
      WHERE source = ?
        AND is_saved = 0
      ORDER BY played_at_ms DESC, id DESC
      LIMIT -1 OFFSET ?
  )
`, string(source), string(source), s.recentLimit)
	return err
}

func (s *SQLiteService) ListRecent(ctx context.Context, source Source, limit int) ([]HistoryItem, error) {
	if !validSource(source) {
		return nil, fmt.Errorf("invalid source %q", source)
	}
	limit = clampLimit(limit)

	rows, err := s.db.QueryContext(ctx, `
SELECT deal_id, source, played_at_ms, summary_json, is_saved, saved_at_ms, updated_at_ms
FROM deal_history
WHERE source = ?
ORDER BY played_at_ms DESC, id DESC
LIMIT ?
`, string(source), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]HistoryItem, 0, limit)
	for rows.Next() {
		item, err := scanSQLiteHistory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteHistory(row rowScanner) (HistoryItem, error) {
	var item HistoryItem
	var sourceRaw string
	var summaryRaw string
	var playedAtMs, updatedAtMs int64
	var isSaved int
	var savedAtMs sql.NullInt64
	if err := row.Scan(&item.DealID, &sourceRaw, &playedAtMs, &summaryRaw, &isSaved, &savedAtMs, &updatedAtMs); err != nil {
		return item, err
	}
	item.Source = Source(sourceRaw)
	item.PlayedAt = time.UnixMilli(playedAtMs).UTC()
	item.UpdatedAt = time.UnixMilli(updatedAtMs).UTC()
	item.IsSaved = isSaved != 0
	if savedAtMs.Valid {
		t := time.UnixMilli(savedAtMs.Int64).UTC()
		item.SavedAt = &t
	}
	if summaryRaw != "" {
		_ = json.Unmarshal([]byte(summaryRaw), &item.Summary)
	}
	if item.Summary == nil {
		item.Summary = map[string]any{}
	}
	return item, nil
}

func (s *SQLiteService) GetDeal(ctx context.Context, dealID string) (*DealDetail, error) {
	if strings.TrimSpace(dealID) == "" {
		return nil, ErrNotFound
	}
	item, err := scanSQLiteHistory(s.db.QueryRowContext(ctx, `
SELECT deal_id, source, played_at_ms, summary_json, is_saved, saved_at_ms, updated_at_ms
FROM deal_history
WHERE deal_id = ?
`, dealID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT seq, event_type, envelope_b64, server_ts_ms
FROM deal_event_stream
WHERE source = ?
  AND deal_id = ?
ORDER BY seq ASC
`, string(item.Source), dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]EventItem, 0, 128)
	for rows.Next() {
		var e EventItem
		var seq int64
		var serverTs sql.NullInt64
		if err := rows.Scan(&seq, &e.EventType, &e.EnvelopeB64, &serverTs); err != nil {
			return nil, err
		}
		e.Seq = uint64(seq)
		if serverTs.Valid {
			v := serverTs.Int64
			e.ServerTsMs = &v
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &DealDetail{HistoryItem: item, Events: events}, nil
}

func (s *SQLiteService) SetSaved(ctx context.Context, dealID string, saved bool) error {
	if strings.TrimSpace(dealID) == "" {
		return ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current int
	var sourceRaw string
	if err := tx.QueryRowContext(ctx, `
SELECT is_saved, source
FROM deal_history
WHERE deal_id = ?
`, dealID).Scan(&current, &sourceRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if (current != 0) == saved {
		return tx.Commit()
	}

	nowMs := time.Now().UTC().UnixMilli()
	if saved {
		var savedCount int
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(1)
FROM deal_history
WHERE source = ?
  AND is_saved = 1
`, sourceRaw).Scan(&savedCount); err != nil {
			return err
		}
		if savedCount >= s.savedLimit {
			return ErrSavedLimitReach
		}
		if _, err := tx.ExecContext(ctx, `
UPDATE deal_history
SET is_saved = 1,
    saved_at_ms = ?,
    updated_at_ms = ?
WHERE deal_id = ?
`, nowMs, nowMs, dealID); err != nil {
			return err
		}
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE deal_history
SET is_saved = 0,
    saved_at_ms = NULL,
    updated_at_ms = ?
WHERE deal_id = ?
`, nowMs, dealID); err != nil {
		return err
	}
	if s.recentLimit > 0 {
		if err := s.trimLocked(ctx, tx, Source(sourceRaw)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func ensureSQLiteLedgerSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS deal_event_stream (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    deal_id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    event_type TEXT NOT NULL,
    envelope_b64 TEXT NOT NULL DEFAULT '',
    server_ts_ms INTEGER,
    created_at_ms INTEGER NOT NULL,
    UNIQUE (source, deal_id, seq)
)`,
		`CREATE INDEX IF NOT EXISTS idx_deal_event_stream_deal_seq ON deal_event_stream(source, deal_id, seq)`,
		`
CREATE TABLE IF NOT EXISTS deal_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    deal_id TEXT NOT NULL,
    played_at_ms INTEGER NOT NULL,
    summary_json TEXT NOT NULL DEFAULT '{}',
    is_saved INTEGER NOT NULL DEFAULT 0,
    saved_at_ms INTEGER,
    created_at_ms INTEGER NOT NULL,
    updated_at_ms INTEGER NOT NULL,
    UNIQUE (deal_id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_deal_history_recent ON deal_history(source, played_at_ms DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_deal_history_saved ON deal_history(source, is_saved, saved_at_ms DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func ledgerLocalDatabasePathFromEnv() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("LEDGER_LOCAL_DATABASE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate), nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "BridgeLite", defaultLocalDBName), nil
}
