package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultHistoryLimit is the number of records Recent returns when no limit is given.
const DefaultHistoryLimit = 50

// ErrHistoryNotConfigured is returned by the no-op store for read operations.
var ErrHistoryNotConfigured = errors.New("history not configured")

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// RenderRecord describes one map written to disk.
type RenderRecord struct {
	ID         string    `json:"id"`
	Year       string    `json:"year"`
	GDPFile    string    `json:"gdpFile"`
	OutputPath string    `json:"outputPath"`
	Matched    int       `json:"matched"`
	NotFound   int       `json:"notFound"`
	NoData     int       `json:"noData"`
	DurationMs int64     `json:"durationMs"`
	ClientIP   string    `json:"clientIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HistoryStore persists render records.
type HistoryStore interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, rec *RenderRecord) error
	Recent(ctx context.Context, limit int) ([]RenderRecord, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}

const createHistoryTable = `
CREATE TABLE IF NOT EXISTS gdp_render_history (
	id          uuid PRIMARY KEY,
	year        text NOT NULL,
	gdp_file    text NOT NULL,
	output_path text NOT NULL,
	matched     integer NOT NULL,
	not_found   integer NOT NULL,
	no_data     integer NOT NULL,
	duration_ms bigint NOT NULL,
	client_ip   text,
	user_agent  text,
	created_at  timestamptz NOT NULL DEFAULT now()
)`

const createHistoryIndex = `
CREATE INDEX IF NOT EXISTS gdp_render_history_created_at_idx
	ON gdp_render_history (created_at DESC)`

const insertHistory = `
INSERT INTO gdp_render_history
	(id, year, gdp_file, output_path, matched, not_found, no_data, duration_ms, client_ip, user_agent)
VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''))
RETURNING created_at`

const selectRecentHistory = `
SELECT id::text, year, gdp_file, output_path, matched, not_found, no_data, duration_ms,
	COALESCE(client_ip, ''), COALESCE(user_agent, ''), created_at
FROM gdp_render_history
ORDER BY created_at DESC
LIMIT $1`

const deleteOldHistory = `
DELETE FROM gdp_render_history
WHERE created_at < now() - make_interval(secs => $1)`

// PgHistoryStore keeps render history in PostgreSQL.
type PgHistoryStore struct {
	db DBTX
}

// NewPgHistoryStore creates a store on top of a pool or transaction.
func NewPgHistoryStore(db DBTX) *PgHistoryStore {
	return &PgHistoryStore{db: db}
}

// EnsureSchema creates the history table if it does not exist.
func (s *PgHistoryStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createHistoryTable); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	if _, err := s.db.Exec(ctx, createHistoryIndex); err != nil {
		return fmt.Errorf("create history index: %w", err)
	}
	return nil
}

// Record inserts rec, assigning an ID if it has none and filling CreatedAt.
func (s *PgHistoryStore) Record(ctx context.Context, rec *RenderRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	err := s.db.QueryRow(ctx, insertHistory,
		rec.ID,
		rec.Year,
		rec.GDPFile,
		rec.OutputPath,
		rec.Matched,
		rec.NotFound,
		rec.NoData,
		rec.DurationMs,
		rec.ClientIP,
		rec.UserAgent,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert render history: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *PgHistoryStore) Recent(ctx context.Context, limit int) ([]RenderRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := s.db.Query(ctx, selectRecentHistory, limit)
	if err != nil {
		return nil, fmt.Errorf("query render history: %w", err)
	}
	defer rows.Close()

	records := make([]RenderRecord, 0, limit)
	for rows.Next() {
		var r RenderRecord
		if err := rows.Scan(
			&r.ID,
			&r.Year,
			&r.GDPFile,
			&r.OutputPath,
			&r.Matched,
			&r.NotFound,
			&r.NoData,
			&r.DurationMs,
			&r.ClientIP,
			&r.UserAgent,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan render history: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read render history: %w", err)
	}
	return records, nil
}

// Prune deletes records older than olderThan and returns how many were removed.
func (s *PgHistoryStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteOldHistory, olderThan.Seconds())
	if err != nil {
		return 0, fmt.Errorf("prune render history: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NopHistoryStore is used when no database is configured. Writes are
// dropped and reads fail with ErrHistoryNotConfigured.
type NopHistoryStore struct{}

func (NopHistoryStore) EnsureSchema(context.Context) error { return nil }

func (NopHistoryStore) Record(_ context.Context, rec *RenderRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (NopHistoryStore) Recent(context.Context, int) ([]RenderRecord, error) {
	return nil, ErrHistoryNotConfigured
}

func (NopHistoryStore) Prune(context.Context, time.Duration) (int64, error) {
	return 0, nil
}
