// Package portfolio is a thin stub for the relational metadata store
// that sits alongside the graph: per-person notes, saved searches, and
// other account-scoped bookkeeping the ranker itself never reads. It
// exists only so recompute/rank operations have somewhere to record an
// audit trail without writing that concern into the graph store, and is
// out of scope for ranking itself (§ Non-goals). Pool tuning follows the
// teacher's internal/storage/db.go — the teacher's own candidate-tracking
// table, re-homed here as a rank-run audit log instead.
package portfolio

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// Store records rank-run provenance: who asked, what query, how many
// results, when. Nothing in the ranker depends on reading this back.
type Store struct {
	db *sql.DB
}

func Open(dataSourceName string) (*Store, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the audit table if it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS rank_runs (
			id UUID PRIMARY KEY,
			me_id TEXT NOT NULL,
			query TEXT NOT NULL,
			result_count INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// RecordRun appends one rank-run audit row. Failures here must never
// fail the rank request itself — callers should log and continue.
func (s *Store) RecordRun(ctx context.Context, runID, meID, query string, resultCount int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rank_runs (id, me_id, query, result_count) VALUES ($1, $2, $3, $4)`,
		runID, meID, query, resultCount)
	return err
}
