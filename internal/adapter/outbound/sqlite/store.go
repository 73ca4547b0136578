// Package sqlite persists completed policy evaluations to a local SQLite
// database (spec.md §1 puts XML persistence out of scope; this is an
// additive, independent write-behind path, never read back into a live
// policy.Policy). Grounded on the teacher's
// internal/adapter/outbound/audit.FileAuditStore: a buffered append path, a
// background flush loop shut down via context cancellation, and an
// in-memory ring buffer of the most recent runs for fast operator access.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/berise/openscap/internal/domain/policy"
	"github.com/berise/openscap/internal/domain/result"
	"github.com/berise/openscap/internal/domain/scoring"
)

const schema = `
CREATE TABLE IF NOT EXISTS result_run (
	id             TEXT PRIMARY KEY,
	benchmark_id   TEXT NOT NULL,
	profile_id     TEXT NOT NULL,
	started_at     TEXT NOT NULL,
	finished_at    TEXT NOT NULL,
	scores_json    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rule_result (
	run_id    TEXT NOT NULL REFERENCES result_run(id),
	rule_id   TEXT NOT NULL,
	verdict   TEXT NOT NULL,
	weight    REAL NOT NULL,
	severity  TEXT NOT NULL,
	role      INTEGER NOT NULL,
	ts        TEXT NOT NULL,
	message   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rule_result_run ON rule_result(run_id);
`

// ScoreSnapshot is one scoring system's result at the time a run finished.
type ScoreSnapshot struct {
	System scoring.System `json:"system"`
	Score  float64        `json:"score"`
	Weight float64        `json:"weight"`
}

// ResultRun is one completed policy evaluation as persisted.
type ResultRun struct {
	ID          string
	BenchmarkID string
	ProfileID   string
	StartedAt   time.Time
	FinishedAt  time.Time
	Scores      []ScoreSnapshot
	Results     []result.RuleResult
}

// Store buffers ResultRun writes and flushes them to SQLite on an interval,
// keeping a ring buffer of the most recently written runs in memory so
// RecentRuns never touches disk.
type Store struct {
	db     *sql.DB
	log    *slog.Logger
	mu     sync.Mutex
	pending []ResultRun
	recent *ring

	cancel context.CancelFunc
	done   chan struct{}
}

// Open opens (creating if absent) the SQLite database at path, applies the
// schema, and starts the background flush loop. recentSize bounds the
// in-memory ring buffer; flushInterval governs how often pending runs are
// written.
func Open(path string, recentSize int, flushInterval time.Duration, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: single-writer, avoid SQLITE_BUSY
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	if recentSize <= 0 {
		recentSize = 20
	}
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		db:     db,
		log:    log,
		recent: newRing(recentSize),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.flushLoop(ctx, flushInterval)
	return s, nil
}

// Append enqueues run for the next flush and records it in the recent-runs
// ring buffer immediately, so RecentRuns reflects it before it hits disk.
func (s *Store) Append(run ResultRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, run)
	s.recent.add(run)
}

// RecentRuns returns up to n of the most recently appended runs, newest
// first.
func (s *Store) RecentRuns(n int) []ResultRun {
	return s.recent.recent(n)
}

// Flush writes all pending runs to SQLite synchronously.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin flush: %w", err)
	}
	for _, run := range batch {
		if err := writeRun(ctx, tx, run); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit flush: %w", err)
	}
	return nil
}

func writeRun(ctx context.Context, tx *sql.Tx, run ResultRun) error {
	scoresJSON, err := json.Marshal(run.Scores)
	if err != nil {
		return fmt.Errorf("sqlite: marshal scores for run %s: %w", run.ID, err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO result_run (id, benchmark_id, profile_id, started_at, finished_at, scores_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.BenchmarkID, run.ProfileID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		string(scoresJSON))
	if err != nil {
		return fmt.Errorf("sqlite: insert result_run %s: %w", run.ID, err)
	}
	for _, rr := range run.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO rule_result (run_id, rule_id, verdict, weight, severity, role, ts, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, rr.RuleID, rr.Verdict.String(), rr.Weight, rr.Severity, int(rr.Role),
			rr.Time.UTC().Format(time.RFC3339Nano), rr.Message)
		if err != nil {
			return fmt.Errorf("sqlite: insert rule_result %s/%s: %w", run.ID, rr.RuleID, err)
		}
	}
	return nil
}

func (s *Store) flushLoop(ctx context.Context, interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := s.Flush(context.Background()); err != nil {
				s.log.Error("sqlite: final flush failed", "error", err)
			}
			return
		case <-ticker.C:
			if err := s.Flush(ctx); err != nil {
				s.log.Error("sqlite: periodic flush failed", "error", err)
			}
		}
	}
}

// Close stops the flush loop, performs a final flush, and closes the
// underlying database handle.
func (s *Store) Close() error {
	s.cancel()
	<-s.done
	return s.db.Close()
}

// ScoresFromPolicy snapshots every recognized scoring system for p's
// results, for use when constructing a ResultRun.
func ScoresFromPolicy(p *policy.Policy) []ScoreSnapshot {
	systems := []scoring.System{
		scoring.SystemDefault, scoring.SystemFlat,
		scoring.SystemFlatUnweighted, scoring.SystemAbsolute,
	}
	out := make([]ScoreSnapshot, 0, len(systems))
	for _, sys := range systems {
		sc, err := scoring.Compute(sys, p.Model, p.Results)
		if err != nil {
			continue
		}
		out = append(out, ScoreSnapshot{System: sys, Score: sc.Score, Weight: sc.Weight})
	}
	return out
}
