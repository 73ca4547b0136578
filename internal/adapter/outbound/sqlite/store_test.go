package sqlite

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func makeRun(id string) ResultRun {
	now := time.Now().UTC()
	return ResultRun{
		ID:          id,
		BenchmarkID: "demo",
		ProfileID:   "default",
		StartedAt:   now,
		FinishedAt:  now,
		Scores: []ScoreSnapshot{
			{System: "urn:openscap:scoring:default", Score: 100, Weight: 1},
		},
		Results: []result.RuleResult{
			{RuleID: "rule-1", Verdict: result.Pass, Weight: 1, Role: model.RoleFull, Time: now},
		},
	}
}

func TestStore_AppendFlushAndRead(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "openscap.db")

	store, err := Open(path, 5, 10*time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	store.Append(makeRun("run-1"))
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer func() { _ = db.Close() }()

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM result_run`).Scan(&count); err != nil {
		t.Fatalf("query result_run: %v", err)
	}
	if count != 1 {
		t.Fatalf("result_run count = %d, want 1", count)
	}

	var ruleCount int
	if err := db.QueryRow(`SELECT count(*) FROM rule_result WHERE run_id = 'run-1'`).Scan(&ruleCount); err != nil {
		t.Fatalf("query rule_result: %v", err)
	}
	if ruleCount != 1 {
		t.Fatalf("rule_result count = %d, want 1", ruleCount)
	}
}

func TestStore_RecentRunsRingBuffer(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "openscap.db"), 2, time.Hour, testLogger())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer func() { _ = store.Close() }()

	store.Append(makeRun("run-1"))
	store.Append(makeRun("run-2"))
	store.Append(makeRun("run-3"))

	recent := store.RecentRuns(10)
	if len(recent) != 2 {
		t.Fatalf("len(RecentRuns) = %d, want 2 (ring buffer capacity)", len(recent))
	}
	if recent[0].ID != "run-3" || recent[1].ID != "run-2" {
		t.Fatalf("RecentRuns order = %v, want [run-3 run-2]", []string{recent[0].ID, recent[1].ID})
	}
}

func TestStore_CloseFlushesPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "openscap.db")
	store, err := Open(path, 5, time.Hour, testLogger())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	store.Append(makeRun("run-1"))
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer func() { _ = db.Close() }()

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM result_run`).Scan(&count); err != nil {
		t.Fatalf("query result_run: %v", err)
	}
	if count != 1 {
		t.Fatalf("result_run count = %d, want 1 (Close must flush pending writes)", count)
	}
}
