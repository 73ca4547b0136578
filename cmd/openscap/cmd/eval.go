package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	osqlite "github.com/berise/openscap/internal/adapter/outbound/sqlite"
	"github.com/berise/openscap/internal/domain/result"
	"github.com/berise/openscap/internal/observability"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the configured benchmark/profile and print rule results",
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	r, cfg, err := buildRun()
	if err != nil {
		return err
	}

	shutdownTracing, err := observability.NewTracerProvider("openscap", io.Discard)
	if err != nil {
		r.log.Warn("failed to start tracer provider", "error", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				r.log.Warn("tracer provider shutdown failed", "error", err)
			}
		}()
	}

	if cfg.Metrics.Enabled {
		shutdownMetrics := serveMetrics(cfg.Metrics.Addr, r.log)
		defer func() {
			if err := shutdownMetrics(context.Background()); err != nil {
				r.log.Warn("metrics server shutdown failed", "error", err)
			}
		}()
	}

	started := time.Now().UTC()
	if err := r.evaluator.EvaluateAll(context.Background(), r.policy); err != nil {
		return fmt.Errorf("evaluation aborted: %w", err)
	}
	finished := time.Now().UTC()
	metrics.EvaluationDuration.Observe(finished.Sub(started).Seconds())

	recordVerdictMetrics(r.policy.Results)
	metrics.SessionCacheSize.Set(float64(r.policy.Sessions.Len()))
	printResults(r.policy.Results)

	store, err := osqlite.Open(cfg.Store.Path, cfg.Store.RecentRuns, parseFlushInterval(cfg.Store.FlushInterval), r.log)
	if err != nil {
		r.log.Error("failed to open result store", "error", err)
		return nil
	}
	defer func() {
		if err := store.Close(); err != nil {
			r.log.Error("failed to close result store", "error", err)
		}
	}()

	store.Append(osqlite.ResultRun{
		ID:          uuid.NewString(),
		BenchmarkID: r.policy.Model.ID(),
		ProfileID:   r.policy.ProfileID,
		StartedAt:   started,
		FinishedAt:  finished,
		Scores:      osqlite.ScoresFromPolicy(r.policy),
		Results:     r.policy.Results,
	})
	if err := store.Flush(context.Background()); err != nil {
		r.log.Error("failed to flush result store", "error", err)
	}
	return nil
}

func printResults(results []result.RuleResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "RULE\tVERDICT\tSEVERITY\tMESSAGE")
	for _, rr := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rr.RuleID, rr.Verdict, rr.Severity, rr.Message)
	}
	_ = w.Flush()
}

func parseFlushInterval(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Second
	}
	return d
}
