package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berise/openscap/internal/domain/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Evaluate the configured benchmark/profile and print scores under every model, or only the configured one",
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	r, cfg, err := buildRun()
	if err != nil {
		return err
	}
	if err := r.evaluator.EvaluateAll(context.Background(), r.policy); err != nil {
		return fmt.Errorf("evaluation aborted: %w", err)
	}

	systems := scoringSystems(cfg.Scoring.System)
	for _, sys := range systems {
		sc, err := scoring.Compute(sys, r.policy.Model, r.policy.Results)
		if err != nil {
			fmt.Printf("%-45s error: %v\n", sys, err)
			continue
		}
		fmt.Printf("%-45s score=%.2f weight=%.2f\n", sys, sc.Score, sc.Weight)
		metrics.ScoreGauge.WithLabelValues(string(sys)).Set(sc.Score)
	}
	return nil
}

// scoringSystems returns the scoring systems to report: all four by
// default, or just configured if cfg.Scoring.System names one.
func scoringSystems(configured string) []scoring.System {
	all := []scoring.System{
		scoring.SystemDefault, scoring.SystemFlat,
		scoring.SystemFlatUnweighted, scoring.SystemAbsolute,
	}
	if configured == "" {
		return all
	}
	for _, sys := range all {
		if string(sys) == configured {
			return []scoring.System{sys}
		}
	}
	return all
}
