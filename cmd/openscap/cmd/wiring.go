package cmd

import (
	"log/slog"

	"github.com/berise/openscap/internal/adapter/outbound/cel"
	"github.com/berise/openscap/internal/adapter/outbound/memory"
	"github.com/berise/openscap/internal/config"
	"github.com/berise/openscap/internal/domain/applicability"
	"github.com/berise/openscap/internal/domain/engine"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/policy"
	"github.com/berise/openscap/internal/observability"
	"github.com/berise/openscap/internal/service"
)

// run bundles everything a run of the engine needs: the policy under
// evaluation, the evaluator that drives it, and the logger both were built
// with.
type run struct {
	policy    *policy.Policy
	evaluator *service.Evaluator
	log       *slog.Logger
}

// buildRun loads config and wires a Policy + Evaluator against the fixture
// content named by cfg.Content.BenchmarkID (presently only "demo" is
// shipped; any other value is an error, since no XML parser is in scope to
// produce something else).
func buildRun() (*run, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)

	bench, err := loadBenchmark(cfg.Content.BenchmarkID)
	if err != nil {
		return nil, nil, err
	}

	var profile model.Profile
	if cfg.Content.ProfileID != "" {
		profile, err = loadProfile(cfg.Content.ProfileID)
		if err != nil {
			return nil, nil, err
		}
	}

	reg := engine.NewRegistry()
	if cfg.Engines.CEL {
		celEngine := cel.NewEngine()
		celEngine.RegisterOn(reg)
		reg.RegisterEvaluator(applicability.CheckSystemPlatform, celEngine.Evaluate)
	}

	p := policy.NewPolicy(bench, profile)
	p.HostPlatform = cfg.Content.Platform
	p.HostHostname = cfg.Content.Hostname

	applEngine := applicability.NewEngine(reg, p.Sessions, "")
	applEngine.OnSessionLoadFailed(func(href string, err error) {
		log.Warn("applicability session load failed", "href", href, "error", err)
	})

	evaluator := service.NewEvaluator(reg, applEngine, applicability.Extra{}, log)

	return &run{policy: p, evaluator: evaluator, log: log}, cfg, nil
}

func loadBenchmark(id string) (model.Benchmark, error) {
	switch id {
	case "", "demo":
		return memory.DemoBenchmark(), nil
	default:
		return nil, unknownFixtureError("benchmark", id)
	}
}

func loadProfile(id string) (model.Profile, error) {
	switch id {
	case "moderate":
		return memory.DemoProfile(), nil
	default:
		return nil, unknownFixtureError("profile", id)
	}
}

type fixtureError struct {
	kind, id string
}

func (e *fixtureError) Error() string {
	return "cmd: unknown " + e.kind + " fixture " + `"` + e.id + `"` + " (no XML parser is in scope; only named in-memory fixtures are available)"
}

func unknownFixtureError(kind, id string) error {
	return &fixtureError{kind: kind, id: id}
}
