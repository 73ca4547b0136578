package scoring_test

import (
	"testing"

	"github.com/berise/openscap/internal/adapter/outbound/memory"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
	"github.com/berise/openscap/internal/domain/scoring"
)

func twoRuleBenchmark() model.Benchmark {
	return memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:     "G",
		Weight: 1,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{ID: "R1", Weight: 1}},
			{Rule: &memory.RuleSpec{ID: "R2", Weight: 1}},
		},
	}, nil, nil, nil)
}

func TestCompute_BothPass(t *testing.T) {
	bench := twoRuleBenchmark()
	results := []result.RuleResult{
		{RuleID: "R1", Verdict: result.Pass},
		{RuleID: "R2", Verdict: result.Pass},
	}

	def, err := scoring.Compute(scoring.SystemDefault, bench, results)
	if err != nil || def.Score != 100 {
		t.Fatalf("expected default score 100, got %+v err=%v", def, err)
	}
	flat, err := scoring.Compute(scoring.SystemFlat, bench, results)
	if err != nil || flat.Score != 2 || flat.Weight != 2 {
		t.Fatalf("expected flat 2/2, got %+v err=%v", flat, err)
	}
	abs, err := scoring.Compute(scoring.SystemAbsolute, bench, results)
	if err != nil || abs.Score != 1 {
		t.Fatalf("expected absolute 1, got %+v err=%v", abs, err)
	}
}

func TestCompute_OnePassOneFail(t *testing.T) {
	bench := twoRuleBenchmark()
	results := []result.RuleResult{
		{RuleID: "R1", Verdict: result.Pass},
		{RuleID: "R2", Verdict: result.Fail},
	}

	def, err := scoring.Compute(scoring.SystemDefault, bench, results)
	if err != nil || def.Score != 50 {
		t.Fatalf("expected default score 50, got %+v err=%v", def, err)
	}
	flat, err := scoring.Compute(scoring.SystemFlat, bench, results)
	if err != nil || flat.Score != 1 || flat.Weight != 2 {
		t.Fatalf("expected flat 1/2, got %+v err=%v", flat, err)
	}
	abs, err := scoring.Compute(scoring.SystemAbsolute, bench, results)
	if err != nil || abs.Score != 0 {
		t.Fatalf("expected absolute 0, got %+v err=%v", abs, err)
	}
}

func TestCompute_ExcludedVerdictsDontShiftDenominator(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID: "G",
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{ID: "R1", Weight: 1}},
			{Rule: &memory.RuleSpec{ID: "R2", Weight: 1}},
			{Rule: &memory.RuleSpec{ID: "R3", Weight: 1}},
			{Rule: &memory.RuleSpec{ID: "R4", Weight: 1}},
		},
	}, nil, nil, nil)
	results := []result.RuleResult{
		{RuleID: "R1", Verdict: result.Pass},
		{RuleID: "R2", Verdict: result.NotSelected},
		{RuleID: "R3", Verdict: result.NotApplicable},
		{RuleID: "R4", Verdict: result.NotChecked},
	}

	flat, err := scoring.Compute(scoring.SystemFlat, bench, results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flat.Weight != 1 {
		t.Fatalf("expected excluded verdicts to not shift the denominator, got weight %v", flat.Weight)
	}
	if flat.Score != 1 {
		t.Fatalf("expected flat score 1 (only R1 counted), got %v", flat.Score)
	}
}

func TestCompute_UnknownSystem(t *testing.T) {
	bench := twoRuleBenchmark()
	_, err := scoring.Compute(scoring.System("urn:bogus"), bench, nil)
	if err != scoring.ErrUnknownSystem {
		t.Fatalf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestCompute_FlatUnweightedForcesWeightOne(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID: "G",
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{ID: "R1", Weight: 5}},
			{Rule: &memory.RuleSpec{ID: "R2", Weight: 10}},
		},
	}, nil, nil, nil)
	results := []result.RuleResult{
		{RuleID: "R1", Verdict: result.Pass},
		{RuleID: "R2", Verdict: result.Pass},
	}
	flat, err := scoring.Compute(scoring.SystemFlatUnweighted, bench, results)
	if err != nil || flat.Score != 2 || flat.Weight != 2 {
		t.Fatalf("expected unweighted flat 2/2 ignoring declared weights, got %+v err=%v", flat, err)
	}
}
