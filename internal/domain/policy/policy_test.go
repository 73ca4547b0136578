package policy_test

import (
	"testing"

	"github.com/berise/openscap/internal/adapter/outbound/memory"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/policy"
)

func sampleBenchmark() model.Benchmark {
	return memory.BuildBenchmark("xccdf_test_benchmark_1", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID:              "R1",
				DefaultSelected: true,
				Checks: []model.Check{
					{System: "urn:openscap:check-system:cel", ContentRefs: []model.ContentRef{{Href: "checks.cel"}}},
				},
			}},
		},
	}, nil, nil, nil)
}

func TestNewPolicy_BuildsSelectionMap(t *testing.T) {
	bench := sampleBenchmark()
	p := policy.NewPolicy(bench, &memory.Profile{IDValue: "default"})
	if !p.Selection.Selected("R1") {
		t.Fatalf("expected R1 selected under default-selected ancestry")
	}
	if p.ProfileID != "default" {
		t.Fatalf("expected ProfileID propagated, got %q", p.ProfileID)
	}
}

func TestNewPolicy_NilProfile(t *testing.T) {
	bench := sampleBenchmark()
	p := policy.NewPolicy(bench, nil)
	if p.ProfileID != "" {
		t.Fatalf("expected empty profile id for nil profile, got %q", p.ProfileID)
	}
	if !p.Selection.Selected("R1") {
		t.Fatalf("expected R1 selected by benchmark defaults with no profile")
	}
}

func TestListFiles_AndSystemFilePairs(t *testing.T) {
	bench := sampleBenchmark()
	p := policy.NewPolicy(bench, nil)

	files := p.ListFiles()
	if len(files) != 1 || files[0] != "checks.cel" {
		t.Fatalf("expected [checks.cel], got %v", files)
	}

	pairs := p.ListSystemFilePairs()
	if len(pairs) != 1 || pairs[0].System != "urn:openscap:check-system:cel" || pairs[0].Href != "checks.cel" {
		t.Fatalf("expected one system/file pair, got %v", pairs)
	}
}

func TestResultIDPrefix(t *testing.T) {
	if got := policy.ResultIDPrefix("1.2", "my-profile"); got != "xccdf_org.open-scap_testresult_my-profile" {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if got := policy.ResultIDPrefix("1.1", "my-profile"); got != "OSCAP-Test-my-profile" {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if got := policy.ResultIDPrefix("1.2", ""); got != "xccdf_org.open-scap_testresult_default-profile" {
		t.Fatalf("expected default-profile fallback, got %q", got)
	}
}
