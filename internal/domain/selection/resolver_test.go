package selection_test

import (
	"testing"

	"github.com/berise/openscap/internal/adapter/outbound/memory"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/selection"
)

func benchG1R1(g1DefaultSelected, r1DefaultSelected bool) model.Benchmark {
	return memory.BuildBenchmark("xccdf_test_benchmark_1", "1.2", memory.GroupSpec{
		ID:              "xccdf_test_group_G1",
		DefaultSelected: g1DefaultSelected,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID:              "xccdf_test_rule_R1",
				DefaultSelected: r1DefaultSelected,
			}},
		},
	}, nil, nil, nil)
}

func TestResolve_NoProfile(t *testing.T) {
	bench := benchG1R1(false, true)
	m := selection.Resolve(bench, nil)
	if m.Selected("xccdf_test_rule_R1") {
		t.Fatalf("expected R1 unselected when G1 default-selected is false")
	}
}

func TestResolve_ProfileSelectsGroup(t *testing.T) {
	bench := benchG1R1(false, true)
	profile := &memory.Profile{
		IDValue:    "xccdf_test_profile_default",
		SelectList: []model.Select{{ItemID: "xccdf_test_group_G1", Selected: true}},
	}
	m := selection.Resolve(bench, profile)
	if !m.Selected("xccdf_test_rule_R1") {
		t.Fatalf("expected R1 selected once G1 is overridden to true")
	}
}

func TestResolve_RuleDirectOverrideWins(t *testing.T) {
	bench := benchG1R1(true, true)
	profile := &memory.Profile{
		SelectList: []model.Select{{ItemID: "xccdf_test_rule_R1", Selected: false}},
	}
	m := selection.Resolve(bench, profile)
	if m.Selected("xccdf_test_rule_R1") {
		t.Fatalf("expected direct rule override to deselect R1")
	}
}

func TestResolve_OrderPreserved(t *testing.T) {
	bench := memory.BuildBenchmark("xccdf_test_benchmark_1", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{ID: "R1", DefaultSelected: true}},
			{Rule: &memory.RuleSpec{ID: "R2", DefaultSelected: true}},
		},
	}, nil, nil, nil)
	m := selection.Resolve(bench, nil)
	order := m.Order()
	if len(order) != 2 || order[0] != "R1" || order[1] != "R2" {
		t.Fatalf("expected order [R1 R2], got %v", order)
	}
}
