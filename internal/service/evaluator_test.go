package service_test

import (
	"context"
	"testing"

	"github.com/berise/openscap/internal/adapter/outbound/memory"
	"github.com/berise/openscap/internal/domain/applicability"
	"github.com/berise/openscap/internal/domain/binding"
	"github.com/berise/openscap/internal/domain/engine"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/policy"
	"github.com/berise/openscap/internal/domain/result"
	"github.com/berise/openscap/internal/domain/scoring"
	"github.com/berise/openscap/internal/service"
)

func newEvaluator(reg *engine.Registry) *service.Evaluator {
	appl := applicability.NewEngine(reg, applicability.NewSessionCache(), "")
	return service.NewEvaluator(reg, appl, applicability.Extra{}, nil)
}

// Scenario 1: single rule, default-selected, one check, evaluator returns
// Pass => one rule-result with Pass; default score 100.
func TestScenario1_SingleRulePass(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Weight:          1,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID: "R1", DefaultSelected: true, Weight: 1,
				Checks: []model.Check{
					{System: "sys", ContentRefs: []model.ContentRef{{Href: "h1"}}},
				},
			}},
		},
	}, nil, nil, nil)

	reg := engine.NewRegistry()
	reg.RegisterEvaluator("sys", func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
		return result.Pass, nil
	})

	p := policy.NewPolicy(bench, nil)
	ev := newEvaluator(reg)
	if err := ev.EvaluateAll(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Results) != 1 || p.Results[0].Verdict != result.Pass {
		t.Fatalf("expected single Pass result, got %+v", p.Results)
	}
	score, err := scoring.Compute(scoring.SystemDefault, bench, p.Results)
	if err != nil || score.Score != 100 {
		t.Fatalf("expected default score 100, got %+v err=%v", score, err)
	}
}

// Scenario 2: single rule, not selected in profile => rule-result S, no
// check invocation.
func TestScenario2_NotSelected(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID: "R1", DefaultSelected: true,
				Checks: []model.Check{{System: "sys", ContentRefs: []model.ContentRef{{Href: "h1"}}}},
			}},
		},
	}, nil, nil, nil)

	invoked := false
	reg := engine.NewRegistry()
	reg.RegisterEvaluator("sys", func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
		invoked = true
		return result.Pass, nil
	})

	profile := &memory.Profile{SelectList: []model.Select{{ItemID: "R1", Selected: false}}}
	p := policy.NewPolicy(bench, profile)
	ev := newEvaluator(reg)
	if err := ev.EvaluateAll(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Results) != 1 || p.Results[0].Verdict != result.NotSelected {
		t.Fatalf("expected single NotSelected result, got %+v", p.Results)
	}
	if invoked {
		t.Fatalf("expected no check invocation for a deselected rule")
	}
}

// Scenario 3: rule selected but no matching platform in any registered
// source => rule-result N.
func TestScenario3_NotApplicable(t *testing.T) {
	no := false
	dict := &memory.Dictionary{Platforms: map[string]memory.PlatformDef{"cpe:/o:x": {Static: &no}}}
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID: "R1", DefaultSelected: true, Platforms: []string{"cpe:/o:x"},
				Checks: []model.Check{{System: "sys", ContentRefs: []model.ContentRef{{Href: "h1"}}}},
			}},
		},
	}, nil, dict, nil)

	reg := engine.NewRegistry()
	reg.RegisterEvaluator("sys", func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
		return result.Pass, nil
	})

	p := policy.NewPolicy(bench, nil)
	ev := newEvaluator(reg)
	if err := ev.EvaluateAll(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Results) != 1 || p.Results[0].Verdict != result.NotApplicable {
		t.Fatalf("expected single NotApplicable result, got %+v", p.Results)
	}
}

// Scenario 4: rule with two content-refs; evaluator returns NotChecked for
// the first, Pass for the second => verdict Pass with the second
// content-ref pinned.
func TestScenario4_SecondContentRefPinned(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID: "R1", DefaultSelected: true,
				Checks: []model.Check{{
					System: "sys",
					ContentRefs: []model.ContentRef{
						{Name: "first", Href: "h1"},
						{Name: "second", Href: "h2"},
					},
				}},
			}},
		},
	}, nil, nil, nil)

	reg := engine.NewRegistry()
	reg.RegisterEvaluator("sys", func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
		if contentName == "first" {
			return result.NotChecked, nil
		}
		return result.Pass, nil
	})

	p := policy.NewPolicy(bench, nil)
	ev := newEvaluator(reg)
	if err := ev.EvaluateAll(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Results) != 1 || p.Results[0].Verdict != result.Pass {
		t.Fatalf("expected single Pass result, got %+v", p.Results)
	}
	if p.Results[0].Check == nil || p.Results[0].Check.ContentRefs[0].Name != "second" {
		t.Fatalf("expected second content-ref pinned, got %+v", p.Results[0].Check)
	}
}

// Scenario 5: multi-check=true, query returns three names, evaluator
// returns Pass, Fail, Error respectively => three rule-results in order.
func TestScenario5_MultiCheckFanOut(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID: "R1", DefaultSelected: true,
				Checks: []model.Check{{
					System:      "sys",
					MultiCheck:  true,
					ContentRefs: []model.ContentRef{{Href: "h1"}},
				}},
			}},
		},
	}, nil, nil, nil)

	reg := engine.NewRegistry()
	reg.RegisterQuery("sys", func(user any, kind, arg string) ([]string, error) {
		return []string{"d1", "d2", "d3"}, nil
	})
	verdicts := []result.Verdict{result.Pass, result.Fail, result.Error}
	i := 0
	reg.RegisterEvaluator("sys", func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
		v := verdicts[i]
		i++
		return v, nil
	})

	p := policy.NewPolicy(bench, nil)
	ev := newEvaluator(reg)
	if err := ev.EvaluateAll(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Results) != 3 {
		t.Fatalf("expected three rule-results, got %d", len(p.Results))
	}
	for idx, want := range verdicts {
		if p.Results[idx].Verdict != want {
			t.Fatalf("result %d: expected %v, got %v", idx, want, p.Results[idx].Verdict)
		}
	}
}

// Scenario 6: complex-check AND(P, OR(F, P)) negated at the outer node =>
// final verdict F.
func TestScenario6_ComplexCheckNegated(t *testing.T) {
	bench := memory.BuildBenchmark("b", "1.2", memory.GroupSpec{
		ID:              "G",
		DefaultSelected: true,
		Children: []memory.ItemSpec{
			{Rule: &memory.RuleSpec{
				ID: "R1", DefaultSelected: true,
				ComplexChecks: []model.ComplexCheck{{
					Operator: model.OpAnd,
					Negate:   true,
					Children: []model.ComplexCheckNode{
						{Leaf: &model.Check{System: "sys", ContentRefs: []model.ContentRef{{Href: "p1"}}}},
						{Complex: &model.ComplexCheck{
							Operator: model.OpOr,
							Children: []model.ComplexCheckNode{
								{Leaf: &model.Check{System: "sys", ContentRefs: []model.ContentRef{{Href: "f1"}}}},
								{Leaf: &model.Check{System: "sys", ContentRefs: []model.ContentRef{{Href: "p2"}}}},
							},
						}},
					},
				}},
			}},
		},
	}, nil, nil, nil)

	reg := engine.NewRegistry()
	reg.RegisterEvaluator("sys", func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
		switch href {
		case "p1", "p2":
			return result.Pass, nil
		case "f1":
			return result.Fail, nil
		}
		return result.NotChecked, nil
	})

	p := policy.NewPolicy(bench, nil)
	ev := newEvaluator(reg)
	if err := ev.EvaluateAll(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Results) != 1 || p.Results[0].Verdict != result.Fail {
		t.Fatalf("expected single Fail result, got %+v", p.Results)
	}
	if p.Results[0].Check != nil {
		t.Fatalf("expected nil Check for a complex-check result, got %+v", p.Results[0].Check)
	}
	if p.Results[0].ComplexCheck == nil || len(p.Results[0].ComplexCheck.Children) != 2 {
		t.Fatalf("expected the evaluated complex-check to be recorded, got %+v", p.Results[0].ComplexCheck)
	}
}
