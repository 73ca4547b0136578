// Package dispatch implements the check dispatcher (spec.md §4.6): picking
// the one check to evaluate for a rule, resolving its value bindings,
// iterating content-refs (including multi-check fan-out), and folding
// complex-check trees.
package dispatch

import (
	"errors"

	"github.com/berise/openscap/internal/domain/binding"
	"github.com/berise/openscap/internal/domain/engine"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
)

// ErrFatal is returned when an evaluator or reporter signals a fatal abort.
// It is the same value as engine.ErrFatal, so callers can errors.Is against
// either.
var ErrFatal = engine.ErrFatal

// Messages mirror spec.md §4.6's standard wording verbatim, since they are
// surfaced to operators via the rule-result.
const (
	MsgNoCandidateCheck   = "No candidate or applicable check found."
	MsgBindingsNotFound   = "Value bindings not found."
	MsgNoDefinitions      = "No definitions found for @multi-check."
	MsgNoRefResolvable    = "None of the check-content-ref elements was resolvable."
)

// Outcome is one verdict produced by dispatch: either a single-shot result
// or one of a multi-check fan-out's several results, each carrying the
// check as evaluated (content-ref pinned).
type Outcome struct {
	Verdict result.Verdict
	Check   *model.Check
	Message string
}

func refineSelector(ruleID string, profile model.Profile) (string, bool) {
	if profile == nil {
		return "", false
	}
	for _, rr := range profile.RefineRules() {
		if rr.ItemID == ruleID && rr.HasSelector && rr.Selector != "" {
			return rr.Selector, true
		}
	}
	return "", false
}

func filterBySelector(checks []model.Check, selector string) []model.Check {
	out := make([]model.Check, 0, len(checks))
	for _, c := range checks {
		cs := ""
		if c.HasSelector {
			cs = c.Selector
		}
		if cs == selector {
			out = append(out, c)
		}
	}
	return out
}

// PickForRule picks the check to evaluate for r: its first complex-check if
// it has any, otherwise the last selector-filtered simple check whose
// check-system URI has an evaluator registered in reg (spec.md §4.6 step 3).
func PickForRule(r model.Rule, profile model.Profile, reg *engine.Registry) (complex *model.ComplexCheck, simple *model.Check, ok bool) {
	if len(r.ComplexChecks()) > 0 {
		cc := r.ComplexChecks()[0]
		return &cc, nil, true
	}

	candidates := r.Checks()
	if len(candidates) == 0 {
		return nil, nil, false
	}

	selector, hasSelector := refineSelector(r.ID(), profile)
	filtered := candidates
	if hasSelector {
		bySelector := filterBySelector(candidates, selector)
		if len(bySelector) > 0 {
			filtered = bySelector
		} else {
			filtered = filterBySelector(candidates, "")
		}
	}

	var lastRegistered *model.Check
	for i := range filtered {
		if reg.HasEvaluator(filtered[i].System) {
			c := filtered[i]
			lastRegistered = &c
		}
	}
	if lastRegistered == nil {
		return nil, nil, false
	}
	return nil, lastRegistered, true
}

// EvaluateSimple runs a single simple check (spec.md §4.6 simple-check
// evaluation), returning one or more outcomes. user is passed through to
// evaluator/query/reporter callbacks opaquely.
func EvaluateSimple(ruleID string, check model.Check, bench model.Benchmark, profile model.Profile, reg *engine.Registry, user any) ([]Outcome, error) {
	bindings, err := binding.Resolve(check.Exports, bench, profile)
	if err != nil {
		return []Outcome{{Verdict: result.Unknown, Check: &check, Message: MsgBindingsNotFound}}, nil
	}

	imports := importNames(check.Imports)

	for _, ref := range check.ContentRefs {
		if ref.Name == "" && check.MultiCheck {
			names, hasQuery, qerr := reg.Query(check.System, user, engine.QueryKindNamesForHref, ref.Href)
			if qerr != nil {
				return nil, qerr
			}
			if hasQuery {
				return evaluateMultiCheck(ruleID, check, ref, names, bindings, imports, reg, user)
			}
		}

		verdict, derr := reg.Dispatch(check.System, ruleID, ref.Name, ref.Href, bindings, imports, user)
		if derr != nil {
			if errors.Is(derr, ErrFatal) {
				return nil, derr
			}
			if !errors.Is(derr, engine.ErrNotRegistered) {
				return nil, derr
			}
		}
		if verdict != result.NotChecked {
			pinned := check.Clone()
			pinned.ContentRefs = []model.ContentRef{ref}
			final := applyNegateOnce(verdict, check.Negate)
			return []Outcome{{Verdict: final, Check: &pinned}}, nil
		}
	}

	final := applyNegateOnce(result.NotChecked, check.Negate)
	return []Outcome{{Verdict: final, Check: &check, Message: MsgNoRefResolvable}}, nil
}

func evaluateMultiCheck(ruleID string, check model.Check, ref model.ContentRef, names []string, bindings []binding.Binding, imports []string, reg *engine.Registry, user any) ([]Outcome, error) {
	if len(names) == 0 {
		return []Outcome{{Verdict: result.Unknown, Check: &check, Message: MsgNoDefinitions}}, nil
	}

	outcomes := make([]Outcome, 0, len(names))
	for i, name := range names {
		if i > 0 {
			if err := reg.ReportStart(ruleID, user); err != nil {
				if errors.Is(err, ErrFatal) {
					return nil, err
				}
				return nil, err
			}
		}
		pinned := check.Clone()
		pinned.ContentRefs = []model.ContentRef{{Name: name, Href: ref.Href}}
		verdict, err := reg.Dispatch(check.System, ruleID, name, ref.Href, bindings, imports, user)
		if err != nil && !errors.Is(err, engine.ErrNotRegistered) {
			return nil, err
		}
		final := applyNegateOnce(verdict, check.Negate)
		outcomes = append(outcomes, Outcome{Verdict: final, Check: &pinned})
	}
	return outcomes, nil
}

// EvaluateComplex recursively evaluates a complex-check tree, folding child
// verdicts with the node's operator and negating once (spec.md §4.6). It
// returns the root complex-check as evaluated, for the rule-result to carry
// (spec.md §3), mirroring the original source storing the complex check
// itself alongside the verdict.
func EvaluateComplex(ruleID string, cc model.ComplexCheck, bench model.Benchmark, profile model.Profile, reg *engine.Registry, user any) (result.Verdict, *model.ComplexCheck, error) {
	verdict, err := evaluateComplexNode(ruleID, cc, bench, profile, reg, user)
	if err != nil {
		return result.Error, nil, err
	}
	return verdict, &cc, nil
}

func evaluateComplexNode(ruleID string, cc model.ComplexCheck, bench model.Benchmark, profile model.Profile, reg *engine.Registry, user any) (result.Verdict, error) {
	verdicts := make([]result.Verdict, 0, len(cc.Children))
	for _, child := range cc.Children {
		var v result.Verdict
		var err error
		switch {
		case child.Complex != nil:
			v, err = evaluateComplexNode(ruleID, *child.Complex, bench, profile, reg, user)
		case child.Leaf != nil:
			outcomes, serr := EvaluateSimple(ruleID, *child.Leaf, bench, profile, reg, user)
			err = serr
			if serr == nil && len(outcomes) > 0 {
				v = outcomes[0].Verdict
			}
		}
		if err != nil {
			return result.Error, err
		}
		verdicts = append(verdicts, v)
	}

	var folded result.Verdict
	if cc.Operator == model.OpAnd {
		folded = result.FoldAnd(verdicts)
	} else {
		folded = result.FoldOr(verdicts)
	}
	return applyNegateOnce(folded, cc.Negate), nil
}

func applyNegateOnce(v result.Verdict, negate bool) result.Verdict {
	if negate {
		return result.Negate(v)
	}
	return v
}

func importNames(imports []model.Import) []string {
	if len(imports) == 0 {
		return nil
	}
	names := make([]string, len(imports))
	for i, imp := range imports {
		names[i] = imp.Name
	}
	return names
}
