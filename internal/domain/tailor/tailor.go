// Package tailor implements the clone-and-refine view of spec.md §4.9:
// Tailor produces a fresh item reflecting refine-rule/refine-value/set-value
// overlays without mutating the benchmark, and Substitute expands "%id%"
// markers in human-readable text.
package tailor

import (
	"strings"

	"github.com/berise/openscap/internal/domain/model"
)

// Tailored is a fresh, benchmark-independent snapshot of one tailored item.
// Exactly one of Rule, Group, or Value is populated, mirroring the source
// item's type.
type Tailored struct {
	Rule  *TailoredRule
	Group *TailoredGroup
	Value *TailoredValue
}

// TailoredRule carries a rule's attributes after refine-rule overlays.
type TailoredRule struct {
	ID       string
	Weight   float64
	Role     model.Role
	Severity string
}

// TailoredGroup carries a group's attributes after refine-rule overlays.
type TailoredGroup struct {
	ID     string
	Weight float64
}

// TailoredValue carries a value's effective instance after set-value and
// refine-value overlays.
type TailoredValue struct {
	ID        string
	ValueType model.ValueType
	Operator  model.Operator
	Literal   string
}

// Tailor returns item's tailored view under profile (spec.md §4.9).
func Tailor(item model.Item, profile model.Profile) Tailored {
	switch it := item.(type) {
	case model.Rule:
		return Tailored{Rule: tailorRule(it, profile)}
	case model.Value:
		return Tailored{Value: tailorValue(it, profile)}
	case model.Group:
		return Tailored{Group: tailorGroup(it, profile)}
	default:
		return Tailored{}
	}
}

func findRefineRule(id string, profile model.Profile) (model.RefineRule, bool) {
	if profile == nil {
		return model.RefineRule{}, false
	}
	var found model.RefineRule
	ok := false
	for _, rr := range profile.RefineRules() {
		if rr.ItemID == id {
			found = rr
			ok = true
		}
	}
	return found, ok
}

func tailorRule(r model.Rule, profile model.Profile) *TailoredRule {
	tr := &TailoredRule{
		ID:       r.ID(),
		Weight:   r.Weight(),
		Role:     r.Role(),
		Severity: r.Severity(),
	}
	if rr, ok := findRefineRule(r.ID(), profile); ok {
		if rr.HasWeight {
			tr.Weight = rr.Weight
		}
		if rr.HasRole {
			tr.Role = rr.Role
		}
		if rr.HasSeverity {
			tr.Severity = rr.Severity
		}
	}
	return tr
}

func tailorGroup(g model.Group, profile model.Profile) *TailoredGroup {
	tg := &TailoredGroup{ID: g.ID(), Weight: g.Weight()}
	if rr, ok := findRefineRule(g.ID(), profile); ok && rr.HasWeight {
		tg.Weight = rr.Weight
	}
	return tg
}

func tailorValue(v model.Value, profile model.Profile) *TailoredValue {
	effective := EffectiveValue(v, profile)
	return &TailoredValue{
		ID:        v.ID(),
		ValueType: v.ValueType(),
		Operator:  effective.Operator,
		Literal:   effective.Literal,
	}
}

// EffectiveValueResult is the resolved (operator, literal) pair for a value
// under set-value/refine-value overlays, independent of instance identity.
type EffectiveValueResult struct {
	Operator model.Operator
	Literal  string
}

// EffectiveValue resolves v's effective literal and operator under profile:
// a set-value literal takes precedence over the selector-resolved instance;
// absent one, the refine-value-selected (or default) instance's literal is
// used. This is shared by tailorValue and Substitute.
func EffectiveValue(v model.Value, profile model.Profile) EffectiveValueResult {
	operator := v.Operator()
	selector := ""
	var setValueLiteral *string

	if profile != nil {
		for _, sv := range profile.SetValues() {
			if sv.ValueID == v.ID() {
				lit := sv.Literal
				setValueLiteral = &lit
			}
		}
		for _, rv := range profile.RefineValues() {
			if rv.ValueID != v.ID() {
				continue
			}
			if rv.HasSelector {
				selector = rv.Selector
			}
			if rv.HasOperator {
				operator = rv.Operator
			}
		}
	}

	if setValueLiteral != nil {
		return EffectiveValueResult{Operator: operator, Literal: *setValueLiteral}
	}
	if instance, ok := v.Resolve(selector); ok {
		return EffectiveValueResult{Operator: operator, Literal: instance.Literal}
	}
	return EffectiveValueResult{Operator: operator, Literal: ""}
}

// Substitute expands "%id%" markers in text (spec.md §4.9): each id is
// first looked up as a plain-text entry, then as a value (tailored and
// spliced by its effective literal); unknown ids are left untouched.
func Substitute(text string, bench model.Benchmark, profile model.Profile) string {
	var b strings.Builder
	i := 0
	for i < len(text) {
		start := strings.IndexByte(text[i:], '%')
		if start < 0 {
			b.WriteString(text[i:])
			break
		}
		start += i
		b.WriteString(text[i:start])
		end := strings.IndexByte(text[start+1:], '%')
		if end < 0 {
			b.WriteString(text[start:])
			break
		}
		end += start + 1
		id := text[start+1 : end]

		if plain, ok := bench.GetPlainText(id); ok {
			b.WriteString(plain)
		} else if item, ok := bench.GetItemByID(id); ok {
			if val, ok := item.(model.Value); ok {
				b.WriteString(EffectiveValue(val, profile).Literal)
			} else {
				b.WriteString(text[start : end+1])
			}
		} else {
			b.WriteString(text[start : end+1])
		}
		i = end + 1
	}
	return b.String()
}
