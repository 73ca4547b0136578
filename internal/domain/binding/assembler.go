// Package binding assembles value bindings for a check's exports by
// resolving profile set-value and refine-value overlays onto benchmark
// values (spec.md §4.2).
package binding

import (
	"errors"
	"fmt"

	"github.com/berise/openscap/internal/domain/model"
)

// ErrValueNotFound is returned when an export names a value id absent from
// the benchmark.
var ErrValueNotFound = errors.New("binding: value not found")

// ErrSelectorNotFound is returned when the resolved selector matches no
// instance of the value.
var ErrSelectorNotFound = errors.New("binding: selector not found")

// Binding is the runtime pairing of an exported name with a resolved,
// type-tagged value for one check invocation.
type Binding struct {
	Name      string
	ValueType model.ValueType
	Literal   string
	SetValue  *string // non-nil when a profile set-value overrode the instance
	Operator  model.Operator
}

// Resolve assembles the ordered sequence of bindings for checkExports,
// matching export declaration order. On any failure the partial list is
// discarded and the error is returned alone.
func Resolve(checkExports []model.Export, bench model.Benchmark, profile model.Profile) ([]Binding, error) {
	out := make([]Binding, 0, len(checkExports))
	for _, exp := range checkExports {
		b, err := resolveOne(exp, bench, profile)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func resolveOne(exp model.Export, bench model.Benchmark, profile model.Profile) (Binding, error) {
	item, ok := bench.GetItemByID(exp.ValueID)
	if !ok {
		return Binding{}, fmt.Errorf("%w: %s", ErrValueNotFound, exp.ValueID)
	}
	val, ok := item.(model.Value)
	if !ok {
		return Binding{}, fmt.Errorf("%w: %s is not a value", ErrValueNotFound, exp.ValueID)
	}

	var setValue *string
	for _, sv := range profile.SetValues() {
		if sv.ValueID == exp.ValueID {
			lit := sv.Literal
			setValue = &lit // last one wins: keep overwriting while iterating in order
		}
	}

	selector := ""
	operator := val.Operator()
	for _, rv := range profile.RefineValues() {
		if rv.ValueID != exp.ValueID {
			continue
		}
		if rv.HasSelector {
			selector = rv.Selector
		}
		if rv.HasOperator {
			operator = rv.Operator
		}
	}

	instance, ok := val.Resolve(selector)
	if !ok {
		return Binding{}, fmt.Errorf("%w: value %s selector %q", ErrSelectorNotFound, exp.ValueID, selector)
	}

	return Binding{
		Name:      exp.Name,
		ValueType: val.ValueType(),
		Literal:   instance.Literal,
		SetValue:  setValue,
		Operator:  operator,
	}, nil
}
