// Package engine implements the checking-engine registry (spec.md §4.3):
// pluggable evaluator, reporter, and query callbacks addressed by
// check-system URI. This is the capability-interface replacement for the
// source's tagged-callback list (spec.md §9).
package engine

import (
	"errors"

	"github.com/berise/openscap/internal/domain/binding"
	"github.com/berise/openscap/internal/domain/result"
)

// ErrNotRegistered is returned by Registry.Dispatch when no evaluator is
// registered for a check's system URI (spec.md §7 engine-not-registered).
var ErrNotRegistered = errors.New("engine: no evaluator registered for check-system")

// ErrFatal, when wrapped by an Evaluator or Reporter's returned error,
// signals the sentinel "fatal" return of spec.md §4.3/§5: the outer
// evaluation loop aborts immediately.
var ErrFatal = errors.New("engine: fatal")

// Reporter well-known URIs (spec.md §4.3).
const (
	URIReportStart  = "urn:openscap:callback:start"
	URIReportOutput = "urn:openscap:callback:output"
)

// QueryKindNamesForHref is the only defined query kind (spec.md §4.3): it
// asks an evaluator for the checkable names available in a content
// reference, used for multi-check fan-out.
const QueryKindNamesForHref = "NAMES_FOR_HREF"

// Evaluator evaluates one check-content reference and returns a verdict.
// It may return ErrFatal-wrapped errors to abort the outer evaluation loop.
type Evaluator func(ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error)

// Query answers evaluator-specific questions. kind is currently only
// QueryKindNamesForHref; arg is the href being queried.
type Query func(user any, kind, arg string) ([]string, error)

// Reporter is invoked before evaluation (start) and after rule-result
// materialization (output). A non-nil error aborts the outer evaluation
// loop and is propagated to the caller.
type Reporter func(payload any, user any) error

// Registry maps check-system URIs to evaluator, reporter, and query
// callbacks. Registration order is preserved; Dispatch tries evaluators in
// registration order and stops at the first one returning anything other
// than result.NotChecked.
type Registry struct {
	evaluators map[string][]Evaluator
	queries    map[string]Query
	reporters  map[string]Reporter
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		evaluators: make(map[string][]Evaluator),
		queries:    make(map[string]Query),
		reporters:  make(map[string]Reporter),
	}
}

// RegisterEvaluator appends ev to the list of evaluators for system. Later
// registrations for the same system are tried only after earlier ones
// return result.NotChecked.
func (r *Registry) RegisterEvaluator(system string, ev Evaluator) {
	r.evaluators[system] = append(r.evaluators[system], ev)
}

// RegisterQuery registers the query callback for system. At most one query
// callback is supported per system; a later call replaces an earlier one.
func (r *Registry) RegisterQuery(system string, q Query) {
	r.queries[system] = q
}

// RegisterReporter registers the reporter for a well-known URI
// (URIReportStart or URIReportOutput).
func (r *Registry) RegisterReporter(uri string, rep Reporter) {
	r.reporters[uri] = rep
}

// HasEvaluator reports whether at least one evaluator is registered for system.
func (r *Registry) HasEvaluator(system string) bool {
	return len(r.evaluators[system]) > 0
}

// Dispatch runs the registered evaluators for system in order, stopping at
// the first one that returns a verdict other than result.NotChecked.
// Returns ErrNotRegistered if system has no evaluators.
func (r *Registry) Dispatch(system, ruleID, contentName, href string, bindings []binding.Binding, imports []string, user any) (result.Verdict, error) {
	evs := r.evaluators[system]
	if len(evs) == 0 {
		return result.NotChecked, ErrNotRegistered
	}
	var last result.Verdict = result.NotChecked
	for _, ev := range evs {
		v, err := ev(ruleID, contentName, href, bindings, imports, user)
		if err != nil {
			return v, err
		}
		last = v
		if v != result.NotChecked {
			return v, nil
		}
	}
	return last, nil
}

// Query invokes the query callback registered for system, if any. ok is
// false when no query callback is registered.
func (r *Registry) Query(system string, user any, kind, arg string) (names []string, ok bool, err error) {
	q, has := r.queries[system]
	if !has {
		return nil, false, nil
	}
	names, err = q(user, kind, arg)
	return names, true, err
}

// ReportStart invokes the start reporter, if any. A non-nil error aborts
// the outer evaluation loop.
func (r *Registry) ReportStart(rule any, user any) error {
	return r.report(URIReportStart, rule, user)
}

// ReportOutput invokes the output reporter, if any.
func (r *Registry) ReportOutput(ruleResult any, user any) error {
	return r.report(URIReportOutput, ruleResult, user)
}

func (r *Registry) report(uri string, payload any, user any) error {
	rep, ok := r.reporters[uri]
	if !ok {
		return nil
	}
	return rep(payload, user)
}
