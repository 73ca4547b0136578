package result

import (
	"time"

	"github.com/berise/openscap/internal/domain/model"
)

// RuleResult is one accumulated evaluation outcome (spec.md §3). A rule
// normally produces exactly one of these, and more than one under
// multi-check fan-out; a multi-check over an empty definition set produces
// a single Unknown result.
type RuleResult struct {
	RuleID    string
	Verdict   Verdict
	Weight    float64
	Severity  string
	Role      model.Role
	Time      time.Time
	Idents    []string
	Fixes     []string

	// Check is the simple check that was selected and evaluated, with its
	// chosen content-ref pinned (spec.md §3). Nil when the rule dispatched
	// to a complex-check (see ComplexCheck instead) or when no check was
	// evaluated at all (NotSelected/NotApplicable verdicts).
	Check *model.Check

	// ComplexCheck is the complex-check tree that was evaluated, when the
	// rule's selected check was a <complex-check> rather than a single
	// check (spec.md §4.6). Nil otherwise.
	ComplexCheck *model.ComplexCheck

	Message string
}
