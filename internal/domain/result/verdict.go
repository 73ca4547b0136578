// Package result implements the seven-valued XCCDF result lattice: the
// verdict type, the AND/OR combinators used by complex checks, and
// negation.
package result

// Verdict is an element of the result lattice.
type Verdict int

const (
	// Pass indicates the rule's check was satisfied.
	Pass Verdict = iota
	// Fail indicates the rule's check was not satisfied.
	Fail
	// Error indicates the check could not be evaluated due to a runtime error.
	Error
	// Unknown indicates the check ran but its result could not be determined.
	Unknown
	// NotApplicable indicates the rule does not apply to this host/context.
	NotApplicable
	// NotChecked indicates no applicable check or engine was found.
	NotChecked
	// NotSelected indicates the rule was not selected by the profile.
	NotSelected
	// Informational indicates the rule is advisory only.
	Informational
)

// String returns the XCCDF-conventional short name for the verdict.
func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Error:
		return "error"
	case Unknown:
		return "unknown"
	case NotApplicable:
		return "notapplicable"
	case NotChecked:
		return "notchecked"
	case NotSelected:
		return "notselected"
	case Informational:
		return "informational"
	default:
		return "invalid"
	}
}

// index maps a Verdict to its row/column position in the AND/OR tables.
// The order matches spec.md §4.1: P F E U N K S I.
func index(v Verdict) int {
	switch v {
	case Pass:
		return 0
	case Fail:
		return 1
	case Error:
		return 2
	case Unknown:
		return 3
	case NotApplicable:
		return 4
	case NotChecked:
		return 5
	case NotSelected:
		return 6
	case Informational:
		return 7
	default:
		return 7
	}
}

// andTable and orTable are transcribed verbatim from spec.md §4.1.
// Row = left operand, column = right operand.
var andTable = [8][8]Verdict{
	{Pass, Fail, Error, Unknown, Pass, Pass, Pass, Pass},
	{Fail, Fail, Fail, Fail, Fail, Fail, Fail, Fail},
	{Error, Fail, Error, Error, Error, Error, Error, Error},
	{Unknown, Fail, Error, Unknown, Unknown, Unknown, Unknown, Unknown},
	{Pass, Fail, Error, Unknown, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotChecked, NotChecked},
	{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, NotSelected},
	{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational},
}

var orTable = [8][8]Verdict{
	{Pass, Pass, Pass, Pass, Pass, Pass, Pass, Pass},
	{Pass, Fail, Error, Unknown, Fail, Fail, Fail, Fail},
	{Pass, Error, Error, Error, Error, Error, Error, Error},
	{Pass, Unknown, Error, Unknown, Unknown, Unknown, Unknown, Unknown},
	{Pass, Fail, Error, Unknown, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotChecked, NotChecked},
	{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, NotSelected},
	{Pass, Fail, Error, Unknown, NotApplicable, NotChecked, NotSelected, Informational},
}

// And folds two verdicts using the AND table. Left-to-right folding of a
// sequence must use And repeatedly in declaration order; And itself is not
// associativity-checked by callers.
func And(a, b Verdict) Verdict {
	return andTable[index(a)][index(b)]
}

// Or folds two verdicts using the OR table.
func Or(a, b Verdict) Verdict {
	return orTable[index(a)][index(b)]
}

// FoldAnd left-folds a non-empty sequence of verdicts with And, in order.
// Panics if vs is empty; callers (complex-check evaluation) always supply
// at least one child.
func FoldAnd(vs []Verdict) Verdict {
	acc := vs[0]
	for _, v := range vs[1:] {
		acc = And(acc, v)
	}
	return acc
}

// FoldOr left-folds a non-empty sequence of verdicts with Or, in order.
func FoldOr(vs []Verdict) Verdict {
	acc := vs[0]
	for _, v := range vs[1:] {
		acc = Or(acc, v)
	}
	return acc
}

// Negate flips Pass<->Fail; every other verdict passes through unchanged.
// Applied exactly once per complex-check node, after its children fold.
func Negate(v Verdict) Verdict {
	switch v {
	case Pass:
		return Fail
	case Fail:
		return Pass
	default:
		return v
	}
}
