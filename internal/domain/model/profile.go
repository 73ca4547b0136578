package model

// Select is a profile overlay selecting or deselecting an item.
type Select struct {
	ItemID   string
	Selected bool
}

// SetValue overrides a value's literal directly, bypassing its instances.
type SetValue struct {
	ValueID string
	Literal string
}

// RefineValue overlays a selector and/or operator onto a value.
type RefineValue struct {
	ValueID     string
	Selector    string
	HasSelector bool
	Operator    Operator
	HasOperator bool
}

// RefineRule overlays weight/role/severity/selector onto a rule.
type RefineRule struct {
	ItemID      string
	Selector    string
	HasSelector bool
	Weight      float64
	HasWeight   bool
	Role        Role
	HasRole     bool
	Severity    string
	HasSeverity bool
}

// Profile is an ordered overlay of selects, set-values, refine-values, and
// refine-rules. Order is significant: §4.2 and §4.5 require "last wins"
// and left-to-right propagation respectively.
type Profile interface {
	ID() string
	Selects() []Select
	SetValues() []SetValue
	RefineValues() []RefineValue
	RefineRules() []RefineRule
}
