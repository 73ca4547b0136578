// Package model defines the read-only accessor contract the evaluation
// core consumes for benchmark, profile, and applicability content. The XML
// parsers that populate these structures are external collaborators (see
// spec.md §6) and are not implemented here; internal/adapter/outbound/memory
// provides the one concrete implementation this repository ships, used by
// tests and the CLI demo path.
package model

// ItemType tags a benchmark tree node.
type ItemType int

const (
	// ItemGroup is an interior node.
	ItemGroup ItemType = iota
	// ItemRule is a leaf carrying checks.
	ItemRule
	// ItemValue is a leaf carrying a parameterizable value.
	ItemValue
)

// Role is a rule's scoring role.
type Role int

const (
	// RoleFull participates fully in scoring.
	RoleFull Role = iota
	// RoleUnscored is evaluated but excluded from scoring.
	RoleUnscored
	// RoleUnchecked is never evaluated.
	RoleUnchecked
)

// Operator is a value comparison operator.
type Operator int

const (
	OpEquals Operator = iota
	OpNotEqual
	OpGreaterThan
	OpLessThan
	OpGreaterEqual
	OpLessEqual
	OpPatternMatch
)

// ValueType is a value's declared data type.
type ValueType int

const (
	ValueString ValueType = iota
	ValueNumber
	ValueBoolean
)
