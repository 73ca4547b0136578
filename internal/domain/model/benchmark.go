package model

// Item is the common read-only view shared by groups, rules, and values in
// the benchmark tree.
type Item interface {
	Type() ItemType
	ID() string
	Parent() Item // nil for the root group
}

// Group is an interior benchmark tree node.
type Group interface {
	Item
	DefaultSelected() bool
	Weight() float64
	Children() []Item
}

// Rule is a benchmark tree leaf carrying checks.
type Rule interface {
	Item
	Version() string
	Severity() string
	Role() Role
	Weight() float64
	DefaultSelected() bool
	Idents() []string
	Fixes() []string
	Platforms() []string
	Checks() []Check
	ComplexChecks() []ComplexCheck
}

// Instance is one typed value instance, selected by an optional selector.
// A zero-value Selector denotes the default instance.
type Instance struct {
	Selector string
	Literal  string
}

// Value is a benchmark tree leaf carrying a parameterizable datum.
type Value interface {
	Item
	ValueType() ValueType
	Operator() Operator
	Instances() []Instance
	// Resolve returns the instance matching selector, or the default
	// instance when selector is empty. ok is false when no instance matches.
	Resolve(selector string) (Instance, bool)
}

// ContentRef is a (content-name, href) pair naming externally checked content.
type ContentRef struct {
	Name string // "" when unnamed (multi-check candidate)
	Href string
}

// Export pairs an exported binding name with the value it resolves from.
type Export struct {
	Name    string
	ValueID string
}

// Import names a result the check may report back for later use.
type Import struct {
	Name string
}

// Check is a single reference to externally evaluated content.
type Check struct {
	System      string
	Selector    string
	HasSelector bool
	MultiCheck  bool
	Negate      bool
	ContentRefs []ContentRef
	Exports     []Export
	Imports     []Import
}

// Clone returns a deep copy of c so dispatch can pin a content-ref without
// mutating the benchmark (spec.md §4.7 step 5, §5).
func (c Check) Clone() Check {
	clone := c
	clone.ContentRefs = append([]ContentRef(nil), c.ContentRefs...)
	clone.Exports = append([]Export(nil), c.Exports...)
	clone.Imports = append([]Import(nil), c.Imports...)
	return clone
}

// ComplexCheckOp is the boolean combinator for a complex-check interior node.
type ComplexCheckOp int

const (
	OpAnd ComplexCheckOp = iota
	OpOr
)

// ComplexCheckNode is a complex-check tree node: exactly one of Complex or
// Leaf is set.
type ComplexCheckNode struct {
	Complex *ComplexCheck
	Leaf    *Check
}

// ComplexCheck is a boolean combinator tree over checks.
type ComplexCheck struct {
	Operator ComplexCheckOp
	Negate   bool
	Children []ComplexCheckNode
}

// PlainTextLookup resolves a plain-text entry by id, used by tailor.Substitute.
type PlainTextLookup func(id string) (string, bool)

// Benchmark is the root read-only handle the evaluation core consumes.
type Benchmark interface {
	ID() string
	// SchemaVersion reports the XCCDF schema version string (e.g. "1.2"),
	// used to pick the persisted rule-result id prefix (spec.md §6).
	SchemaVersion() string
	Root() Group
	GetItemByID(id string) (Item, bool)
	GetPlainText(id string) (string, bool)
	// Dictionary returns the benchmark-embedded platform dictionary, or nil.
	Dictionary() Dictionary
	// LanguageModel returns the benchmark-embedded platform language model, or nil.
	LanguageModel() LanguageModel
}
