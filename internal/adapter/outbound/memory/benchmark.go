// Package memory provides in-memory implementations of the model.Benchmark,
// model.Profile, model.Dictionary, and model.LanguageModel contracts.
// Real content arrives from an XML parser (out of scope, spec.md §1); this
// package is the fixture/demo substitute, grounded on the teacher's
// map-backed in-memory store pattern (internal/adapter/outbound/memory
// in the Sentinel Gate codebase this module was adapted from).
package memory

import "github.com/berise/openscap/internal/domain/model"

// item is the shared embedded state for group/rule/value nodes.
type item struct {
	id     string
	typ    model.ItemType
	parent model.Item
}

func (i *item) Type() model.ItemType { return i.typ }
func (i *item) ID() string           { return i.id }
func (i *item) Parent() model.Item   { return i.parent }

type group struct {
	item
	defaultSelected bool
	weight          float64
	children        []model.Item
}

func (g *group) DefaultSelected() bool  { return g.defaultSelected }
func (g *group) Weight() float64        { return g.weight }
func (g *group) Children() []model.Item { return g.children }

type rule struct {
	item
	version         string
	severity        string
	role            model.Role
	weight          float64
	defaultSelected bool
	idents          []string
	fixes           []string
	platforms       []string
	checks          []model.Check
	complexChecks   []model.ComplexCheck
}

func (r *rule) Version() string                     { return r.version }
func (r *rule) Severity() string                     { return r.severity }
func (r *rule) Role() model.Role                     { return r.role }
func (r *rule) Weight() float64                      { return r.weight }
func (r *rule) DefaultSelected() bool                { return r.defaultSelected }
func (r *rule) Idents() []string                     { return r.idents }
func (r *rule) Fixes() []string                      { return r.fixes }
func (r *rule) Platforms() []string                  { return r.platforms }
func (r *rule) Checks() []model.Check                { return r.checks }
func (r *rule) ComplexChecks() []model.ComplexCheck  { return r.complexChecks }

type value struct {
	item
	valueType model.ValueType
	operator  model.Operator
	instances []model.Instance
}

func (v *value) ValueType() model.ValueType { return v.valueType }
func (v *value) Operator() model.Operator   { return v.operator }
func (v *value) Instances() []model.Instance {
	return v.instances
}

// Resolve implements model.Value.Resolve: empty selector means the default
// instance (the first instance recorded with Selector == "").
func (v *value) Resolve(selector string) (model.Instance, bool) {
	for _, inst := range v.instances {
		if inst.Selector == selector {
			return inst, true
		}
	}
	return model.Instance{}, false
}

type benchmark struct {
	id            string
	schemaVersion string
	root          *group
	index         map[string]model.Item
	plaintext     map[string]string
	dict          model.Dictionary
	lang          model.LanguageModel
}

func (b *benchmark) ID() string            { return b.id }
func (b *benchmark) SchemaVersion() string  { return b.schemaVersion }
func (b *benchmark) Root() model.Group      { return b.root }
func (b *benchmark) Dictionary() model.Dictionary     { return b.dict }
func (b *benchmark) LanguageModel() model.LanguageModel { return b.lang }

func (b *benchmark) GetItemByID(id string) (model.Item, bool) {
	it, ok := b.index[id]
	return it, ok
}

func (b *benchmark) GetPlainText(id string) (string, bool) {
	s, ok := b.plaintext[id]
	return s, ok
}
