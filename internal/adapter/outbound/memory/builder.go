package memory

import "github.com/berise/openscap/internal/domain/model"

// GroupSpec describes a group node to be built by BuildBenchmark. Each
// child ItemSpec populates exactly one of Group, Rule, or Value; children
// are assembled in the order supplied.
type GroupSpec struct {
	ID              string
	DefaultSelected bool
	Weight          float64
	Children        []ItemSpec
}

// ItemSpec is a tagged union: exactly one field is non-nil.
type ItemSpec struct {
	Group *GroupSpec
	Rule  *RuleSpec
	Value *ValueSpec
}

// RuleSpec describes a rule leaf.
type RuleSpec struct {
	ID              string
	Version         string
	Severity        string
	Role            model.Role
	Weight          float64
	DefaultSelected bool
	Idents          []string
	Fixes           []string
	Platforms       []string
	Checks          []model.Check
	ComplexChecks   []model.ComplexCheck
}

// ValueSpec describes a value leaf.
type ValueSpec struct {
	ID        string
	ValueType model.ValueType
	Operator  model.Operator
	Instances []model.Instance
}

// BuildBenchmark assembles an in-memory model.Benchmark from a root GroupSpec
// tree, wiring parent pointers and an id index as it descends.
func BuildBenchmark(id, schemaVersion string, root GroupSpec, plaintext map[string]string, dict model.Dictionary, lang model.LanguageModel) model.Benchmark {
	index := make(map[string]model.Item)
	b := &benchmark{
		id:            id,
		schemaVersion: schemaVersion,
		plaintext:     plaintext,
		dict:          dict,
		lang:          lang,
	}
	b.root = buildGroup(root, nil, index)
	b.index = index
	return b
}

func buildGroup(spec GroupSpec, parent model.Item, index map[string]model.Item) *group {
	g := &group{
		item:            item{id: spec.ID, typ: model.ItemGroup, parent: parent},
		defaultSelected: spec.DefaultSelected,
		weight:          spec.Weight,
	}
	index[spec.ID] = g
	children := make([]model.Item, 0, len(spec.Children))
	for _, child := range spec.Children {
		switch {
		case child.Group != nil:
			children = append(children, buildGroup(*child.Group, g, index))
		case child.Rule != nil:
			children = append(children, buildRule(*child.Rule, g, index))
		case child.Value != nil:
			children = append(children, buildValue(*child.Value, g, index))
		}
	}
	g.children = children
	return g
}

func buildRule(spec RuleSpec, parent model.Item, index map[string]model.Item) *rule {
	r := &rule{
		item:            item{id: spec.ID, typ: model.ItemRule, parent: parent},
		version:         spec.Version,
		severity:        spec.Severity,
		role:            spec.Role,
		weight:          spec.Weight,
		defaultSelected: spec.DefaultSelected,
		idents:          spec.Idents,
		fixes:           spec.Fixes,
		platforms:       spec.Platforms,
		checks:          spec.Checks,
		complexChecks:   spec.ComplexChecks,
	}
	index[spec.ID] = r
	return r
}

func buildValue(spec ValueSpec, parent model.Item, index map[string]model.Item) *value {
	v := &value{
		item:      item{id: spec.ID, typ: model.ItemValue, parent: parent},
		valueType: spec.ValueType,
		operator:  spec.Operator,
		instances: spec.Instances,
	}
	index[spec.ID] = v
	return v
}
