// Package selection builds a policy's selection map (spec.md §4.5): the
// per-rule effective-selected bit produced by AND-composing profile
// overrides with benchmark default-selected flags through the group
// hierarchy.
package selection

import "github.com/berise/openscap/internal/domain/model"

// Map is the materialized selection view: item-id to effective-selected,
// with insertion order preserved for deterministic iteration (spec.md §3).
type Map struct {
	order []string
	bits  map[string]bool
}

func newMap() *Map {
	return &Map{bits: make(map[string]bool)}
}

// Selected reports whether id is selected. Ids absent from the map (not
// reachable from the benchmark root) are treated as not selected.
func (m *Map) Selected(id string) bool {
	return m.bits[id]
}

// Order returns rule ids in the order they were first visited.
func (m *Map) Order() []string {
	return m.order
}

func (m *Map) set(id string, selected bool) {
	if _, exists := m.bits[id]; !exists {
		m.order = append(m.order, id)
	}
	m.bits[id] = selected
}

// Resolve performs the depth-first walk of spec.md §4.5 from bench's root,
// applying profile's selects as overrides at the group and rule a select
// targets, and returns the resulting selection map.
func Resolve(bench model.Benchmark, profile model.Profile) *Map {
	overrides := make(map[string]bool)
	if profile != nil {
		for _, sel := range profile.Selects() {
			overrides[sel.ItemID] = sel.Selected
		}
	}
	m := newMap()
	walk(bench.Root(), true, overrides, m)
	return m
}

func walk(g model.Group, ancestorSelected bool, overrides map[string]bool, m *Map) {
	groupSelected := ancestorSelected
	if override, ok := overrides[g.ID()]; ok {
		groupSelected = ancestorSelected && override
	} else {
		groupSelected = ancestorSelected && g.DefaultSelected()
	}

	for _, child := range g.Children() {
		switch c := child.(type) {
		case model.Group:
			walk(c, groupSelected, overrides, m)
		case model.Rule:
			var effective bool
			if override, ok := overrides[c.ID()]; ok {
				effective = groupSelected && override
			} else {
				effective = groupSelected && c.DefaultSelected()
			}
			m.set(c.ID(), effective)
		}
	}
}
