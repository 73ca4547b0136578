package policy

import "github.com/berise/openscap/internal/domain/model"

// SystemFilePair names one (check-system, href) reference inside the
// benchmark, used by callers that need to pre-fetch or validate external
// check content (spec.md §2 component J).
type SystemFilePair struct {
	System string
	Href   string
}

// ListFiles returns every distinct href referenced by any check or
// complex-check leaf reachable from the policy's benchmark, in first-seen
// order.
func (p *Policy) ListFiles() []string {
	seen := make(map[string]bool)
	var out []string
	walkChecks(p.Model.Root(), func(c model.Check) {
		for _, ref := range c.ContentRefs {
			if !seen[ref.Href] {
				seen[ref.Href] = true
				out = append(out, ref.Href)
			}
		}
	})
	return out
}

// ListSystemFilePairs returns every distinct (check-system, href) pair
// referenced by any check reachable from the policy's benchmark, in
// first-seen order.
func (p *Policy) ListSystemFilePairs() []SystemFilePair {
	type key struct{ system, href string }
	seen := make(map[key]bool)
	var out []SystemFilePair
	walkChecks(p.Model.Root(), func(c model.Check) {
		for _, ref := range c.ContentRefs {
			k := key{c.System, ref.Href}
			if !seen[k] {
				seen[k] = true
				out = append(out, SystemFilePair{System: c.System, Href: ref.Href})
			}
		}
	})
	return out
}

// walkChecks visits every simple check reachable from item, including
// those nested inside complex-check trees, depth-first.
func walkChecks(item model.Item, visit func(model.Check)) {
	if g, ok := item.(model.Group); ok {
		for _, child := range g.Children() {
			walkChecks(child, visit)
		}
		return
	}
	r, ok := item.(model.Rule)
	if !ok {
		return
	}
	for _, c := range r.Checks() {
		visit(c)
	}
	for _, cc := range r.ComplexChecks() {
		walkComplexChecks(cc, visit)
	}
}

func walkComplexChecks(cc model.ComplexCheck, visit func(model.Check)) {
	for _, child := range cc.Children {
		if child.Leaf != nil {
			visit(*child.Leaf)
		}
		if child.Complex != nil {
			walkComplexChecks(*child.Complex, visit)
		}
	}
}
