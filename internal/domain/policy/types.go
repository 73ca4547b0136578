// Package policy implements the policy lifecycle (spec.md §3, §4.5): the
// core-owned pairing of a benchmark model, a chosen profile, the
// materialized selection map, the accumulating test results, and the
// engine-session cache applicability checks reuse across the policy's
// lifetime.
package policy

import (
	"github.com/berise/openscap/internal/domain/applicability"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
	"github.com/berise/openscap/internal/domain/selection"
)

// Policy is the core-owned evaluation context for one (benchmark, profile)
// pairing. The benchmark is shared and outlives the policy; the selection
// map is built once at construction and is read-only thereafter (spec.md
// §5). Results accumulate as rules are evaluated.
type Policy struct {
	Model     model.Benchmark
	Profile   model.Profile
	ProfileID string
	Selection *selection.Map
	Results   []result.RuleResult
	Sessions  *applicability.SessionCache

	// HostPlatform and HostHostname are the fixed host-context facts a CEL
	// check may reference (spec.md §4.10) alongside its value bindings.
	// Exposed as Platform()/Hostname() so a Policy satisfies the CEL
	// adapter's HostContext interface without this package importing it.
	HostPlatform string
	HostHostname string
}

// Platform returns the host platform CPE the policy is being evaluated
// against, if known.
func (p *Policy) Platform() string { return p.HostPlatform }

// Hostname returns the target host's name, if known.
func (p *Policy) Hostname() string { return p.HostHostname }

// NewPolicy constructs a Policy for bench under profile, eagerly resolving
// the selection map (spec.md §4.5). profile may be nil, in which case every
// rule's effective selection is its benchmark default-selected flag.
func NewPolicy(bench model.Benchmark, profile model.Profile) *Policy {
	profileID := ""
	if profile != nil {
		profileID = profile.ID()
	}
	return &Policy{
		Model:     bench,
		Profile:   profile,
		ProfileID: profileID,
		Selection: selection.Resolve(bench, profile),
		Sessions:  applicability.NewSessionCache(),
	}
}

// Close returns nil without touching Sessions. The session handles the
// applicability engine memoizes there are the resolved href strings
// themselves, which hold no closable state; Close does not call any
// io.Closer.
func (p *Policy) Close() error {
	return nil
}

// AppendResult records a rule-result, preserving evaluation order (spec.md
// §5).
func (p *Policy) AppendResult(rr result.RuleResult) {
	p.Results = append(p.Results, rr)
}
