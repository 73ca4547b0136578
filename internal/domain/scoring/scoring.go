// Package scoring implements the default, flat, flat-unweighted, and
// absolute scoring models over an evaluated benchmark tree (spec.md §4.8).
package scoring

import (
	"errors"

	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
)

// System names the four scoring models addressable by URI (spec.md §4.8, §6).
type System string

const (
	SystemDefault        System = "urn:openscap:scoring:default"
	SystemFlat           System = "urn:openscap:scoring:flat"
	SystemFlatUnweighted System = "urn:openscap:scoring:flat-unweighted"
	SystemAbsolute       System = "urn:openscap:scoring:absolute"
)

// ErrUnknownSystem is returned for any scoring system URI other than the
// four above (spec.md §7 scoring-system-unknown).
var ErrUnknownSystem = errors.New("scoring: unknown scoring system")

// excluded reports whether v contributes to neither numerator nor
// denominator under any scoring model (spec.md §4.8).
func excluded(v result.Verdict) bool {
	switch v {
	case result.NotSelected, result.NotApplicable, result.NotChecked, result.Informational:
		return true
	default:
		return false
	}
}

func passed(v result.Verdict) bool {
	return v == result.Pass
}

// Score is a (score, weight) pair computed for one node of the benchmark
// tree under a given model.
type Score struct {
	Score  float64
	Weight float64
}

// Compute scores bench under the recorded results, using the verdict per
// rule id, under the named system. Rule ids absent from results are
// treated as not evaluated (excluded).
func Compute(system System, bench model.Benchmark, results []result.RuleResult) (Score, error) {
	verdicts := make(map[string]result.Verdict, len(results))
	for _, rr := range results {
		verdicts[rr.RuleID] = rr.Verdict
	}

	switch system {
	case SystemDefault:
		node := computeDefault(bench.Root(), verdicts)
		return Score{Score: node.score, Weight: node.weight}, nil
	case SystemFlat:
		s, _ := computeFlat(bench.Root(), verdicts, false)
		return s, nil
	case SystemFlatUnweighted:
		s, _ := computeFlat(bench.Root(), verdicts, true)
		return s, nil
	case SystemAbsolute:
		s, ok := computeFlat(bench.Root(), verdicts, false)
		absolute := 0.0
		if ok && s.Score == s.Weight {
			absolute = 1
		} else if !ok {
			// Empty benchmark: preserves the source's documented 0==0
			// semantics (spec.md §9 open question) rather than reporting a
			// zero score for no evaluated rules.
			absolute = 1
		}
		return Score{Score: absolute, Weight: 1}, nil
	default:
		return Score{}, ErrUnknownSystem
	}
}

type defaultNode struct {
	score         float64 // this node's own 0-100 (rule) or ratio (group) score
	weight        float64 // this node's own declared weight
	weightedScore float64 // score * weight
	counted       bool    // false when this node contributed nothing (drop from parent)
}

// computeDefault implements spec.md §4.8's default model.
func computeDefault(item model.Item, verdicts map[string]result.Verdict) defaultNode {
	switch it := item.(type) {
	case model.Rule:
		v, ok := verdicts[it.ID()]
		if !ok || excluded(v) {
			return defaultNode{}
		}
		score := 0.0
		if passed(v) {
			score = 100
		}
		weight := it.Weight()
		return defaultNode{score: score, weight: weight, weightedScore: score * weight, counted: true}
	case model.Group:
		var numerator, denominator float64
		any := false
		for _, child := range it.Children() {
			cr := computeDefault(child, verdicts)
			if !cr.counted {
				continue
			}
			numerator += cr.weightedScore
			denominator += cr.weight
			any = true
		}
		if !any || denominator == 0 {
			return defaultNode{}
		}
		nodeScore := numerator / denominator
		weight := it.Weight()
		return defaultNode{score: nodeScore, weight: weight, weightedScore: nodeScore * weight, counted: true}
	default:
		return defaultNode{}
	}
}

// computeFlat implements spec.md §4.8's flat model (and, with unweighted
// true, the flat-unweighted variant): sums child scores and weights
// directly, dropping children with weight 0. ok is false when item
// contributed nothing (all descendants excluded or weight-0).
func computeFlat(item model.Item, verdicts map[string]result.Verdict, unweighted bool) (Score, bool) {
	switch it := item.(type) {
	case model.Rule:
		v, has := verdicts[it.ID()]
		if !has || excluded(v) {
			return Score{}, false
		}
		weight := it.Weight()
		if unweighted {
			weight = 1
		}
		if weight == 0 {
			return Score{}, false
		}
		score := 0.0
		if passed(v) {
			score = weight
		}
		return Score{Score: score, Weight: weight}, true
	case model.Group:
		var totalScore, totalWeight float64
		any := false
		for _, child := range it.Children() {
			cs, ok := computeFlat(child, verdicts, unweighted)
			if !ok {
				continue
			}
			totalScore += cs.Score
			totalWeight += cs.Weight
			any = true
		}
		if !any {
			return Score{}, false
		}
		return Score{Score: totalScore, Weight: totalWeight}, true
	default:
		return Score{}, false
	}
}
