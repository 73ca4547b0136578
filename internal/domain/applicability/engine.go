// Package applicability evaluates platform expressions against dictionaries
// and language models (spec.md §4.4), with per-href engine-session
// memoization owned by the caller's session cache.
package applicability

import (
	"errors"
	"path"

	"github.com/cespare/xxhash/v2"

	"github.com/berise/openscap/internal/domain/engine"
	"github.com/berise/openscap/internal/domain/model"
	"github.com/berise/openscap/internal/domain/result"
)

// ErrSessionCreateFailed corresponds to spec.md §7's applicability-load-failed:
// the dictionary-referenced engine session could not be created. Per spec it
// propagates "not applicable" with a logged message, never an error to the
// caller of Applicable; it is exported so callers can recognize it in the
// error passed to the hook installed with OnSessionLoadFailed.
var ErrSessionCreateFailed = errors.New("applicability: session create failed")

// SessionCache memoizes one engine session handle per resolved href, keyed
// by xxhash.Sum64String(href) for O(1) reentrant lookup (spec.md §4.4,
// §4.11, §9) within the single-threaded evaluation model.
type SessionCache struct {
	sessions map[uint64]any
}

// NewSessionCache returns an empty session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{sessions: make(map[uint64]any)}
}

// Len reports the number of memoized engine sessions, for observability.
func (c *SessionCache) Len() int {
	return len(c.sessions)
}

// CheckSystemPlatform is the single checking system supported for platform
// (dictionary leaf) checks, per spec.md §4.4.
const CheckSystemPlatform = "urn:openscap:check-system:platform"

// Extra holds additional dictionaries and language models registered on the
// policy model at runtime, beyond the benchmark-embedded ones (spec.md §4.4,
// §6).
type Extra struct {
	Dictionaries   []model.Dictionary
	LanguageModels []model.LanguageModel
}

// Engine evaluates platform applicability by dispatching dictionary leaf
// checks through registry and memoizing sessions in cache.
type Engine struct {
	registry *engine.Registry
	cache    *SessionCache
	origin   string // directory href resolution is relative to; "" = verbatim
	onLoadFailed func(href string, err error)
}

// NewEngine constructs an applicability Engine. origin, if non-empty, is the
// directory dictionary-relative hrefs are resolved against (spec.md §4.4).
func NewEngine(registry *engine.Registry, cache *SessionCache, origin string) *Engine {
	return &Engine{registry: registry, cache: cache, origin: origin}
}

// OnSessionLoadFailed installs a logging hook invoked whenever a dictionary
// check's engine session cannot be created (spec.md §7 applicability-load-failed).
func (e *Engine) OnSessionLoadFailed(fn func(href string, err error)) {
	e.onLoadFailed = fn
}

// Applicable reports whether item is applicable: its parent chain is
// applicable and either it declares no platforms or at least one matches
// (spec.md §4.4).
func (e *Engine) Applicable(item model.Item, bench model.Benchmark, extra Extra) (bool, error) {
	if parent := item.Parent(); parent != nil {
		parentApplicable, err := e.Applicable(parent, bench, extra)
		if err != nil {
			return false, err
		}
		if !parentApplicable {
			return false, nil
		}
	}

	var platforms []string
	if rule, ok := item.(model.Rule); ok {
		platforms = rule.Platforms()
	}
	if len(platforms) == 0 {
		return true, nil
	}

	for _, platform := range platforms {
		matched, err := e.matchPlatform(platform, bench, extra)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// matchPlatform tries, in order: benchmark language model, extra language
// models, benchmark dictionary, extra dictionaries (spec.md §4.4).
func (e *Engine) matchPlatform(platform string, bench model.Benchmark, extra Extra) (bool, error) {
	check := e.platformCheck(bench)

	if lang := bench.LanguageModel(); lang != nil {
		if matched, err := lang.IsPlatformApplicable(platform, check, bench.Dictionary()); err != nil {
			return false, err
		} else if matched {
			return true, nil
		}
	}
	for _, lang := range extra.LanguageModels {
		if matched, err := lang.IsPlatformApplicable(platform, check, bench.Dictionary()); err != nil {
			return false, err
		} else if matched {
			return true, nil
		}
	}
	if dict := bench.Dictionary(); dict != nil {
		if matched, err := dict.IsNameApplicable(platform, check); err != nil {
			return false, err
		} else if matched {
			return true, nil
		}
	}
	for _, dict := range extra.Dictionaries {
		if matched, err := dict.IsNameApplicable(platform, check); err != nil {
			return false, err
		} else if matched {
			return true, nil
		}
	}
	return false, nil
}

// platformCheck returns the PlatformCheckFunc dictionaries/language models
// use to dispatch leaf checks through the engine registry, reusing a
// memoized session per resolved href.
func (e *Engine) platformCheck(bench model.Benchmark) model.PlatformCheckFunc {
	return func(href, itemName string) (bool, error) {
		resolved := e.resolveHref(href)
		key := xxhash.Sum64String(resolved)
		session, ok := e.cache.sessions[key]
		if !ok {
			s, err := e.createSession(resolved)
			if err != nil {
				if e.onLoadFailed != nil {
					e.onLoadFailed(resolved, err)
				}
				return false, nil
			}
			session = s
			e.cache.sessions[key] = session
		}
		verdict, err := e.registry.Dispatch(CheckSystemPlatform, "", itemName, resolved, nil, nil, session)
		if err != nil {
			return false, err
		}
		return verdict == result.Pass, nil
	}
}

func (e *Engine) resolveHref(href string) string {
	if e.origin == "" {
		return href
	}
	return path.Join(e.origin, href)
}

// createSession is the hook for establishing a new engine session for href.
// The in-memory/demo engines this repository ships are stateless, so the
// session handle is just the resolved href itself; a real platform-check
// engine would open a handle here.
func (e *Engine) createSession(href string) (any, error) {
	if !e.registry.HasEvaluator(CheckSystemPlatform) {
		return nil, ErrSessionCreateFailed
	}
	return href, nil
}
