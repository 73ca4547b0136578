// Package ctxkey defines shared context key types used across multiple packages.
// This package should have no dependencies on other internal packages to avoid import cycles.
package ctxkey

// LoggerKey is the context key type for the enriched logger.
// Used by service.Evaluator to carry a run-scoped logger (tagged with the
// profile id) down through a single EvaluateAll/evaluateRule call tree.
type LoggerKey struct{}
