// Package config provides the typed configuration schema for the openscap
// CLI driver: content paths, which checking engines to register, which
// scoring model to report, and storage/observability knobs. It intentionally
// excludes the things spec.md puts out of scope for this repository (XML
// parsing, external engine transports): config only says *where* content
// lives and *how* to evaluate it, never how to parse it.
package config

import "github.com/spf13/viper"

// Config is the top-level configuration for the openscap CLI.
type Config struct {
	// Content configures where benchmark/profile/dictionary fixtures come
	// from for a run. The in-scope parsers are out of scope (spec.md §1),
	// so this names a fixture set built by the memory adapter package.
	Content ContentConfig `yaml:"content" mapstructure:"content"`

	// Engines lists which checking engines to register, by check-system
	// URI, before evaluation starts.
	Engines EnginesConfig `yaml:"engines" mapstructure:"engines"`

	// Scoring selects the scoring model reported alongside rule results.
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`

	// Store configures durable result persistence.
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Metrics configures the Prometheus metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// DevMode enables verbose logging and permissive defaults for local
	// experimentation.
	DevMode bool `yaml:"dev_mode" mapstructure:"dev_mode"`
}

// ContentConfig names the fixture benchmark/profile to evaluate.
type ContentConfig struct {
	// BenchmarkID is the id of the in-memory fixture benchmark to build.
	// Defaults to "demo" if empty.
	BenchmarkID string `yaml:"benchmark_id" mapstructure:"benchmark_id"`

	// ProfileID selects a named profile from the fixture set. Empty means
	// evaluate with no profile (benchmark defaults only).
	ProfileID string `yaml:"profile_id" mapstructure:"profile_id"`

	// Platform is the host platform CPE supplied as host context to
	// applicability and CEL checks.
	Platform string `yaml:"platform" mapstructure:"platform"`

	// Hostname is the target host name supplied as host context.
	Hostname string `yaml:"hostname" mapstructure:"hostname"`
}

// EnginesConfig lists the checking engines to register for a run.
type EnginesConfig struct {
	// CEL enables the CEL checking engine under
	// urn:openscap:check-system:cel. Defaults to true.
	CEL bool `yaml:"cel" mapstructure:"cel"`
}

// ScoringConfig selects which scoring model(s) to compute.
type ScoringConfig struct {
	// System is the scoring system URI (scoring.SystemDefault,
	// scoring.SystemFlat, scoring.SystemFlatUnweighted, or
	// scoring.SystemAbsolute), or empty to report every system. Read by the
	// "score" command to print a single model instead of all four.
	System string `yaml:"system" mapstructure:"system" validate:"omitempty,oneof=urn:openscap:scoring:default urn:openscap:scoring:flat urn:openscap:scoring:flat-unweighted urn:openscap:scoring:absolute"`
}

// StoreConfig configures the sqlite result store.
type StoreConfig struct {
	// Path is the sqlite database file path. Defaults to "openscap.db".
	Path string `yaml:"path" mapstructure:"path"`

	// RecentRuns is the size of the in-memory ring buffer of recently
	// completed runs. Defaults to 20.
	RecentRuns int `yaml:"recent_runs" mapstructure:"recent_runs" validate:"omitempty,min=1"`

	// FlushInterval is how often the buffered writer flushes pending rows
	// (e.g. "1s"). Defaults to "1s".
	FlushInterval string `yaml:"flush_interval" mapstructure:"flush_interval"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level sets the minimum log level: "debug", "info", "warn", "error".
	// Defaults to "info". DevMode=true overrides to "debug".
	Level string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`

	// Format selects "text" or "json" output. Defaults to "text".
	Format string `yaml:"format" mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled turns on the /metrics HTTP endpoint. Defaults to false.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Addr is the address the metrics server listens on (e.g.
	// "127.0.0.1:9090"). Defaults to "127.0.0.1:9090".
	Addr string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// SetDefaults applies sensible default values to the configuration.
func (c *Config) SetDefaults() {
	if c.Content.BenchmarkID == "" {
		c.Content.BenchmarkID = "demo"
	}
	if !viper.IsSet("engines.cel") {
		c.Engines.CEL = true
	}
	if c.Store.Path == "" {
		c.Store.Path = "openscap.db"
	}
	if c.Store.RecentRuns == 0 {
		c.Store.RecentRuns = 20
	}
	if c.Store.FlushInterval == "" {
		c.Store.FlushInterval = "1s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.DevMode {
		c.Log.Level = "debug"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = "127.0.0.1:9090"
	}
}
