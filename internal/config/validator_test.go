package config

import "testing"

func validConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidate_NoEnginesEnabledFails(t *testing.T) {
	cfg := validConfig()
	cfg.Engines.CEL = false
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error when no checking engine is enabled")
	}
}

func TestValidate_BadScoringSystemFails(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.System = "urn:openscap:scoring:bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognized scoring system")
	}
}

func TestValidate_BadLogLevelFails(t *testing.T) {
	cfg := validConfig()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
}

func TestValidate_BadMetricsAddrFails(t *testing.T) {
	cfg := validConfig()
	cfg.Metrics.Addr = "not-a-host-port"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an invalid metrics address")
	}
}
