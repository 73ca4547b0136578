package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment
// variables. If configFile is empty, it searches for openscap.yaml/.yml in
// standard locations. The search requires an explicit YAML extension to
// avoid matching the binary itself, which Viper's built-in SetConfigName
// would otherwise match (same base name, no extension).
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		viper.SetConfigName("openscap")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("OPENSCAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".openscap"),
	}
	if runtime.GOOS == "windows" {
		if pd := os.Getenv("ProgramData"); pd != "" {
			paths = append(paths, filepath.Join(pd, "openscap"))
		}
	} else {
		paths = append(paths, "/etc/openscap")
	}
	return findConfigFileInPaths(paths)
}

func findConfigFileInPaths(paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "openscap"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds config keys for environment variable overrides,
// e.g. OPENSCAP_CONTENT_PROFILE_ID overrides content.profile_id.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("content.benchmark_id")
	_ = viper.BindEnv("content.profile_id")
	_ = viper.BindEnv("content.platform")
	_ = viper.BindEnv("content.hostname")

	_ = viper.BindEnv("engines.cel")

	_ = viper.BindEnv("scoring.system")

	_ = viper.BindEnv("store.path")
	_ = viper.BindEnv("store.recent_runs")
	_ = viper.BindEnv("store.flush_interval")

	_ = viper.BindEnv("log.level")
	_ = viper.BindEnv("log.format")

	_ = viper.BindEnv("metrics.enabled")
	_ = viper.BindEnv("metrics.addr")

	_ = viper.BindEnv("dev_mode")
}

// LoadConfig reads the configuration file, applies environment overrides,
// sets defaults, and returns the validated Config.
func LoadConfig() (*Config, error) {
	cfg, err := LoadConfigRaw()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigRaw reads the configuration file and applies defaults, but does
// not validate. Use this when CLI flags may still override fields (e.g.
// --dev) before validation runs.
func LoadConfigRaw() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// ConfigFileUsed returns the path to the configuration file that was
// loaded, or an empty string if none was found (env vars / defaults only).
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
