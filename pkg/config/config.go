package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	gcderrors "github.com/tristanpoland/GCD/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	Index     IndexConfig     `mapstructure:"index" toml:"index"`
	Discovery DiscoveryConfig `mapstructure:"discovery" toml:"discovery"`
	Match     MatchConfig     `mapstructure:"match" toml:"match"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

// IndexConfig holds persistence settings for the repository index
type IndexConfig struct {
	Path    string `mapstructure:"path" toml:"path"`       // Index file location
	Backend string `mapstructure:"backend" toml:"backend"` // "json" or "sqlite"
}

// DiscoveryConfig holds scanner settings
type DiscoveryConfig struct {
	Exclude  []string `mapstructure:"exclude" toml:"exclude"`     // Directory names never descended into
	Markers  []string `mapstructure:"markers" toml:"markers"`     // Version-control metadata names
	MaxDepth int      `mapstructure:"max_depth" toml:"max_depth"` // 0 means unlimited
}

// MatchConfig holds fuzzy matcher settings
type MatchConfig struct {
	PathFallback bool `mapstructure:"path_fallback" toml:"path_fallback"` // Match full paths when no name matches
}

// LogConfig holds diagnostics settings
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"` // debug, info, warn or error; -v and -q take precedence
}

// FileName is the config file looked up in Dir.
const FileName = "config.toml"

// Backends supported by index.backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// ValidBackends is the list of supported index backends.
var ValidBackends = []string{BackendJSON, BackendSQLite}

// ValidLogLevels is the list of accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, gcderrors.NewConfigErrorWithCause("", "failed to unmarshal config", err)
	}

	// Expand paths
	if err := expandPaths(config); err != nil {
		return nil, gcderrors.NewConfigErrorWithCause("index.path", "failed to expand path", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Index.Backend) {
		return gcderrors.NewConfigError("index.backend",
			fmt.Sprintf("unknown backend %q: must be one of: json, sqlite", c.Index.Backend))
	}
	if c.Index.Path == "" {
		return gcderrors.NewConfigError("index.path", "must not be empty")
	}
	if c.Discovery.MaxDepth < 0 {
		return gcderrors.NewConfigError("discovery.max_depth", "must be zero (unlimited) or positive")
	}
	if len(c.Discovery.Markers) == 0 {
		return gcderrors.NewConfigError("discovery.markers", "at least one marker is required")
	}
	if c.Log.Level != "" && !slices.Contains(ValidLogLevels, strings.ToLower(c.Log.Level)) {
		return gcderrors.NewConfigError("log.level",
			fmt.Sprintf("unknown level %q: must be one of: debug, info, warn, error", c.Log.Level))
	}
	return nil
}

// Dir returns the gcd configuration directory (~/.config/gcd).
func Dir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "gcd")
}

// setDefaults sets default configuration values
func setDefaults() {
	dir := Dir()

	// Index defaults; the sqlite backend gets its own file name unless overridden
	viper.SetDefault("index.backend", BackendJSON)
	if viper.GetString("index.backend") == BackendSQLite {
		viper.SetDefault("index.path", filepath.Join(dir, "index.db"))
	} else {
		viper.SetDefault("index.path", filepath.Join(dir, "index.json"))
	}

	// Discovery defaults
	viper.SetDefault("discovery.exclude", []string{"node_modules", "target", "vendor"})
	viper.SetDefault("discovery.markers", []string{".git"})
	viper.SetDefault("discovery.max_depth", 0)

	// Match defaults
	viper.SetDefault("match.path_fallback", true)

	// Log defaults
	viper.SetDefault("log.level", "warn")
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	config.Index.Path, err = expandPath(config.Index.Path)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
