// Package config loads ziglint's configuration (spec.md §6 "Config
// file"): a rule-name -> severity/options map, include/exclude glob
// patterns, worker/fix settings, loadable from a KDL document
// (.ziglint.kdl, the project's native format), plain JSON
// (.ziglint.json, for tooling that generates config programmatically),
// or a `[tool.ziglint]` table in ziglint.toml for projects that already
// key their tool configs there.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziglint/ziglint/internal/diag"
)

// RuleConfig is one rule's entry in the config file (spec.md §6 "a
// severity string, or [severity, options_object]").
type RuleConfig struct {
	Severity diag.Severity
	Options  map[string]any
}

// FixSettings is the accepted fix profile under --fix (spec.md §4.5
// "Filter").
type FixSettings struct {
	Kind      diag.FixKind
	Dangerous bool
}

func (f FixSettings) Profile() diag.Profile {
	return diag.Profile{Kind: f.Kind, Dangerous: f.Dangerous}
}

// Config is the fully parsed, defaulted configuration for one run.
type Config struct {
	Rules   map[string]RuleConfig
	Include []string
	Exclude []string
	Threads int
	Fix     FixSettings
}

// Default returns an empty configuration: every registered rule keeps
// its own default severity, no include/exclude filters, auto-detected
// thread count, fixing disabled.
func Default() *Config {
	return &Config{
		Rules:   map[string]RuleConfig{},
		Include: []string{},
		Exclude: DefaultExclusions(),
		Threads: 0,
	}
}

// DefaultExclusions are the patterns excluded even with no config file
// present (spec.md's supplemented zig-specific build-artifact handling;
// see build_artifacts.go).
func DefaultExclusions() []string {
	return []string{"**/zig-cache/**", "**/zig-out/**", "**/.zig-cache/**"}
}

// Load reads pathname, dispatching on its extension, and merges the
// result over Default(). A missing file is not an error: the caller
// gets Default() back (spec.md §6 implies a config file is optional;
// absence just means every rule's built-in default applies).
func Load(pathname string) (*Config, error) {
	if pathname == "" {
		return Default(), nil
	}
	if _, err := os.Stat(pathname); os.IsNotExist(err) {
		return Default(), nil
	}

	var cfg *Config
	var err error
	switch filepath.Ext(pathname) {
	case ".json":
		cfg, err = loadJSON(pathname)
	case ".toml":
		cfg, err = loadTOML(pathname)
	default:
		cfg, err = loadKDL(pathname)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", pathname, err)
	}

	if cfg.Exclude == nil {
		cfg.Exclude = DefaultExclusions()
	}
	return cfg, nil
}
