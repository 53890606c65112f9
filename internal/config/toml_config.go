package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// tomlConfig is the ziglint.toml shape: a `[tool.ziglint]` table, the
// same convention pyproject.toml/Cargo.toml-adjacent tooling uses so a
// project that already keys its tool configs under ziglint.toml doesn't
// need a second dialect for rule severities (spec.md §6 "Config file").
type tomlConfig struct {
	Tool struct {
		Ziglint struct {
			Rules   map[string]tomlRuleEntry `toml:"rules"`
			Include []string                 `toml:"include"`
			Exclude []string                 `toml:"exclude"`
			Threads int                      `toml:"threads"`
			Fix     struct {
				Kind      string `toml:"kind"`
				Dangerous bool   `toml:"dangerous"`
			} `toml:"fix"`
		} `toml:"ziglint"`
	} `toml:"tool"`
}

// tomlRuleEntry accepts either `name = "severity"` or
// `name = { severity = "...", options = { ... } }`.
type tomlRuleEntry struct {
	bare     string
	Severity string         `toml:"severity"`
	Options  map[string]any `toml:"options"`
}

func (e *tomlRuleEntry) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		e.bare = v
		return nil
	case map[string]any:
		if sev, ok := v["severity"].(string); ok {
			e.Severity = sev
		}
		if opts, ok := v["options"].(map[string]any); ok {
			e.Options = opts
		}
		return nil
	default:
		return fmt.Errorf("expected a severity string or a table, got %T", value)
	}
}

// loadTOML reads and parses a ziglint.toml document.
func loadTOML(pathname string) (*Config, error) {
	data, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}
	return parseTOML(data)
}

func parseTOML(data []byte) (*Config, error) {
	var raw tomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid TOML config: %w", err)
	}

	section := raw.Tool.Ziglint
	cfg := Default()
	cfg.Include = section.Include
	cfg.Threads = section.Threads
	if section.Exclude != nil {
		cfg.Exclude = section.Exclude
	}
	cfg.Fix.Kind = parseFixKind(section.Fix.Kind)
	cfg.Fix.Dangerous = section.Fix.Dangerous

	for name, entry := range section.Rules {
		sevStr := entry.Severity
		if sevStr == "" {
			sevStr = entry.bare
		}
		severity, err := parseSeverity(sevStr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		opts := entry.Options
		if opts == nil {
			opts = map[string]any{}
		}
		cfg.Rules[name] = RuleConfig{Severity: severity, Options: opts}
	}
	return cfg, nil
}
