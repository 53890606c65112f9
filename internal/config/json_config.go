package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonConfig is the top-level JSON config shape. Each entry in Rules is
// either a bare severity string, or `[severity, options]` (spec.md §6).
type jsonConfig struct {
	Rules   map[string]json.RawMessage `json:"rules"`
	Include []string                   `json:"include"`
	Exclude []string                   `json:"exclude"`
	Threads int                        `json:"threads"`
	Fix     *struct {
		Kind      string `json:"kind"`
		Dangerous bool   `json:"dangerous"`
	} `json:"fix"`
}

// loadJSON reads and parses a .ziglint.json document.
func loadJSON(pathname string) (*Config, error) {
	data, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}
	return parseJSON(data)
}

func parseJSON(data []byte) (*Config, error) {
	var raw jsonConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON config: %w", err)
	}

	cfg := Default()
	cfg.Include = raw.Include
	cfg.Threads = raw.Threads
	if raw.Exclude != nil {
		cfg.Exclude = raw.Exclude
	}
	if raw.Fix != nil {
		cfg.Fix.Kind = parseFixKind(raw.Fix.Kind)
		cfg.Fix.Dangerous = raw.Fix.Dangerous
	}

	for name, rawEntry := range raw.Rules {
		rc, err := parseJSONRuleEntry(rawEntry)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", name, err)
		}
		cfg.Rules[name] = rc
	}
	return cfg, nil
}

func parseJSONRuleEntry(raw json.RawMessage) (RuleConfig, error) {
	// Try the bare-string form first.
	var sev string
	if err := json.Unmarshal(raw, &sev); err == nil {
		severity, err := parseSeverity(sev)
		if err != nil {
			return RuleConfig{}, err
		}
		return RuleConfig{Severity: severity, Options: map[string]any{}}, nil
	}

	// Fall back to [severity, options_object].
	var pair [2]json.RawMessage
	if err := json.Unmarshal(raw, &pair); err != nil {
		return RuleConfig{}, fmt.Errorf("expected a severity string or [severity, options]: %w", err)
	}
	if err := json.Unmarshal(pair[0], &sev); err != nil {
		return RuleConfig{}, fmt.Errorf("expected a severity string as the first element: %w", err)
	}
	severity, err := parseSeverity(sev)
	if err != nil {
		return RuleConfig{}, err
	}
	var opts map[string]any
	if err := json.Unmarshal(pair[1], &opts); err != nil {
		return RuleConfig{}, fmt.Errorf("expected an options object as the second element: %w", err)
	}
	return RuleConfig{Severity: severity, Options: opts}, nil
}
