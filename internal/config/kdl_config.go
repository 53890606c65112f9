package config

import (
	"fmt"
	"os"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/ziglint/ziglint/internal/diag"
)

// loadKDL reads and parses a .ziglint.kdl document (spec.md §6 "Config
// file"). Grounded on the same kdl-go node-walking technique the
// indexing engine uses for its own KDL config.
func loadKDL(pathname string) (*Config, error) {
	content, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}
	return parseKDL(string(content))
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "rules":
			for _, rn := range n.Children {
				name := nodeName(rn)
				if name == "" {
					continue
				}
				rc, err := parseRuleNode(rn)
				if err != nil {
					return nil, err
				}
				cfg.Rules[name] = rc
			}
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		case "threads":
			if v, ok := firstIntArg(n); ok {
				cfg.Threads = v
			}
		case "fix":
			for _, fn := range n.Children {
				switch nodeName(fn) {
				case "kind":
					if s, ok := firstStringArg(fn); ok {
						cfg.Fix.Kind = parseFixKind(s)
					}
				case "dangerous":
					if b, ok := firstBoolArg(fn); ok {
						cfg.Fix.Dangerous = b
					}
				}
			}
		}
	}

	return cfg, nil
}

// parseRuleNode reads a `rule_name "severity"` or
// `rule_name "severity" { option value }` node (spec.md §6 "a severity
// string, or [severity, options_object]").
func parseRuleNode(n *document.Node) (RuleConfig, error) {
	rc := RuleConfig{Options: map[string]any{}}

	sev, ok := firstStringArg(n)
	if !ok {
		return rc, fmt.Errorf("rule %q: expected a severity string argument", nodeName(n))
	}
	severity, err := parseSeverity(sev)
	if err != nil {
		return rc, fmt.Errorf("rule %q: %w", nodeName(n), err)
	}
	rc.Severity = severity

	for _, on := range n.Children {
		key := nodeName(on)
		if v, ok := firstIntArg(on); ok {
			rc.Options[key] = v
			continue
		}
		if v, ok := firstBoolArg(on); ok {
			rc.Options[key] = v
			continue
		}
		if v, ok := firstStringArg(on); ok {
			rc.Options[key] = v
			continue
		}
		if v, ok := firstFloatArg(on); ok {
			rc.Options[key] = v
		}
	}
	return rc, nil
}

func parseSeverity(s string) (diag.Severity, error) {
	switch s {
	case "off":
		return diag.SeverityOff, nil
	case "warning":
		return diag.SeverityWarning, nil
	case "error":
		return diag.SeverityError, nil
	default:
		return diag.SeverityOff, fmt.Errorf("unknown severity %q (want off, warning, or error)", s)
	}
}

func parseFixKind(s string) diag.FixKind {
	switch s {
	case "fix":
		return diag.FixKindFix
	case "suggestion":
		return diag.FixKindSuggestion
	default:
		return diag.FixKindNone
	}
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// collectStringArgs reads either `include "a" "b"` (inline arguments) or
// `include { "a"; "b" }` (block-of-strings) forms.
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
