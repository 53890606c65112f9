package config

import (
	"sort"
	"strings"

	lcierrors "github.com/ziglint/ziglint/internal/errors"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/semantic"
)

// fuzzyNameMatcher and ruleNameStemmer back "did you mean" rule-name
// suggestions on unknown config entries.
var (
	fuzzyNameMatcher = semantic.NewFuzzyMatcher(true, 0.55, "jaro-winkler")
	ruleNameStemmer  = semantic.NewStemmer(true, "porter2", 2, nil)
)

// BuildRuleSet resolves cfg's rule entries against registry (every rule
// the binary knows about), returning a frozen rule.Set ready for
// internal/linter. Unknown rule names produce a config error carrying a
// fuzzy "did you mean" suggestion (spec.md §6 "Unknown rule names
// produce a config error").
func BuildRuleSet(cfg *Config, registry []rule.Rule) (*rule.Set, error) {
	byName := make(map[string]rule.Rule, len(registry))
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		byName[r.Meta.Name] = r
		names = append(names, r.Meta.Name)
	}

	var unknown []error
	set := rule.NewSet()
	for _, r := range registry {
		entry, configured := cfg.Rules[r.Meta.Name]
		severity := r.Meta.DefaultSeverity
		if configured {
			severity = entry.Severity
		}
		set.Register(r, severity)
	}

	for name := range cfg.Rules {
		if _, ok := byName[name]; ok {
			continue
		}
		msg := "unknown rule"
		if suggestion := suggestRuleName(name, names); suggestion != "" {
			msg = "unknown rule, did you mean " + suggestion + "?"
		}
		unknown = append(unknown, lcierrors.NewConfigError("rules."+name, "", errorString(msg)))
	}
	set.Freeze()

	if len(unknown) > 0 {
		return nil, lcierrors.NewMultiError(unknown)
	}
	return set, nil
}

type errorString string

func (e errorString) Error() string { return string(e) }

// suggestRuleName returns the best fuzzy match for name among
// candidates, or "" if nothing is close enough. Jaro-Winkler similarity
// over the raw names catches transpositions and typos; stemming each
// hyphen-segment before comparing also catches simple
// singular/plural mismatches (e.g. "no-catch-returns" -> "no-catch-return").
func suggestRuleName(name string, candidates []string) string {
	best := ""
	bestScore := 0.55 // below this, the suggestion is more confusing than helpful
	normalized := stemRuleName(name)

	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	for _, c := range sorted {
		s := fuzzyNameMatcher.Similarity(name, c)
		if stemRuleName(c) == normalized {
			s = 1.0
		}
		if s > bestScore {
			bestScore = s
			best = c
		}
	}
	return best
}

// stemRuleName stems every hyphen-separated word of a kebab-case rule
// name and rejoins them, so pluralization differences don't defeat an
// otherwise-exact match.
func stemRuleName(name string) string {
	parts := strings.Split(name, "-")
	for i, p := range parts {
		parts[i] = ruleNameStemmer.Stem(p)
	}
	return strings.Join(parts, "-")
}
