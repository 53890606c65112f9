package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/rule"
)

func sampleRegistry() []rule.Rule {
	return []rule.Rule{
		{Meta: rule.Meta{Name: "no-catch-return", Category: rule.CategoryCorrectness, DefaultSeverity: diag.SeverityWarning}},
		{Meta: rule.Meta{Name: "homeless-try", Category: rule.CategoryCompiler, DefaultSeverity: diag.SeverityError}},
	}
}

func TestBuildRuleSetAppliesConfiguredSeverity(t *testing.T) {
	cfg := Default()
	cfg.Rules["no-catch-return"] = RuleConfig{Severity: diag.SeverityError}

	set, err := BuildRuleSet(cfg, sampleRegistry())
	require.NoError(t, err)

	var found diag.Severity
	for _, e := range set.Entries() {
		if e.Rule.Meta.Name == "no-catch-return" {
			found = e.Severity
		}
	}
	assert.Equal(t, diag.SeverityError, found)
}

func TestBuildRuleSetDefaultsUnconfiguredRule(t *testing.T) {
	cfg := Default()
	set, err := BuildRuleSet(cfg, sampleRegistry())
	require.NoError(t, err)

	var found diag.Severity
	for _, e := range set.Entries() {
		if e.Rule.Meta.Name == "homeless-try" {
			found = e.Severity
		}
	}
	assert.Equal(t, diag.SeverityError, found)
}

func TestBuildRuleSetRejectsUnknownRuleWithSuggestion(t *testing.T) {
	cfg := Default()
	cfg.Rules["no-catch-returns"] = RuleConfig{Severity: diag.SeverityError}

	_, err := BuildRuleSet(cfg, sampleRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-catch-return")
}
