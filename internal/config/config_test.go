package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ziglint.kdl"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, DefaultExclusions(), cfg.Exclude)
}

func TestLoadKDLParsesRulesIncludeExclude(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ziglint.kdl")
	content := `
rules {
  no-catch-return "error"
  homeless-try "warning" {
    allow_main true
  }
}
include "src/**/*.zig"
exclude "vendor/**"
threads 4
fix {
  kind "fix"
  dangerous false
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Contains(t, cfg.Rules, "no-catch-return")
	assert.Equal(t, diag.SeverityError, cfg.Rules["no-catch-return"].Severity)
	require.Contains(t, cfg.Rules, "homeless-try")
	assert.Equal(t, diag.SeverityWarning, cfg.Rules["homeless-try"].Severity)
	assert.Equal(t, true, cfg.Rules["homeless-try"].Options["allow_main"])
	assert.Equal(t, []string{"src/**/*.zig"}, cfg.Include)
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, diag.FixKindFix, cfg.Fix.Kind)
	assert.False(t, cfg.Fix.Dangerous)
}

func TestLoadJSONAcceptsBareSeverityAndPairForm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ziglint.json")
	content := `{
		"rules": {
			"no-catch-return": "error",
			"homeless-try": ["warning", {"allow_main": true}]
		},
		"include": ["src/**/*.zig"],
		"threads": 2
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, diag.SeverityError, cfg.Rules["no-catch-return"].Severity)
	assert.Equal(t, diag.SeverityWarning, cfg.Rules["homeless-try"].Severity)
	assert.Equal(t, true, cfg.Rules["homeless-try"].Options["allow_main"])
	assert.Equal(t, 2, cfg.Threads)
}
