package lintservice

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// alwaysFlagRule emits one warning diagnostic per top-level symbol.
func alwaysFlagRule() rule.Rule {
	return rule.Rule{
		Meta: rule.Meta{Name: "always-flag", DefaultSeverity: diag.SeverityWarning},
		Hooks: rule.Hooks{
			RunOnSymbol: func(c *lintctx.Context, sym ids.SymbolID) {
				c.Report(c.Diagnostic("always-flag", "flagged"))
			},
		},
	}
}

func TestRunProcessesEveryFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.zig", "const a = 1;\n")
	writeFile(t, dir, "b.zig", "const b = 2;\nconst c = 3;\n")

	set := rule.NewSet()
	set.Register(alwaysFlagRule(), diag.SeverityWarning)
	set.Freeze()

	svc := New(set)
	reporter := svc.Run(context.Background(), []string{
		filepath.Join(dir, "a.zig"),
		filepath.Join(dir, "b.zig"),
	}, Options{Threads: 2})

	assert.Equal(t, int64(2), reporter.NumFilesProcessed())
	assert.Equal(t, int64(3), reporter.NumDiagnosticsEmitted())
}

func TestRunRecordsIOErrorForMissingFile(t *testing.T) {
	set := rule.NewSet()
	set.Freeze()
	svc := New(set)

	reporter := svc.Run(context.Background(), []string{"/nonexistent/path/does-not-exist.zig"}, Options{Threads: 1})

	assert.Equal(t, int64(1), reporter.NumFilesProcessed())
	assert.True(t, reporter.HasErrors())
	require.Len(t, reporter.Diagnostics(), 1)
	assert.Equal(t, "io", reporter.Diagnostics()[0].Code)
}

func TestRunSkipsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.zig", "")

	set := rule.NewSet()
	set.Register(alwaysFlagRule(), diag.SeverityWarning)
	set.Freeze()
	svc := New(set)

	reporter := svc.Run(context.Background(), []string{filepath.Join(dir, "empty.zig")}, Options{Threads: 1})

	assert.Equal(t, int64(1), reporter.NumFilesProcessed())
	assert.Equal(t, int64(0), reporter.NumDiagnosticsEmitted())
}

func TestRunFixModeRewritesFileInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixable.zig", "const a = 1;\n")

	deleteRule := rule.Rule{
		Meta: rule.Meta{Name: "del", DefaultSeverity: diag.SeverityWarning, FixCapability: diag.CapSafeFix},
		Hooks: rule.Hooks{
			RunOnSymbol: func(c *lintctx.Context, sym ids.SymbolID) {
				c.ReportWithFix(c.ReplaceFix(diag.Span{Start: 6, End: 7}, "z"), c.Diagnostic("del", "rename"))
			},
		},
	}
	set := rule.NewSet()
	set.Register(deleteRule, diag.SeverityWarning)
	set.Freeze()
	svc := New(set)

	reporter := svc.Run(context.Background(), []string{path}, Options{
		Threads:    1,
		Fix:        true,
		FixProfile: diag.Profile{Kind: diag.FixKindFix, Dangerous: false},
	})

	assert.Equal(t, int64(1), reporter.NumFilesProcessed())
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "const z = 1;\n", string(contents))
}
