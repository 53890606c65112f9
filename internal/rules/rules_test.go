package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/linter"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/semanalyze"
	"github.com/ziglint/ziglint/internal/source"
)

func lintText(t *testing.T, text string, rules ...rule.Rule) []*diag.Diagnostic {
	t.Helper()
	src := source.New("test.zig", []byte(text))
	res, errs, buildErr := semanalyze.Build(src)
	require.Nil(t, buildErr)
	require.Empty(t, errs)
	require.NotNil(t, res)

	ctx := lintctx.New(res.AST, res.Model, src)
	set := rule.NewSet()
	for _, r := range rules {
		set.Register(r, r.Meta.DefaultSeverity)
	}
	set.Freeze()
	linter.Lint(ctx, set)
	return ctx.Diagnostics()
}

func TestAllReturnsEveryBuiltinRule(t *testing.T) {
	names := map[string]bool{}
	for _, r := range All() {
		names[r.Meta.Name] = true
	}
	require.True(t, names["homeless-try"])
	require.True(t, names["unused-decls"])
	require.True(t, names["no-catch-return"])
	require.True(t, names["suppressed-errors"])
}
