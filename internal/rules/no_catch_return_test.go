package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/fixer"
)

func TestNoCatchReturnRewritesToTry(t *testing.T) {
	text := "fn foo() !void { bar() catch |e| return e; }\n"
	diags := lintText(t, text, NoCatchReturn)
	require.Len(t, diags, 1)
	assert.Equal(t, "no-catch-return", diags[0].Code)
	require.NotNil(t, diags[0].Fix)
	assert.False(t, diags[0].Fix.Dangerous)

	safeFix := diag.Profile{Kind: diag.FixKindFix, Dangerous: false}
	result := fixer.Apply([]byte(text), diags, safeFix)
	require.True(t, result.DidFix)
	assert.Empty(t, result.UnfixedErrors)
	assert.Equal(t, "fn foo() !void { try bar(); }\n", string(result.Source))
}

func TestNoCatchReturnFlagsMultiStatementBodyWithNoFix(t *testing.T) {
	text := "fn foo() !void { bar() catch |e| { logError(e); return e; }; }\n"
	diags := lintText(t, text, NoCatchReturn)
	require.Len(t, diags, 1)
	assert.Equal(t, "no-catch-return", diags[0].Code)
	assert.Nil(t, diags[0].Fix)
}
