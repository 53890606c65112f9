package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
)

func TestHomelessTryFlagsNonErrorUnionReturn(t *testing.T) {
	diags := lintText(t, "fn foo() void { _ = try bar(); }\n", HomelessTry)
	require.Len(t, diags, 1)
	assert.Equal(t, "homeless-try", diags[0].Code)
	assert.Equal(t, diag.SeverityError, diags[0].Severity)
	require.Len(t, diags[0].Labels, 1)
	assert.Equal(t, "Change the return type to `!void`.", diags[0].Help)
}

func TestHomelessTryAllowsErrorUnionReturn(t *testing.T) {
	diags := lintText(t, "fn foo() !void { _ = try bar(); }\n", HomelessTry)
	assert.Empty(t, diags)
}

func TestHomelessTryAllowsTestBlock(t *testing.T) {
	diags := lintText(t, "test \"ok\" { try bar(); }\n", HomelessTry)
	assert.Empty(t, diags)
}
