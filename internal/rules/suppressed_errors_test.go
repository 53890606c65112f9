package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuppressedErrorsFlagsCatchUnreachable(t *testing.T) {
	diags := lintText(t, "fn foo() void { risky() catch unreachable; }\n", SuppressedErrors)
	require.Len(t, diags, 1)
	assert.Equal(t, "suppressed-errors", diags[0].Code)
	require.Len(t, diags[0].Labels, 1)
}

func TestSuppressedErrorsFlagsEmptyCatchBlock(t *testing.T) {
	diags := lintText(t, "fn foo() void { risky() catch {}; }\n", SuppressedErrors)
	require.Len(t, diags, 1)
	assert.Equal(t, "suppressed-errors", diags[0].Code)
}

func TestSuppressedErrorsAllowsWriterMethodAllowlist(t *testing.T) {
	diags := lintText(t, "fn foo(w: Writer) void { w.writeAll(\"x\") catch {}; }\n", SuppressedErrors)
	assert.Empty(t, diags)
}
