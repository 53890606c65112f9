package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
)

func TestPrintDiagnosticsGroupsByFileAndSortsByOffset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.zig")
	require.NoError(t, os.WriteFile(path, []byte("const a = 1;\nconst b = 2;\n"), 0o644))

	later := diag.New("unused-decls", "unused declaration `b`")
	later.Severity = diag.SeverityWarning
	later.Pathname = path
	later.Labels = []diag.Label{{Span: diag.Span{Start: 13, End: 25}, Message: "never referenced"}}

	earlier := diag.New("unused-decls", "unused declaration `a`")
	earlier.Severity = diag.SeverityError
	earlier.Pathname = path
	earlier.Labels = []diag.Label{{Span: diag.Span{Start: 0, End: 12}, Message: "never referenced"}}

	var buf bytes.Buffer
	printDiagnostics(&buf, []*diag.Diagnostic{later, earlier})

	out := buf.String()
	assert.Contains(t, out, path)
	assert.True(t, indexOf(out, "declaration `a`") < indexOf(out, "declaration `b`"))
	assert.Contains(t, out, "2:1")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestLineIndexComputesLineAndColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "b.zig")
	require.NoError(t, os.WriteFile(path, []byte("abc\ndef\nghi\n"), 0o644))

	li := newLineIndex(path)
	line, col := li.lineCol(5)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
}

func TestFindDefaultConfigPrefersKDLOverJSONOverTOML(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(cwd)
	require.NoError(t, os.Chdir(dir))

	require.NoError(t, os.WriteFile(".ziglint.json", []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile("ziglint.toml", []byte(""), 0o644))
	assert.Equal(t, ".ziglint.json", findDefaultConfig())

	require.NoError(t, os.WriteFile(".ziglint.kdl", []byte(""), 0o644))
	assert.Equal(t, ".ziglint.kdl", findDefaultConfig())
}
