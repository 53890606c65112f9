package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/diag"
)

func diagWithFix(code string, fix *diag.Fix) *diag.Diagnostic {
	d := diag.New(code, "msg")
	d.Fix = fix
	return d
}

var safeFixProfile = diag.Profile{Kind: diag.FixKindFix, Dangerous: false}

func TestNoFixIsNoop(t *testing.T) {
	text := []byte("const x = 1;")
	d := diag.New("rule", "msg")
	res := Apply(text, []*diag.Diagnostic{d}, safeFixProfile)

	assert.False(t, res.DidFix)
	assert.Empty(t, res.Source)
	require.Len(t, res.UnfixedErrors, 1)
}

func TestSingleFixSubstitutesSpan(t *testing.T) {
	text := []byte("const x = 1;")
	d := diagWithFix("rule", &diag.Fix{
		Span:        diag.Span{Start: 6, End: 7},
		Replacement: "y",
		Kind:        diag.FixKindFix,
	})
	res := Apply(text, []*diag.Diagnostic{d}, safeFixProfile)

	require.True(t, res.DidFix)
	assert.Equal(t, "const y = 1;", string(res.Source))
	assert.Empty(t, res.UnfixedErrors)
}

func TestNonOverlappingFixesApplyOrderIndependently(t *testing.T) {
	text := []byte("aaaa")
	d1 := diagWithFix("r1", &diag.Fix{Span: diag.Span{Start: 0, End: 1}, Replacement: "X", Kind: diag.FixKindFix})
	d2 := diagWithFix("r2", &diag.Fix{Span: diag.Span{Start: 2, End: 3}, Replacement: "Y", Kind: diag.FixKindFix})

	forward := Apply(text, []*diag.Diagnostic{d1, d2}, safeFixProfile)
	backward := Apply(text, []*diag.Diagnostic{d2, d1}, safeFixProfile)

	assert.Equal(t, string(forward.Source), string(backward.Source))
	assert.Equal(t, "XaYa", string(forward.Source))
}

func TestOverlappingFixDropsSecondAsUnfixed(t *testing.T) {
	text := []byte("abcdef")
	d1 := diagWithFix("r1", &diag.Fix{Span: diag.Span{Start: 0, End: 3}, Replacement: "XYZ", Kind: diag.FixKindFix})
	d2 := diagWithFix("r2", &diag.Fix{Span: diag.Span{Start: 2, End: 4}, Replacement: "Q", Kind: diag.FixKindFix})
	res := Apply(text, []*diag.Diagnostic{d1, d2}, safeFixProfile)

	require.True(t, res.DidFix)
	assert.Equal(t, "XYZdef", string(res.Source))
	require.Len(t, res.UnfixedErrors, 1)
	assert.Equal(t, "r2", res.UnfixedErrors[0].Code)
}

func TestDangerousFixDroppedBySafeProfile(t *testing.T) {
	text := []byte("abc")
	d := diagWithFix("r1", &diag.Fix{Span: diag.Span{Start: 0, End: 1}, Replacement: "X", Kind: diag.FixKindFix, Dangerous: true})
	res := Apply(text, []*diag.Diagnostic{d}, safeFixProfile)

	assert.False(t, res.DidFix)
	require.Len(t, res.UnfixedErrors, 1)
}

func TestNoopFixSpanAndReplacementEmptyIsDropped(t *testing.T) {
	text := []byte("abc")
	d := diagWithFix("r1", &diag.Fix{Kind: diag.FixKindFix})
	res := Apply(text, []*diag.Diagnostic{d}, safeFixProfile)

	assert.False(t, res.DidFix)
	require.Len(t, res.UnfixedErrors, 1)
}

func TestSuggestionKindNotAppliedByFixProfile(t *testing.T) {
	text := []byte("abc")
	d := diagWithFix("r1", &diag.Fix{Span: diag.Span{Start: 0, End: 1}, Replacement: "X", Kind: diag.FixKindSuggestion})
	res := Apply(text, []*diag.Diagnostic{d}, safeFixProfile)

	assert.False(t, res.DidFix)
	require.Len(t, res.UnfixedErrors, 1)
}
