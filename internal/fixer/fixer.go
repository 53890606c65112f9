// Package fixer applies diagnostic fixes to a source buffer (spec.md
// §4.5, component C11): filter by the user's accepted fix profile, sort
// and merge non-overlapping replacements, and rebuild the patched text.
package fixer

import (
	"sort"

	"github.com/ziglint/ziglint/internal/diag"
)

// Result is the fixer's output (spec.md §4.5 "Output"). When DidFix is
// false, Source is empty: callers must not write it back to disk.
type Result struct {
	DidFix        bool
	Source        []byte
	UnfixedErrors []*diag.Diagnostic
}

// Apply filters diagnostics' fixes by profile, sorts and merges the
// retained ones, and rewrites text. Diagnostics with no fix, a
// no-op fix, a fix outside profile, or a fix that overlaps an
// earlier one are deferred into UnfixedErrors (spec.md §4.5, §7 "Fix
// conflict").
func Apply(text []byte, diagnostics []*diag.Diagnostic, profile diag.Profile) Result {
	type candidate struct {
		diagnostic *diag.Diagnostic
		fix        diag.Fix
	}

	var candidates []candidate
	var unfixed []*diag.Diagnostic

	for _, d := range diagnostics {
		if d.Fix == nil || d.Fix.IsNoop() || !profile.CanApply(*d.Fix) {
			unfixed = append(unfixed, d)
			continue
		}
		candidates = append(candidates, candidate{diagnostic: d, fix: *d.Fix})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].fix.Span.Start < candidates[j].fix.Span.Start
	})

	var out []byte
	lastEnd := 0
	changed := false
	for _, c := range candidates {
		if c.fix.Span.Start < lastEnd {
			unfixed = append(unfixed, c.diagnostic)
			continue
		}
		out = append(out, text[lastEnd:c.fix.Span.Start]...)
		out = append(out, c.fix.Replacement...)
		lastEnd = c.fix.Span.End
		changed = true
	}
	if !changed {
		return Result{DidFix: false, UnfixedErrors: unfixed}
	}
	out = append(out, text[lastEnd:]...)
	return Result{DidFix: true, Source: out, UnfixedErrors: unfixed}
}
