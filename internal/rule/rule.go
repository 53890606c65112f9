// Package rule defines the rule handle and dispatch table spec.md §4.2
// describes (component C8): a rule advertises its metadata and up to
// four optional hooks; the frozen, ordered Set built from configuration
// drives the linter (internal/linter, component C10).
package rule

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
)

// Category groups rules the way spec.md §4.2 lists them, from
// compiler-mandated checks down to pure style preferences.
type Category string

const (
	CategoryCompiler    Category = "compiler"
	CategoryCorrectness Category = "correctness"
	CategorySuspicious  Category = "suspicious"
	CategoryRestriction Category = "restriction"
	CategoryPedantic    Category = "pedantic"
	CategoryStyle       Category = "style"
)

// Meta is a rule's static metadata (spec.md §4.2 Rule handle).
type Meta struct {
	Name            string
	Category        Category
	DefaultSeverity diag.Severity
	FixCapability   diag.FixCapability
}

// ID is the rule's stable compile-time identifier, derived from its name
// (spec.md §4.2 "a stable id derived at compile time from the rule's
// name"), as the xxhash 64-bit digest of Name.
func (m Meta) ID() uint64 { return xxhash.Sum64String(m.Name) }

// Hooks is the dispatch table: every field is optional.
type Hooks struct {
	RunOnce     func(ctx *lintctx.Context)
	RunOnNode   func(ctx *lintctx.Context, node ids.NodeID)
	RunOnSymbol func(ctx *lintctx.Context, symbol ids.SymbolID)
	RunOnLine   func(ctx *lintctx.Context, line lintctx.LineInfo)
}

// Rule is one lint rule's handle: metadata plus its hook table.
type Rule struct {
	Meta  Meta
	Hooks Hooks
}

func (r Rule) HasRunOnce() bool     { return r.Hooks.RunOnce != nil }
func (r Rule) HasRunOnNode() bool   { return r.Hooks.RunOnNode != nil }
func (r Rule) HasRunOnSymbol() bool { return r.Hooks.RunOnSymbol != nil }
func (r Rule) HasRunOnLine() bool   { return r.Hooks.RunOnLine != nil }

// Entry pairs a rule with the severity configuration assigned it.
type Entry struct {
	Rule     Rule
	Severity diag.Severity
}

// Set is the densely packed, ordered rule list built from configuration
// (spec.md §4.2 "Registration"). It is frozen before linting begins.
type Set struct {
	entries []Entry
	frozen  bool
}

func NewSet() *Set { return &Set{} }

// Register appends r with severity if severity is not off. Registering
// after Freeze panics: rule sets are built once per worker, never mutated
// mid-file (spec.md §4.4 "Concurrency").
func (s *Set) Register(r Rule, severity diag.Severity) {
	if s.frozen {
		panic("rule: Register called on a frozen Set")
	}
	if severity == diag.SeverityOff {
		return
	}
	s.entries = append(s.entries, Entry{Rule: r, Severity: severity})
}

func (s *Set) Freeze() { s.frozen = true }

func (s *Set) Entries() []Entry { return s.entries }

func (s *Set) WithRunOnce() []Entry     { return filter(s.entries, Rule.HasRunOnce) }
func (s *Set) WithRunOnNode() []Entry   { return filter(s.entries, Rule.HasRunOnNode) }
func (s *Set) WithRunOnSymbol() []Entry { return filter(s.entries, Rule.HasRunOnSymbol) }
func (s *Set) WithRunOnLine() []Entry   { return filter(s.entries, Rule.HasRunOnLine) }

func filter(entries []Entry, pred func(Rule) bool) []Entry {
	var out []Entry
	for _, e := range entries {
		if pred(e.Rule) {
			out = append(out, e)
		}
	}
	return out
}
