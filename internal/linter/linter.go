// Package linter is the orchestrator (spec.md §4.4, component C10): it
// drives a frozen rule.Set over one file's lintctx.Context through the
// four hook phases in the mandated order, run_once -> run_on_symbol ->
// run_on_node -> run_on_line, containing any single rule's fault so it
// cannot abort the rest of the file.
package linter

import (
	"fmt"

	"github.com/ziglint/ziglint/internal/debug"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/walker"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// Lint runs every phase of set against ctx in order. ctx.AST and
// ctx.Model must already be built (internal/semanalyze.Build).
func Lint(ctx *lintctx.Context, set *rule.Set) {
	runOnce(ctx, set)
	runOnSymbol(ctx, set)
	runOnNode(ctx, set)
	runOnLine(ctx, set)
}

func runOnce(ctx *lintctx.Context, set *rule.Set) {
	for _, e := range set.WithRunOnce() {
		ctx.UpdateForRule(e.Rule.Meta.Name, e.Severity, e.Rule.Meta.FixCapability)
		safeCall(e.Rule.Meta.Name, "run_once", func() {
			e.Rule.Hooks.RunOnce(ctx)
		})
	}
}

// runOnSymbol visits ctx.Model.Symbols in id order (spec.md §4.4
// "run_on_symbol hooks iterate the symbol table in declaration order").
func runOnSymbol(ctx *lintctx.Context, set *rule.Set) {
	entries := set.WithRunOnSymbol()
	if len(entries) == 0 {
		return
	}
	for i := range ctx.Model.Symbols {
		sym := ids.SymbolID(i)
		for _, e := range entries {
			ctx.UpdateForRule(e.Rule.Meta.Name, e.Severity, e.Rule.Meta.FixCapability)
			safeCall(e.Rule.Meta.Name, fmt.Sprintf("run_on_symbol(%v)", sym), func() {
				e.Rule.Hooks.RunOnSymbol(ctx, sym)
			})
		}
	}
}

// runOnNode performs a single walker.Walk pass, dispatching every
// run_on_node rule on each EnterNode (spec.md §4.4 "a single traversal
// serves every run_on_node rule").
func runOnNode(ctx *lintctx.Context, set *rule.Set) {
	entries := set.WithRunOnNode()
	if len(entries) == 0 {
		return
	}
	v := &nodeDispatchVisitor{ctx: ctx, entries: entries}
	walker.New(ctx.AST, v).Walk()
}

type nodeDispatchVisitor struct {
	walker.NopVisitor
	ctx     *lintctx.Context
	entries []rule.Entry
}

func (v *nodeDispatchVisitor) EnterNode(n ids.NodeID) {
	for _, e := range v.entries {
		v.ctx.UpdateForRule(e.Rule.Meta.Name, e.Severity, e.Rule.Meta.FixCapability)
		safeCall(e.Rule.Meta.Name, fmt.Sprintf("run_on_node(%v)", n), func() {
			e.Rule.Hooks.RunOnNode(v.ctx, n)
		})
	}
}

func (v *nodeDispatchVisitor) VisitTag(n ids.NodeID, tag zigsyntax.Tag) walker.State {
	return walker.Continue
}

func (v *nodeDispatchVisitor) VisitFull(n ids.NodeID, kind zigsyntax.FullKind, full any) walker.State {
	return walker.Continue
}

// runOnLine splits ctx.Source's text into lines and runs every
// run_on_line rule against each (spec.md §4.4 "run_on_line hooks see
// every line exactly once, 1-indexed"). A line never includes its
// terminator; both bare "\n" and "\r\n" are recognized.
func runOnLine(ctx *lintctx.Context, set *rule.Set) {
	entries := set.WithRunOnLine()
	if len(entries) == 0 {
		return
	}
	text := ctx.Source.Text()
	number := 1
	start := 0
	for i := 0; i <= len(text); i++ {
		if i == len(text) || text[i] == '\n' {
			end := i
			if end > start && text[end-1] == '\r' {
				end--
			}
			if start == len(text) && i == len(text) {
				break
			}
			line := lintctx.LineInfo{Number: number, Start: start, End: end}
			dispatchLine(ctx, entries, line)
			number++
			start = i + 1
		}
	}
}

func dispatchLine(ctx *lintctx.Context, entries []rule.Entry, line lintctx.LineInfo) {
	for _, e := range entries {
		ctx.UpdateForRule(e.Rule.Meta.Name, e.Severity, e.Rule.Meta.FixCapability)
		safeCall(e.Rule.Meta.Name, fmt.Sprintf("run_on_line(%d)", line.Number), func() {
			e.Rule.Hooks.RunOnLine(ctx, line)
		})
	}
}

// safeCall runs fn, recovering and logging any panic so one rule's
// fault terminates only that hook invocation, never the rest of the
// file (spec.md §4.4 "Rule-fault containment").
func safeCall(ruleName, site string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			debug.Log("LINT", "rule %q panicked during %s: %v", ruleName, site, r)
		}
	}()
	fn()
}
