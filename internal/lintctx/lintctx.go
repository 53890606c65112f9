// Package lintctx is the per-file lint context (spec.md §4.2 component
// C9): read access to a file's AST/model/source, span and diagnostic
// helpers, and the report/report-with-fix entry points every rule hook
// uses.
package lintctx

import (
	"fmt"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/semmodel"
	"github.com/ziglint/ziglint/internal/source"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// LineInfo describes one source line for run_on_line hooks (spec.md
// §4.4): 1-based number, and the byte span it covers (excluding its
// terminator).
type LineInfo struct {
	Number int
	Start  int
	End    int
}

// Context is passed by mutable reference to every rule hook for one file.
type Context struct {
	AST    *zigsyntax.AST
	Model  *semmodel.Model
	Source *source.Source

	// DevMode enables the invariant panic spec.md §4.2 describes for
	// report_with_fix without a declared capability; release builds
	// silently drop the fix instead.
	DevMode bool

	diagnostics []*diag.Diagnostic

	currentRule  string
	currentSev   diag.Severity
	currentCap   diag.FixCapability
}

func New(ast *zigsyntax.AST, model *semmodel.Model, src *source.Source) *Context {
	return &Context{AST: ast, Model: model, Source: src}
}

// UpdateForRule resets the "current rule" bookkeeping between rules
// (spec.md §4.2 Lint context lifecycle).
func (c *Context) UpdateForRule(name string, severity diag.Severity, cap diag.FixCapability) {
	c.currentRule = name
	c.currentSev = severity
	c.currentCap = cap
}

// Diagnostics returns every diagnostic reported so far, in report order.
func (c *Context) Diagnostics() []*diag.Diagnostic { return c.diagnostics }

// SpanForNode returns the byte span covered by node n's main token. Rules
// needing a wider span (e.g. a whole call expression) build one from the
// node's constituent tokens directly; this is the common single-token
// case spec.md §4.2 names explicitly.
func (c *Context) SpanForNode(n ids.NodeID) diag.Span {
	return c.SpanForToken(c.AST.Node(n).MainToken)
}

// SpanForToken returns token t's byte span.
func (c *Context) SpanForToken(t ids.TokenID) diag.Span {
	tok := c.AST.Token(t)
	return diag.Span{Start: tok.Start, End: tok.End}
}

// SpanCoveringNode returns the smallest span covering n's main token and
// every token reachable through its descendants (spec.md §4.5
// "span_covering_node"), unlike SpanForNode's single-token span.
func (c *Context) SpanCoveringNode(n ids.NodeID) diag.Span {
	span := c.SpanForNode(n)
	for _, child := range c.AST.ChildNodes(n) {
		cs := c.SpanCoveringNode(child)
		if cs.Start < span.Start {
			span.Start = cs.Start
		}
		if cs.End > span.End {
			span.End = cs.End
		}
	}
	return span
}

// SnippetOfNode returns the source text spanned by SpanCoveringNode(n)
// (spec.md §4.5 "snippet_of_node").
func (c *Context) SnippetOfNode(n ids.NodeID) string {
	s := c.SpanCoveringNode(n)
	return c.Source.Slice(s.Start, s.End)
}

// SnippetOfToken returns the source text of token t (spec.md §4.5
// "snippet_of_token").
func (c *Context) SnippetOfToken(t ids.TokenID) string {
	s := c.SpanForToken(t)
	return c.Source.Slice(s.Start, s.End)
}

// NoopFix returns a fix that changes nothing, for rules that want to
// advertise a fix capability without always producing an edit (spec.md
// §4.5 "noop").
func (c *Context) NoopFix() diag.Fix { return diag.Fix{} }

// DeleteFix returns a fix that removes span entirely.
func (c *Context) DeleteFix(span diag.Span) diag.Fix {
	return diag.Fix{Span: span}
}

// ReplaceFix returns a fix that replaces span with replacement.
func (c *Context) ReplaceFix(span diag.Span, replacement string) diag.Fix {
	return diag.Fix{Span: span, Replacement: replacement}
}

// ReplaceFmtFix is ReplaceFix with a formatted replacement (spec.md §4.5
// "replace_fmt").
func (c *Context) ReplaceFmtFix(span diag.Span, template string, args ...any) diag.Fix {
	return c.ReplaceFix(span, fmt.Sprintf(template, args...))
}

// Diagnostic starts a new diagnostic with a static message, labeling the
// given spans (spec.md §4.2 "diagnostic(static_message, labels)").
func (c *Context) Diagnostic(code, message string, labels ...diag.Label) *diag.Diagnostic {
	d := diag.New(code, message)
	d.Labels = labels
	return d
}

// Diagnosticf is Diagnostic with a formatted message (spec.md §4.2
// "diagnostic_fmt").
func (c *Context) Diagnosticf(code, template string, args []any, labels ...diag.Label) *diag.Diagnostic {
	d := diag.Newf(code, template, args...)
	d.Labels = labels
	return d
}

// Report tags d with the current rule's name and severity (unless the
// rule already set one explicitly) and enqueues it.
func (c *Context) Report(d *diag.Diagnostic) {
	d.RuleName = c.currentRule
	if d.Severity == diag.SeverityOff {
		d.Severity = c.currentSev
	}
	d.Pathname = c.Source.Pathname()
	c.diagnostics = append(c.diagnostics, d)
}

// ReportWithFix attaches fix to d before reporting it, enforcing the
// safety assertion from spec.md §4.2: a rule whose advertised capability
// is CapNone may not produce a fix.
func (c *Context) ReportWithFix(fix diag.Fix, d *diag.Diagnostic) {
	if c.currentCap == diag.CapNone {
		if c.DevMode {
			panic(fmt.Sprintf("lintctx: rule %q called ReportWithFix without declaring a fix capability", c.currentRule))
		}
		c.Report(d)
		return
	}
	fix.Kind = c.currentCap.Kind()
	fix.Dangerous = c.currentCap.Dangerous()
	d.Fix = &fix
	c.Report(d)
}

// CommentsBefore walks the source backward from token t over
// whitespace-only bytes and returns the contiguous `//`-prefixed comment
// lines immediately above it, joined with newlines (spec.md §9
// "Comment-adjacent metadata"); "" if there is none.
func (c *Context) CommentsBefore(t ids.TokenID) string {
	tok := c.AST.Token(t)
	text := c.Source.Text()
	pos := tok.Start

	// Find the run of comments whose End lies in the whitespace-only gap
	// immediately preceding tok, walking the comment list backward since
	// comments are stored in source order.
	var block []zigsyntax.Comment
	for i := len(c.AST.Comments) - 1; i >= 0; i-- {
		cm := c.AST.Comments[i]
		if cm.End > pos {
			continue
		}
		if !onlyWhitespace(text[cm.End:pos]) {
			break
		}
		block = append([]zigsyntax.Comment{cm}, block...)
		pos = cm.Start
	}
	if len(block) == 0 {
		return ""
	}
	out := ""
	for i, cm := range block {
		if i > 0 {
			out += "\n"
		}
		out += string(text[cm.Start:cm.End])
	}
	return out
}

func onlyWhitespace(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return false
		}
	}
	return true
}
