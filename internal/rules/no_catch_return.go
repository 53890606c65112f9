package rules

import (
	"strings"

	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// NoCatchReturn flags two shapes of `catch` whose fallback branch just
// re-raises or obscures the error it caught: `expr catch |e| return e`,
// which is exactly what `try expr` already does and gets rewritten to it,
// and a multi-statement catch body, which buries the actual error
// handling where a reader skimming the call site won't see it.
var NoCatchReturn = rule.Rule{
	Meta: rule.Meta{
		Name:            "no-catch-return",
		Category:        rule.CategoryStyle,
		DefaultSeverity: diag.SeverityWarning,
		FixCapability:   diag.CapSafeFix,
	},
	Hooks: rule.Hooks{
		RunOnNode: noCatchReturnRunOnNode,
	},
}

func noCatchReturnRunOnNode(ctx *lintctx.Context, node ids.NodeID) {
	n := ctx.AST.Node(node)
	if n.Tag != zigsyntax.TagCatch {
		return
	}
	bodyID := ids.NodeID(n.RHS)
	body := ctx.AST.Node(bodyID)

	switch body.Tag {
	case zigsyntax.TagReturn:
		payloadTok, hasPayload := ctx.AST.CatchPayload(node).Get()
		operand := ids.NodeID(body.LHS)
		if !hasPayload || operand.IsNull() {
			return
		}
		if !identifierNames(ctx, operand, ctx.SnippetOfToken(payloadTok)) {
			return
		}
		scrutinee := ids.NodeID(n.LHS)
		replacement := "try " + scrutineeText(ctx, scrutinee, n.MainToken)
		ctx.ReportWithFix(ctx.ReplaceFix(ctx.SpanCoveringNode(node), replacement), ctx.Diagnostic(
			"no-catch-return",
			"`catch |e| return e` is exactly what `try` already does",
			diag.Label{Span: ctx.SpanForNode(node), Message: "rewrite this as `try`"},
		).WithHelp("Replace the catch with `try`."))

	case zigsyntax.TagBlock, zigsyntax.TagBlockSemicolon, zigsyntax.TagBlockTwo, zigsyntax.TagBlockTwoSemicolon:
		if len(ctx.AST.ChildNodes(bodyID)) < 2 {
			return
		}
		ctx.Report(ctx.Diagnostic(
			"no-catch-return",
			"catch body with multiple statements obscures error handling at the call site",
			diag.Label{Span: ctx.SpanForNode(node), Message: "consider extracting this into a named function"},
		))
	}
}

// scrutineeText returns the original source text of a catch's scrutinee
// expression, read directly between its covering span's start and the
// catch keyword that follows it. A call with no arguments has no node
// anchoring its closing `)` (the parser never stores it), so
// SpanCoveringNode alone can't be trusted for a call's own end; reading
// up to the keyword that must follow it sidesteps that gap entirely.
func scrutineeText(ctx *lintctx.Context, scrutinee ids.NodeID, catchTok ids.TokenID) string {
	start := ctx.SpanCoveringNode(scrutinee).Start
	end := ctx.SpanForToken(catchTok).Start
	text := ctx.Source.Slice(start, end)
	return strings.TrimRight(text, " \t\n\r")
}

func identifierNames(ctx *lintctx.Context, node ids.NodeID, name string) bool {
	n := ctx.AST.Node(node)
	if n.Tag != zigsyntax.TagIdentifier {
		return false
	}
	return ctx.SnippetOfToken(n.MainToken) == name
}
