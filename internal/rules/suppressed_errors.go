package rules

import (
	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// writerMethodAllowlist holds the std.io.Writer method names whose errors
// are routinely and legitimately swallowed (a failed write to, say, an
// in-memory buffer writer is not interesting at most call sites). Rules
// past this point in the file have no type information to check the
// receiver really is a Writer, so the allowlist is a heuristic over the
// method name alone.
var writerMethodAllowlist = map[string]bool{
	"write":            true,
	"writeAll":         true,
	"writeByte":        true,
	"writeByteNTimes":  true,
	"print":            true,
}

// SuppressedErrors flags `catch unreachable` (the program aborts on any
// error, not just the ones the author actually expected never to happen)
// and `catch {}` (the error vanishes with no trace), except for the
// writer-method allowlist above.
var SuppressedErrors = rule.Rule{
	Meta: rule.Meta{
		Name:            "suppressed-errors",
		Category:        rule.CategorySuspicious,
		DefaultSeverity: diag.SeverityWarning,
	},
	Hooks: rule.Hooks{
		RunOnNode: suppressedErrorsRunOnNode,
	},
}

func suppressedErrorsRunOnNode(ctx *lintctx.Context, node ids.NodeID) {
	n := ctx.AST.Node(node)
	if n.Tag != zigsyntax.TagCatch {
		return
	}
	bodyID := ids.NodeID(n.RHS)
	body := ctx.AST.Node(bodyID)

	switch body.Tag {
	case zigsyntax.TagUnreachableLiteral:
		ctx.Report(ctx.Diagnostic(
			"suppressed-errors",
			"`catch unreachable` aborts the program on any error from this call",
			diag.Label{Span: ctx.SpanForNode(bodyID), Message: "every error becomes an unconditional crash here"},
		).WithHelp("Handle the specific error, or propagate it with `try`."))

	case zigsyntax.TagBlockTwo, zigsyntax.TagBlockTwoSemicolon:
		if len(ctx.AST.ChildNodes(bodyID)) != 0 {
			return
		}
		if isAllowlistedWriterCall(ctx, ids.NodeID(n.LHS)) {
			return
		}
		ctx.Report(ctx.Diagnostic(
			"suppressed-errors",
			"error discarded silently by an empty `catch {}`",
			diag.Label{Span: ctx.SpanForNode(node), Message: "this error is never reported"},
		).WithHelp("Log the error, or handle it explicitly."))
	}
}

// isAllowlistedWriterCall reports whether scrutinee is a call whose
// callee is a field access naming a writerMethodAllowlist method, e.g.
// `w.writeAll(...)`.
func isAllowlistedWriterCall(ctx *lintctx.Context, scrutinee ids.NodeID) bool {
	kind, full, ok := ctx.AST.Canonicalize(scrutinee)
	if !ok || kind != zigsyntax.FullKindCall {
		return false
	}
	call := full.(zigsyntax.FullCall)
	callee := ctx.AST.Node(call.Callee)
	if callee.Tag != zigsyntax.TagFieldAccess {
		return false
	}
	return writerMethodAllowlist[ctx.SnippetOfToken(callee.MainToken)]
}
