package rules

import (
	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/semmodel"
)

// UnusedDecls flags a private top-level `const`/`var` that nothing
// references. Its fix deletes the whole declaration, which changes the
// file's public surface area if another tool parses it textually
// (e.g. line numbers shift); spec.md §4.5 classifies that as a dangerous
// fix, applied only under a profile that opts into dangerous edits.
var UnusedDecls = rule.Rule{
	Meta: rule.Meta{
		Name:            "unused-decls",
		Category:        rule.CategoryCorrectness,
		DefaultSeverity: diag.SeverityWarning,
		FixCapability:   diag.CapDangerousFix,
	},
	Hooks: rule.Hooks{
		RunOnSymbol: unusedDeclsRunOnSymbol,
	},
}

func unusedDeclsRunOnSymbol(ctx *lintctx.Context, symbol ids.SymbolID) {
	sym := ctx.Model.Symbol(symbol)
	if !sym.Flags.Intersects(semmodel.FlagVariable | semmodel.FlagConst) {
		return
	}
	if sym.Flags.IsContainer() || sym.Flags.Intersects(semmodel.FlagFnParam|semmodel.FlagCatchParam) {
		return
	}
	if sym.Visibility != semmodel.VisibilityPrivate {
		return
	}
	if !ctx.Model.Scope(sym.Scope).Flags.Has(semmodel.FlagTop) {
		return
	}
	if len(sym.References) > 0 {
		return
	}

	span := ctx.SpanCoveringNode(sym.Decl)
	span = extendThroughStatementEnd(ctx, span)

	ctx.ReportWithFix(ctx.DeleteFix(span), ctx.Diagnostic(
		"unused-decls",
		"unused declaration `"+sym.Name+"`",
		diag.Label{Span: ctx.SpanForNode(sym.Decl), Message: "never referenced"},
	).WithHelp("Remove the unused declaration."))
}

// extendThroughStatementEnd widens span to also cover the statement's
// trailing `;` (consumed by the parser but not stored on the var_decl
// node) and, when present, the single newline right after it, so deleting
// the fix doesn't leave a blank line behind.
func extendThroughStatementEnd(ctx *lintctx.Context, span diag.Span) diag.Span {
	text := ctx.Source.Text()
	i := span.End
	for i < len(text) && (text[i] == ' ' || text[i] == '\t') {
		i++
	}
	if i < len(text) && text[i] == ';' {
		i++
	}
	if i < len(text) && text[i] == '\n' {
		i++
	}
	return diag.Span{Start: span.Start, End: i}
}
