package rules

import (
	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/lintctx"
	"github.com/ziglint/ziglint/internal/rule"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// HomelessTry flags a `try` expression whose enclosing function cannot
// actually propagate the error it unwraps: the function's return type is
// not an error union, and there is no enclosing test block (tests are
// implicitly error-returning). A stand-in compiler would simply refuse to
// build this; ziglint reports it directly so the diagnostic carries a
// span and a fix hint instead of a compiler backtrace.
var HomelessTry = rule.Rule{
	Meta: rule.Meta{
		Name:            "homeless-try",
		Category:        rule.CategoryCompiler,
		DefaultSeverity: diag.SeverityError,
	},
	Hooks: rule.Hooks{
		RunOnNode: homelessTryRunOnNode,
	},
}

func homelessTryRunOnNode(ctx *lintctx.Context, node ids.NodeID) {
	n := ctx.AST.Node(node)
	if n.Tag != zigsyntax.TagTry {
		return
	}

	enclosingFn, enclosingTest := enclosingFnOrTest(ctx, node)
	if enclosingTest {
		return
	}
	if enclosingFn.IsNull() {
		return
	}
	proto, ok := ctx.AST.Canonicalize(enclosingFn)
	if !ok {
		return
	}
	full, ok := proto.(zigsyntax.FullFnProto)
	if !ok || full.IsErrorUnionReturn {
		return
	}

	ctx.Report(ctx.Diagnostic(
		"homeless-try",
		"`try` used in a function that cannot return an error",
		diag.Label{Span: ctx.SpanForNode(node), Message: "this `try` has no enclosing error-returning function"},
	).WithHelp("Change the return type to `!void`."))
}

// enclosingFnOrTest walks node's ancestor chain looking for the nearest
// fn_decl or test_decl. It returns the fn_proto node id when a fn_decl was
// found (ids.NullNode otherwise), and whether a test_decl was found first.
func enclosingFnOrTest(ctx *lintctx.Context, node ids.NodeID) (fnProto ids.NodeID, inTest bool) {
	cur := ctx.Model.Links.Parent[node]
	for !cur.IsNull() && cur != ids.RootNode {
		n := ctx.AST.Node(cur)
		switch n.Tag {
		case zigsyntax.TagTestDecl:
			return ids.NullNode, true
		case zigsyntax.TagFnDecl:
			return fnDeclProto(ctx, cur), false
		}
		cur = ctx.Model.Links.Parent[cur]
	}
	return ids.NullNode, false
}

// fnDeclProto returns a fn_decl node's fn_proto child (its LHS data word,
// per internal/semanalyze's buildFnDecl).
func fnDeclProto(ctx *lintctx.Context, fnDecl ids.NodeID) ids.NodeID {
	n := ctx.AST.Node(fnDecl)
	return ids.NodeID(n.LHS)
}
