// Package semanalyze is the single-pass semantic builder (spec.md §4.1,
// component C5): it runs the stand-in parser (internal/zigsyntax), then
// walks the resulting AST exactly once in source order to populate an
// internal/semmodel.Model with symbols, scopes, references and node
// links.
package semanalyze

import (
	"github.com/ziglint/ziglint/internal/diag"
	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/semmodel"
	"github.com/ziglint/ziglint/internal/source"
	"github.com/ziglint/ziglint/internal/zigsyntax"
)

// Result is what Build returns on success: the populated model plus the
// parsed AST, which rules and the walker need alongside the model.
type Result struct {
	AST   *zigsyntax.AST
	Model *semmodel.Model
}

type builder struct {
	src   *source.Source
	ast   *zigsyntax.AST
	model *semmodel.Model
	err   *diag.Diagnostic // first analysis-invariant violation, if any
}

// Build runs the parser and the semantic builder over src (spec.md §4.1
// "build(source) -> Result<{semantic, errors}, ParseFailed>"). It returns
// a *diag.BuildError only on ParseFailed/AnalysisFailed; a nil error with
// a nil Result and no diagnostics means src was empty (spec.md "Empty
// source (length 0) short-circuits to success with no model").
func Build(src *source.Source) (*Result, []*diag.Diagnostic, *diag.BuildError) {
	if src.Len() == 0 {
		return nil, nil, nil
	}

	ast, perr := zigsyntax.Parse(src.NulTerminated())
	if perr != nil {
		d := diag.New("parse", perr.Message).
			WithSeverity(diag.SeverityError).
			WithLabel(diag.Span{Start: perr.Pos, End: perr.Pos + 1}, "unexpected token here")
		d.Pathname = src.Pathname()
		return nil, []*diag.Diagnostic{d}, diag.NewBuildError(diag.ParseFailed, src.Pathname(), []*diag.Diagnostic{d})
	}

	b := &builder{src: src, ast: ast, model: semmodel.New(len(ast.Nodes))}
	root := b.model.AddScope(semmodel.Scope{Parent: ids.NoScope, Node: ids.RootNode, Flags: semmodel.FlagTop})
	for _, decl := range ast.RootDecls {
		b.model.Links.Parent[decl] = ids.RootNode
		b.visitNode(decl, root, semmodel.FlagRead)
		if b.err != nil {
			break
		}
	}

	if b.err != nil {
		errs := []*diag.Diagnostic{b.err}
		return nil, errs, diag.NewBuildError(diag.AnalysisFailed, src.Pathname(), errs)
	}
	return &Result{AST: ast, Model: b.model}, nil, nil
}

func (b *builder) fail(node ids.NodeID, message string) {
	if b.err != nil {
		return
	}
	b.err = diag.New("analysis", message).WithSeverity(diag.SeverityError)
	b.err.Pathname = b.src.Pathname()
}

func (b *builder) tokenText(tok ids.TokenID) string {
	return b.ast.TokenSlice(b.src.Text(), tok)
}

// resolve walks scope's ancestor chain (spec.md §3 Scope.parent) looking
// for a symbol bound under name, nearest scope first. Per spec.md §4.1's
// single-traversal description, a forward reference to a not-yet-visited
// top-level declaration resolves to None, exactly as an unresolved
// external reference would (documented design decision, not a bug: the
// spec describes one pass with no pre-registration step).
func (b *builder) resolve(name string, scope ids.ScopeID) ids.SymbolOptional {
	if name == "" {
		return ids.NoSymbol
	}
	cur := scope
	for {
		s := b.model.Scope(cur)
		for i := len(s.Symbols) - 1; i >= 0; i-- {
			sym := s.Symbols[i]
			if b.model.Symbol(sym).Name == name {
				return ids.SomeSymbol(sym)
			}
		}
		parent, ok := s.Parent.Get()
		if !ok {
			return ids.NoSymbol
		}
		cur = parent
	}
}

func (b *builder) recordReference(node ids.NodeID, scope ids.ScopeID, hint semmodel.ReferenceFlags) {
	n := b.ast.Node(node)
	name := b.tokenText(n.MainToken)
	sym := b.resolve(name, scope)
	b.model.AddReference(semmodel.Reference{Node: node, Scope: scope, Symbol: sym, Flags: hint})
}

// visitNode is the single recursive entry point: it records the node's
// enclosing scope, then either builds a binding/scope-introducing shape
// or recurses into children (spec.md §4.1's per-node rules).
func (b *builder) visitNode(node ids.NodeID, scope ids.ScopeID, hint semmodel.ReferenceFlags) {
	if node.IsNull() || b.err != nil {
		return
	}
	b.model.Links.Scope[node] = scope

	if kind, full, ok := b.ast.Canonicalize(node); ok {
		switch kind {
		case zigsyntax.FullKindVarDecl:
			b.buildVarDecl(node, full.(zigsyntax.FullVarDecl), scope)
			return
		case zigsyntax.FullKindIf:
			b.buildIf(node, full.(zigsyntax.FullIf), scope)
			return
		case zigsyntax.FullKindCall:
			b.buildCall(node, full.(zigsyntax.FullCall), scope)
			return
		case zigsyntax.FullKindWhile:
			b.buildWhile(node, full.(zigsyntax.FullWhile), scope)
			return
		case zigsyntax.FullKindFor:
			b.buildFor(node, full.(zigsyntax.FullFor), scope)
			return
		case zigsyntax.FullKindContainerDecl:
			b.buildContainerDecl(node, full.(zigsyntax.FullContainerDecl), scope)
			return
		case zigsyntax.FullKindContainerField:
			b.buildContainerField(node, full.(zigsyntax.FullContainerField), scope)
			return
		}
	}

	n := b.ast.Node(node)
	switch n.Tag {
	case zigsyntax.TagIdentifier:
		b.recordReference(node, scope, hint)

	case zigsyntax.TagNumberLiteral, zigsyntax.TagStringLiteral, zigsyntax.TagCharLiteral,
		zigsyntax.TagUnreachableLiteral, zigsyntax.TagEnumLiteral, zigsyntax.TagErrorValue:
		// leaf; nothing to record

	case zigsyntax.TagErrorUnion:
		b.visitChild(node, n.RHSNode(), scope, semmodel.FlagTypeRef)

	case zigsyntax.TagFnDecl:
		b.buildFnDecl(node, scope)

	case zigsyntax.TagTestDecl:
		b.buildTestDecl(node, scope)

	case zigsyntax.TagBlock, zigsyntax.TagBlockSemicolon, zigsyntax.TagBlockTwo, zigsyntax.TagBlockTwoSemicolon:
		b.buildBlock(node, scope)

	case zigsyntax.TagCatch:
		b.buildCatch(node, scope)

	case zigsyntax.TagTry:
		b.visitChild(node, n.LHSNode(), scope, semmodel.FlagRead)

	case zigsyntax.TagReturn:
		if !n.LHSNode().IsNull() {
			b.visitChild(node, n.LHSNode(), scope, semmodel.FlagRead)
		}

	case zigsyntax.TagFieldAccess, zigsyntax.TagAddressOf, zigsyntax.TagUnwrapOptional, zigsyntax.TagDeref:
		b.visitChild(node, n.LHSNode(), scope, hint)

	case zigsyntax.TagAdd, zigsyntax.TagSub, zigsyntax.TagMul, zigsyntax.TagDiv,
		zigsyntax.TagEqualEqual, zigsyntax.TagBangEqual:
		b.visitChild(node, n.LHSNode(), scope, semmodel.FlagRead)
		b.visitChild(node, n.RHSNode(), scope, semmodel.FlagRead)

	case zigsyntax.TagAssign:
		b.visitChild(node, n.LHSNode(), scope, semmodel.FlagWrite)
		b.visitChild(node, n.RHSNode(), scope, semmodel.FlagRead)

	case zigsyntax.TagComptime:
		b.buildComptime(node, n, scope)

	default:
		for _, c := range b.ast.ChildNodes(node) {
			b.visitChild(node, c, scope, semmodel.FlagRead)
		}
	}
}

func (b *builder) visitChild(parent, child ids.NodeID, scope ids.ScopeID, hint semmodel.ReferenceFlags) {
	if child.IsNull() {
		return
	}
	b.model.Links.Parent[child] = parent
	b.visitNode(child, scope, hint)
}

func (b *builder) buildVarDecl(node ids.NodeID, full zigsyntax.FullVarDecl, scope ids.ScopeID) {
	flags := semmodel.FlagVariable
	if full.IsConst {
		flags |= semmodel.FlagConst
	}

	// `const Foo = struct {...}`/`enum`/`union`/`error{...}` binds a
	// container symbol whose decl is the container node itself, not the
	// var_decl node, so containerOwnerSymbol can find it from the
	// container's own scope (its parent's Node is that var_decl's Init).
	declNode := node
	if !full.Init.IsNull() {
		if kind, _, ok := b.ast.Canonicalize(full.Init); ok && kind == zigsyntax.FullKindContainerDecl {
			declNode = full.Init
			flags |= containerSymbolFlags(b.ast, full.Init)
		}
	}

	name := b.tokenText(full.NameToken)
	sym := b.model.AddSymbol(semmodel.Symbol{
		Name:       name,
		Token:      ids.SomeToken(full.NameToken),
		Decl:       declNode,
		Scope:      scope,
		Visibility: semmodel.VisibilityOf(full.IsPub),
		Flags:      flags,
	})
	b.model.BindSymbol(scope, sym)
	b.attachContainerChild(scope, sym, true /* isConstOrFn */, false)

	if !full.Type.IsNull() {
		b.visitChild(node, full.Type, scope, semmodel.FlagTypeRef)
	}
	if !full.Init.IsNull() {
		b.visitChild(node, full.Init, scope, semmodel.FlagRead)
	}
}

// containerSymbolFlags maps a container decl node's keyword to the
// matching Symbol flag (spec.md §3 "container = struct|enum|union|error").
func containerSymbolFlags(ast *zigsyntax.AST, containerNode ids.NodeID) semmodel.SymbolFlags {
	switch ast.Token(ast.Node(containerNode).MainToken).Tag {
	case zigsyntax.TokenKeywordStruct:
		return semmodel.FlagStruct
	case zigsyntax.TokenKeywordEnum:
		return semmodel.FlagEnum
	case zigsyntax.TokenKeywordUnion:
		return semmodel.FlagUnion
	case zigsyntax.TokenKeywordError:
		return semmodel.FlagError
	}
	return 0
}

func (b *builder) buildFnDecl(node ids.NodeID, scope ids.ScopeID) {
	n := b.ast.Node(node)
	protoID := n.LHSNode()
	bodyID := n.RHSNode()
	_, full, ok := b.ast.Canonicalize(protoID)
	if !ok {
		b.fail(node, "fn_decl lhs is not a canonicalizable fn_proto")
		return
	}
	proto := full.(zigsyntax.FullFnProto)

	flags := semmodel.FlagFn
	if proto.IsExtern {
		flags |= semmodel.FlagExtern
	}
	if proto.IsExport {
		flags |= semmodel.FlagExport
	}
	name := ""
	var tokOpt ids.TokenOptional
	if tok, isSome := proto.NameToken.Get(); isSome {
		name = b.tokenText(tok)
		tokOpt = proto.NameToken
	}
	sym := b.model.AddSymbol(semmodel.Symbol{
		Name:       name,
		Token:      tokOpt,
		Decl:       node,
		Scope:      scope,
		Visibility: semmodel.VisibilityOf(proto.IsPub),
		Flags:      flags,
	})
	b.model.BindSymbol(scope, sym)
	isMethod := len(proto.Params) > 0 && b.firstParamIsContainerSelf(proto)
	b.attachContainerChild(scope, sym, true, isMethod)

	b.model.Links.Parent[protoID] = node
	b.model.Links.Parent[bodyID] = node
	b.model.Links.Scope[protoID] = scope

	sigScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: protoID})
	b.model.AddChildScope(scope, sigScope)
	b.bindParamsForDecl(proto, sigScope, protoID)
	if !proto.ReturnType.IsNull() {
		b.visitChild(protoID, proto.ReturnType, sigScope, semmodel.FlagTypeRef)
	}

	bodyScope := b.model.AddScope(semmodel.Scope{
		Parent: ids.SomeScope(sigScope), Node: bodyID, Flags: semmodel.FlagFunction | semmodel.FlagBlock,
	})
	b.model.AddChildScope(sigScope, bodyScope)
	b.model.Links.Scope[bodyID] = sigScope
	b.buildBlock(bodyID, bodyScope)
}

// bindParamsForDecl binds each parameter of full in sigScope, with Decl
// pointed at the fn_proto node that owns the parameters (spec.md §3 "payload/param
// symbols have decl = the binding control-flow node, not the identifier").
func (b *builder) bindParamsForDecl(full zigsyntax.FullFnProto, sigScope ids.ScopeID, protoID ids.NodeID) {
	for _, param := range full.Params {
		flags := semmodel.FlagVariable | semmodel.FlagConst | semmodel.FlagFnParam
		name := ""
		var tokOpt ids.TokenOptional
		if tok, ok := param.NameToken.Get(); ok {
			name = b.tokenText(tok)
			tokOpt = param.NameToken
		}
		sym := b.model.AddSymbol(semmodel.Symbol{
			Name: name, Token: tokOpt, Decl: protoID, Scope: sigScope, Flags: flags,
		})
		b.model.BindSymbol(sigScope, sym)
		if !param.Type.IsNull() {
			b.visitChild(protoID, param.Type, sigScope, semmodel.FlagTypeRef)
		}
	}
}

// firstParamIsContainerSelf always reports false, so a fn declared inside
// a container is classified as one of the container's exports, never as a
// member, even when its first parameter is typed with the container's own
// name (`self: Point`). This grammar subset has no pointer-type syntax
// (`*Self`).
func (b *builder) firstParamIsContainerSelf(zigsyntax.FullFnProto) bool { return false }

func (b *builder) buildTestDecl(node ids.NodeID, scope ids.ScopeID) {
	n := b.ast.Node(node)
	bodyID := n.RHSNode()
	testScope := b.model.AddScope(semmodel.Scope{
		Parent: ids.SomeScope(scope), Node: node, Flags: semmodel.FlagTest | semmodel.FlagBlock,
	})
	b.model.AddChildScope(scope, testScope)
	b.model.Links.Scope[node] = scope
	b.visitChild(node, bodyID, testScope, semmodel.FlagRead)
}

func (b *builder) buildBlock(node ids.NodeID, scope ids.ScopeID) {
	for _, stmt := range b.ast.ChildNodes(node) {
		b.visitChild(node, stmt, scope, semmodel.FlagRead)
	}
}

func (b *builder) buildIf(node ids.NodeID, full zigsyntax.FullIf, scope ids.ScopeID) {
	b.visitChild(node, full.Cond, scope, semmodel.FlagRead)

	thenScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: full.Then, Flags: semmodel.FlagBlock})
	b.model.AddChildScope(scope, thenScope)
	b.visitChild(node, full.Then, thenScope, semmodel.FlagRead)

	if !full.Else.IsNull() {
		elseScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: full.Else, Flags: semmodel.FlagBlock})
		b.model.AddChildScope(scope, elseScope)
		b.visitChild(node, full.Else, elseScope, semmodel.FlagRead)
	}
}

func (b *builder) buildCatch(node ids.NodeID, scope ids.ScopeID) {
	n := b.ast.Node(node)
	leftID := n.LHSNode()
	bodyID := n.RHSNode()
	b.visitChild(node, leftID, scope, semmodel.FlagRead)

	catchScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: node, Flags: semmodel.FlagCatch | semmodel.FlagBlock})
	b.model.AddChildScope(scope, catchScope)

	if tok, ok := b.ast.CatchPayload(node).Get(); ok {
		name := b.tokenText(tok)
		sym := b.model.AddSymbol(semmodel.Symbol{
			Name: name, Token: ids.SomeToken(tok), Decl: node, Scope: catchScope,
			Flags: semmodel.FlagVariable | semmodel.FlagConst | semmodel.FlagCatchParam,
		})
		b.model.BindSymbol(catchScope, sym)
	}
	b.visitChild(node, bodyID, catchScope, semmodel.FlagRead)
}

func (b *builder) buildCall(node ids.NodeID, full zigsyntax.FullCall, scope ids.ScopeID) {
	b.visitChild(node, full.Callee, scope, semmodel.FlagCall)
	for _, arg := range full.Args {
		b.visitChild(node, arg, scope, semmodel.FlagRead)
	}
}

// buildWhile introduces a block scope for the loop body (spec.md §4.1
// lists while among the scope-introducing node kinds). The loop's
// `|payload|` capture, if any, was already consumed by the parser without
// binding a symbol (zigsyntax.forOf's doc comment explains the same
// simplification for for-loops).
func (b *builder) buildWhile(node ids.NodeID, full zigsyntax.FullWhile, scope ids.ScopeID) {
	b.visitChild(node, full.Cond, scope, semmodel.FlagRead)
	bodyScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: full.Body, Flags: semmodel.FlagBlock})
	b.model.AddChildScope(scope, bodyScope)
	b.visitChild(node, full.Body, bodyScope, semmodel.FlagRead)
}

// buildFor introduces a block scope for the loop body, mirroring buildWhile.
func (b *builder) buildFor(node ids.NodeID, full zigsyntax.FullFor, scope ids.ScopeID) {
	b.visitChild(node, full.Input, scope, semmodel.FlagRead)
	bodyScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: full.Body, Flags: semmodel.FlagBlock})
	b.model.AddChildScope(scope, bodyScope)
	b.visitChild(node, full.Body, bodyScope, semmodel.FlagRead)
}

// buildComptime introduces a comptime-flagged block scope around its body
// (spec.md §4.1 lists comptime among the scope-introducing node kinds).
func (b *builder) buildComptime(node ids.NodeID, n zigsyntax.Node, scope ids.ScopeID) {
	body := n.LHSNode()
	bodyScope := b.model.AddScope(semmodel.Scope{
		Parent: ids.SomeScope(scope), Node: body, Flags: semmodel.FlagScopeComptime | semmodel.FlagBlock,
	})
	b.model.AddChildScope(scope, bodyScope)
	b.visitChild(node, body, bodyScope, semmodel.FlagRead)
}

// buildContainerDecl introduces a container scope (struct/enum/union/
// error_set, spec.md §4.1's container membership rules) and visits each
// member within it, so attachContainerChild classifies every const, fn
// and field declared directly inside as an export or a member.
func (b *builder) buildContainerDecl(node ids.NodeID, full zigsyntax.FullContainerDecl, scope ids.ScopeID) {
	n := b.ast.Node(node)
	var scopeFlag semmodel.ScopeFlags
	switch b.ast.Token(n.MainToken).Tag {
	case zigsyntax.TokenKeywordStruct:
		scopeFlag = semmodel.FlagScopeStruct
	case zigsyntax.TokenKeywordEnum:
		scopeFlag = semmodel.FlagScopeEnum
	case zigsyntax.TokenKeywordUnion:
		scopeFlag = semmodel.FlagScopeUnion
	case zigsyntax.TokenKeywordError:
		scopeFlag = semmodel.FlagScopeError
	}
	containerScope := b.model.AddScope(semmodel.Scope{Parent: ids.SomeScope(scope), Node: node, Flags: scopeFlag})
	b.model.AddChildScope(scope, containerScope)

	for _, m := range full.Members {
		b.model.Links.Parent[m] = node
		if b.ast.Node(m).Tag == zigsyntax.TagErrorValue {
			b.bindErrorValue(m, containerScope)
			continue
		}
		b.visitNode(m, containerScope, semmodel.FlagRead)
	}
}

// buildContainerField binds a struct field as a container member.
func (b *builder) buildContainerField(node ids.NodeID, full zigsyntax.FullContainerField, scope ids.ScopeID) {
	name := b.tokenText(full.NameToken)
	sym := b.model.AddSymbol(semmodel.Symbol{
		Name: name, Token: ids.SomeToken(full.NameToken), Decl: node, Scope: scope,
		Flags: semmodel.FlagVariable | semmodel.FlagMember,
	})
	b.model.BindSymbol(scope, sym)
	b.attachContainerChild(scope, sym, false, true)

	if !full.Type.IsNull() {
		b.visitChild(node, full.Type, scope, semmodel.FlagTypeRef)
	}
	if !full.Value.IsNull() {
		b.visitChild(node, full.Value, scope, semmodel.FlagRead)
	}
}

// bindErrorValue binds one member of an `error{...}` set as a container
// member, the error_set analogue of buildContainerField.
func (b *builder) bindErrorValue(node ids.NodeID, scope ids.ScopeID) {
	n := b.ast.Node(node)
	name := b.tokenText(n.MainToken)
	sym := b.model.AddSymbol(semmodel.Symbol{
		Name: name, Token: ids.SomeToken(n.MainToken), Decl: node, Scope: scope,
		Flags: semmodel.FlagConst | semmodel.FlagError | semmodel.FlagMember,
	})
	b.model.BindSymbol(scope, sym)
	b.model.Links.Scope[node] = scope
	b.attachContainerChild(scope, sym, false, true)
}

// attachContainerChild implements spec.md §4.1's container membership
// rules: a container-scoped const/fn becomes one of the owner's exports,
// a container field becomes one of its members. It is a no-op whenever
// scope is not a container scope (a plain block, function body, etc.).
func (b *builder) attachContainerChild(scope ids.ScopeID, sym ids.SymbolID, declaredConstOrFn, isMember bool) {
	s := b.model.Scope(scope)
	if !s.Flags.Intersects(semmodel.FlagScopeStruct | semmodel.FlagScopeEnum | semmodel.FlagScopeUnion | semmodel.FlagScopeError) {
		return
	}
	owner := b.containerOwnerSymbol(scope)
	if owner == nil {
		return
	}
	if isMember {
		b.model.Symbol(sym).Flags |= semmodel.FlagMember
		owner.Members = append(owner.Members, sym)
		return
	}
	if declaredConstOrFn {
		owner.Exports = append(owner.Exports, sym)
	}
}

// containerOwnerSymbol finds the symbol whose decl node is the node that
// introduced scope, i.e. the container's own symbol in its enclosing
// scope.
func (b *builder) containerOwnerSymbol(scope ids.ScopeID) *semmodel.Symbol {
	s := b.model.Scope(scope)
	parent, ok := s.Parent.Get()
	if !ok {
		return nil
	}
	for _, candidate := range b.model.Scope(parent).Symbols {
		if b.model.Symbol(candidate).Decl == s.Node {
			return b.model.Symbol(candidate)
		}
	}
	return nil
}
