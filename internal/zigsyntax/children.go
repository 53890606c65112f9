package zigsyntax

import "github.com/ziglint/ziglint/internal/ids"

// ChildNodes returns the direct structural children of id, in source
// order, pushing only real node ids — never tokens or extra_data indices
// (spec.md §4.3 "child enumeration"). Each tag is mapped to how its
// lhs/rhs data words are to be interpreted; this is the table spec.md
// §4.3 calls "a fixed data-kind" per tag.
func (a *AST) ChildNodes(id ids.NodeID) []ids.NodeID {
	n := a.Node(id)
	push := func(ids_ ...ids.NodeID) []ids.NodeID {
		out := make([]ids.NodeID, 0, len(ids_))
		for _, c := range ids_ {
			if !c.IsNull() {
				out = append(out, c)
			}
		}
		return out
	}
	switch n.Tag {
	case TagRoot:
		return append([]ids.NodeID(nil), a.RootDecls...)

	case TagIdentifier, TagNumberLiteral, TagStringLiteral, TagCharLiteral,
		TagEnumLiteral, TagUnreachableLiteral, TagErrorValue:
		return nil // token-only nodes

	case TagFieldAccess, TagAddressOf, TagUnwrapOptional, TagDeref, TagTry, TagReturn:
		return push(n.LHSNode())

	case TagErrorUnion:
		return push(n.LHSNode(), n.RHSNode())

	case TagCall, TagCallComma, TagCallOne, TagCallOneComma:
		full, _ := a.callOf(id)
		out := push(full.Callee)
		out = append(out, full.Args...)
		return out

	case TagFnDecl:
		return push(n.LHSNode(), n.RHSNode())

	case TagFnProto, TagFnProtoMulti, TagFnProtoOne, TagFnProtoSimple:
		full, _ := a.fnProtoOf(id)
		var out []ids.NodeID
		for _, p := range full.Params {
			if !p.Type.IsNull() {
				out = append(out, p.Type)
			}
		}
		if !full.ReturnType.IsNull() {
			out = append(out, full.ReturnType)
		}
		return out

	case TagSimpleVarDecl, TagAlignedVarDecl, TagLocalVarDecl, TagGlobalVarDecl:
		return push(n.LHSNode(), n.RHSNode())

	case TagBlockTwo, TagBlockTwoSemicolon:
		return push(n.LHSNode(), n.RHSNode())

	case TagBlock, TagBlockSemicolon:
		out := make([]ids.NodeID, 0, n.RHS-n.LHS)
		for i := n.LHS; i < n.RHS; i++ {
			out = append(out, ids.NodeID(a.ExtraData[i]))
		}
		return out

	case TagIfSimple, TagIf:
		full, _ := a.ifOf(id)
		return push(full.Cond, full.Then, full.Else)

	case TagCatch:
		return push(n.LHSNode(), n.RHSNode())

	case TagTestDecl:
		return push(n.RHSNode())

	case TagAdd, TagSub, TagMul, TagDiv, TagEqualEqual, TagBangEqual, TagAssign:
		return push(n.LHSNode(), n.RHSNode())

	case TagWhileSimple, TagWhile:
		full, _ := a.whileOf(id)
		return push(full.Cond, full.Body)

	case TagForSimple, TagFor:
		full, _ := a.forOf(id)
		return push(full.Input, full.Body)

	case TagComptime:
		return push(n.LHSNode())

	case TagContainerDeclTrailing, TagContainerDecl, TagTaggedUnion, TagErrorSetDecl:
		full, _ := a.containerDeclOf(id)
		return append([]ids.NodeID(nil), full.Members...)

	case TagContainerField, TagContainerFieldInit, TagContainerFieldAlign:
		full, _ := a.containerFieldOf(id)
		return push(full.Type, full.Value)

	default:
		return nil
	}
}
