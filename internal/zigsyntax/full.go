package zigsyntax

import "github.com/ziglint/ziglint/internal/ids"

// This file implements the "full node" layer spec.md §3/§4.3 describes:
// multiple raw tags canonicalize into one uniform shape so that a rule or
// the walker doesn't have to special-case call/call_one/call_one_comma
// separately, for instance. Each Full* type holds only indices, never
// owning node data (spec.md §9).
//
// Canonicalize builds only the var-decl, fn-proto, if, call, while, for,
// container-decl and container-field shapes; the other Full* types below
// describe the shape of their tags, but nothing in this package produces
// them.

// FullVarDecl canonicalizes simple_var_decl, aligned_var_decl,
// local_var_decl and global_var_decl.
type FullVarDecl struct {
	Decl      ids.NodeID
	NameToken ids.TokenID
	IsPub     bool
	IsConst   bool
	Type      ids.NodeID // NullNode if no type annotation
	Init      ids.NodeID // NullNode if no initializer (extern decls)
}

// FullFnParam is one parameter of a FullFnProto. Per spec.md §4.3 the
// parser never creates a per-parameter node; the walker synthesizes
// visits over this slice instead.
type FullFnParam struct {
	NameToken ids.TokenOptional
	Type      ids.NodeID
}

// FullFnProto canonicalizes fn_proto, fn_proto_multi, fn_proto_one and
// fn_proto_simple.
type FullFnProto struct {
	Proto      ids.NodeID
	NameToken  ids.TokenOptional
	IsPub      bool
	IsExtern   bool
	IsExport   bool
	Params     []FullFnParam
	ReturnType ids.NodeID
	IsErrorUnionReturn bool // true when ReturnType is an error_union node
}

// FullIf canonicalizes if_simple and if.
type FullIf struct {
	Node ids.NodeID
	Cond ids.NodeID
	Then ids.NodeID
	Else ids.NodeID // NullNode if absent
}

// FullCall canonicalizes call, call_comma, call_one, call_one_comma.
type FullCall struct {
	Node   ids.NodeID
	Callee ids.NodeID
	Args   []ids.NodeID
}

// FullContainerField canonicalizes container_field and
// container_field_init; containerFieldOf does not handle
// container_field_align.
type FullContainerField struct {
	NameToken ids.TokenID
	Type      ids.NodeID
	Value     ids.NodeID // NullNode if no default value
}

// FullSwitchCase canonicalizes switch_case, switch_case_one and
// switch_case_inline.
type FullSwitchCase struct {
	Node   ids.NodeID
	Values []ids.NodeID // empty means the "else" arm
	Target ids.NodeID
}

// FullContainerDecl canonicalizes container_decl* and tagged_union*.
type FullContainerDecl struct {
	Node    ids.NodeID
	Members []ids.NodeID
}

// FullSlice canonicalizes slice, slice_open and slice_sentinel.
type FullSlice struct {
	Node     ids.NodeID
	Sliced   ids.NodeID
	Start    ids.NodeID
	End      ids.NodeID // NullNode for an open-ended slice
	Sentinel ids.NodeID // NullNode if absent
}

// FullPtrType canonicalizes ptr_type, ptr_type_aligned, ptr_type_sentinel
// and ptr_type_bit_range.
type FullPtrType struct {
	Node  ids.NodeID
	Child ids.NodeID
}

// FullFor canonicalizes for and for_simple.
type FullFor struct {
	Node  ids.NodeID
	Input ids.NodeID
	Body  ids.NodeID
}

// FullWhile canonicalizes while and while_simple.
type FullWhile struct {
	Node ids.NodeID
	Cond ids.NodeID
	Body ids.NodeID
}

// FullAssignDestructure describes a `a, b = expr` destructuring assignment.
type FullAssignDestructure struct {
	Node    ids.NodeID
	Targets []ids.NodeID
	Value   ids.NodeID
}

// FullStructInit canonicalizes struct_init and struct_init_one.
type FullStructInit struct {
	Node   ids.NodeID
	Type   ids.NodeID // NullNode for an anonymous `.{...}` literal
	Fields []ids.NodeID
}

// FullArrayInit canonicalizes array_init and array_init_one.
type FullArrayInit struct {
	Node     ids.NodeID
	Type     ids.NodeID
	Elements []ids.NodeID
}

// FullArrayType canonicalizes array_type and array_type_sentinel.
type FullArrayType struct {
	Node     ids.NodeID
	Len      ids.NodeID
	Elem     ids.NodeID
	Sentinel ids.NodeID
}

// FullAsm is a placeholder canonical shape for inline asm blocks; this
// stand-in parser never produces one (inline assembly is out of scope for
// the representative rule set in spec.md §8).
type FullAsm struct {
	Node ids.NodeID
}

// varDeclOf returns the FullVarDecl view of id, if its tag canonicalizes
// to one.
func (a *AST) varDeclOf(id ids.NodeID) (FullVarDecl, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagSimpleVarDecl, TagAlignedVarDecl, TagLocalVarDecl, TagGlobalVarDecl:
	default:
		return FullVarDecl{}, false
	}
	isPub := a.precededByKeyword(n.MainToken, TokenKeywordPub)
	isConst := a.Token(n.MainToken).Tag == TokenKeywordConst
	return FullVarDecl{
		Decl:      id,
		NameToken: n.MainToken + 1,
		IsPub:     isPub,
		IsConst:   isConst,
		Type:      n.LHSNode(),
		Init:      n.RHSNode(),
	}, true
}

// fnProtoOf returns the FullFnProto view of id.
func (a *AST) fnProtoOf(id ids.NodeID) (FullFnProto, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagFnProto, TagFnProtoMulti, TagFnProtoOne, TagFnProtoSimple:
	default:
		return FullFnProto{}, false
	}
	extra := n.LHS
	paramsStart := a.ExtraData[extra]
	paramsCount := a.ExtraData[extra+1]
	retType := ids.NodeID(a.ExtraData[extra+2])
	params := make([]FullFnParam, 0, paramsCount)
	for i := uint32(0); i < paramsCount; i++ {
		p := a.Params[paramsStart+i]
		params = append(params, FullFnParam{NameToken: p.NameToken, Type: p.Type})
	}
	isPub := a.precededByKeyword(n.MainToken, TokenKeywordPub)
	isExtern := a.precededByKeyword(n.MainToken, TokenKeywordExtern)
	isExport := a.precededByKeyword(n.MainToken, TokenKeywordExport)
	var nameTok ids.TokenOptional
	if a.Token(n.MainToken+1).Tag == TokenIdentifier {
		nameTok = ids.SomeToken(n.MainToken + 1)
	}
	errUnion := retType != ids.NullNode && a.Node(retType).Tag == TagErrorUnion
	return FullFnProto{
		Proto:              id,
		NameToken:          nameTok,
		IsPub:              isPub,
		IsExtern:           isExtern,
		IsExport:           isExport,
		Params:             params,
		ReturnType:         retType,
		IsErrorUnionReturn: errUnion,
	}, true
}

// precededByKeyword reports whether the token immediately before tok has
// the given tag; used to recover "pub"/"extern"/"export" modifiers, which
// (like in Zig's own Ast) are not stored as a bit on the node itself.
func (a *AST) precededByKeyword(tok ids.TokenID, tag TokenTag) bool {
	if tok == 0 {
		return false
	}
	return a.Token(tok - 1).Tag == tag
}

// whileOf returns the FullWhile view of id; it canonicalizes while and
// while_simple.
func (a *AST) whileOf(id ids.NodeID) (FullWhile, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagWhileSimple, TagWhile:
		return FullWhile{Node: id, Cond: n.LHSNode(), Body: n.RHSNode()}, true
	}
	return FullWhile{}, false
}

// forOf returns the FullFor view of id; it canonicalizes for and
// for_simple. The loop payload (`|item|`) is parsed but not retained, the
// same scope-only simplification buildFnDecl's firstParamIsContainerSelf
// documents for method-self detection.
func (a *AST) forOf(id ids.NodeID) (FullFor, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagForSimple, TagFor:
		return FullFor{Node: id, Input: n.LHSNode(), Body: n.RHSNode()}, true
	}
	return FullFor{}, false
}

// containerDeclOf returns the FullContainerDecl view of id: the struct,
// enum, union and error_set forms all share the "extra_data member list"
// shape, distinguished by the container keyword at MainToken.
func (a *AST) containerDeclOf(id ids.NodeID) (FullContainerDecl, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagContainerDeclTrailing, TagContainerDecl, TagTaggedUnion, TagErrorSetDecl:
	default:
		return FullContainerDecl{}, false
	}
	extra := n.LHS
	count := a.ExtraData[extra]
	members := make([]ids.NodeID, 0, count)
	for i := uint32(0); i < count; i++ {
		members = append(members, ids.NodeID(a.ExtraData[extra+1+i]))
	}
	return FullContainerDecl{Node: id, Members: members}, true
}

// containerFieldOf returns the FullContainerField view of id.
func (a *AST) containerFieldOf(id ids.NodeID) (FullContainerField, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagContainerField:
		return FullContainerField{NameToken: n.MainToken, Type: n.LHSNode(), Value: ids.NullNode}, true
	case TagContainerFieldInit:
		return FullContainerField{NameToken: n.MainToken, Type: n.LHSNode(), Value: n.RHSNode()}, true
	}
	return FullContainerField{}, false
}

func (a *AST) ifOf(id ids.NodeID) (FullIf, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagIfSimple:
		return FullIf{Node: id, Cond: n.LHSNode(), Then: n.RHSNode(), Else: ids.NullNode}, true
	case TagIf:
		elseStart := n.RHS
		return FullIf{
			Node: id,
			Cond: n.LHSNode(),
			Then: ids.NodeID(a.ExtraData[elseStart]),
			Else: ids.NodeID(a.ExtraData[elseStart+1]),
		}, true
	}
	return FullIf{}, false
}

// CatchPayload recovers a catch expression's optional `|e|` payload token,
// the same "derive from adjacent tokens, not a data word" trick
// precededByKeyword uses: a catch's main_token is the `catch` keyword
// itself, and when a payload is present the lexer has necessarily emitted
// `| ident |` immediately after it. catch is a plain tag in the visitor
// contract (spec.md §4.2 lists no FullCatch kind), so this lives outside
// the Full* canonicalization table.
func (a *AST) CatchPayload(id ids.NodeID) ids.TokenOptional {
	n := a.Node(id)
	if n.Tag != TagCatch {
		return ids.NoToken
	}
	if a.Token(n.MainToken+1).Tag != TokenPipe {
		return ids.NoToken
	}
	return ids.SomeToken(n.MainToken + 2)
}

func (a *AST) callOf(id ids.NodeID) (FullCall, bool) {
	n := a.Node(id)
	switch n.Tag {
	case TagCallOne, TagCallOneComma:
		var args []ids.NodeID
		if n.RHS != 0 {
			args = []ids.NodeID{n.RHSNode()}
		}
		return FullCall{Node: id, Callee: n.LHSNode(), Args: args}, true
	case TagCall, TagCallComma:
		extra := n.RHS
		count := a.ExtraData[extra]
		args := make([]ids.NodeID, 0, count)
		for i := uint32(0); i < count; i++ {
			args = append(args, ids.NodeID(a.ExtraData[extra+1+i]))
		}
		return FullCall{Node: id, Callee: n.LHSNode(), Args: args}, true
	}
	return FullCall{}, false
}

// FullKind identifies which Full* shape (if any) a node canonicalizes to,
// for the two-level dispatch spec.md §9 describes: (1) canonical kind, (2)
// raw tag when no kind applies.
type FullKind uint8

const (
	FullNone FullKind = iota
	FullKindVarDecl
	FullKindFnProto
	FullKindIf
	FullKindCall
	FullKindAssignDestructure
	FullKindWhile
	FullKindFor
	FullKindContainerField
	FullKindStructInit
	FullKindArrayInit
	FullKindArrayType
	FullKindPtrType
	FullKindSlice
	FullKindContainerDecl
	FullKindSwitchCase
	FullKindAsm
	FullKindFnParam
)

// Canonicalize returns the FullKind of id and the canonical value itself
// (as `any`, one of the Full* structs above), or (FullNone, nil, false) if
// id's tag has no canonical shape and only the per-tag visitor applies.
func (a *AST) Canonicalize(id ids.NodeID) (FullKind, any, bool) {
	if v, ok := a.varDeclOf(id); ok {
		return FullKindVarDecl, v, true
	}
	if v, ok := a.fnProtoOf(id); ok {
		return FullKindFnProto, v, true
	}
	if v, ok := a.ifOf(id); ok {
		return FullKindIf, v, true
	}
	if v, ok := a.callOf(id); ok {
		return FullKindCall, v, true
	}
	if v, ok := a.whileOf(id); ok {
		return FullKindWhile, v, true
	}
	if v, ok := a.forOf(id); ok {
		return FullKindFor, v, true
	}
	if v, ok := a.containerDeclOf(id); ok {
		return FullKindContainerDecl, v, true
	}
	if v, ok := a.containerFieldOf(id); ok {
		return FullKindContainerField, v, true
	}
	return FullNone, nil, false
}
