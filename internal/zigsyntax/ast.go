package zigsyntax

import "github.com/ziglint/ziglint/internal/ids"

// Tag is the closed enum of AST node shapes named by spec.md §3. This
// stand-in parser only ever constructs the subset built in parser.go; the
// remaining tags are declared so the enum covers the whole contract, and
// ChildNodes (children.go) returns no children for a tag it has no case
// for.
type Tag uint8

const (
	TagRoot Tag = iota
	TagIdentifier
	TagNumberLiteral
	TagStringLiteral
	TagCharLiteral
	TagEnumLiteral
	TagUnreachableLiteral
	TagErrorValue

	TagCall
	TagCallComma
	TagCallOne
	TagCallOneComma
	TagFieldAccess
	TagAddressOf
	TagUnwrapOptional
	TagDeref
	TagErrorUnion

	TagFnDecl
	TagFnProto
	TagFnProtoMulti
	TagFnProtoOne
	TagFnProtoSimple

	TagSimpleVarDecl
	TagAlignedVarDecl
	TagLocalVarDecl
	TagGlobalVarDecl

	TagBlock
	TagBlockTwo
	TagBlockSemicolon
	TagBlockTwoSemicolon

	TagIf
	TagIfSimple
	TagWhile
	TagWhileSimple
	TagFor
	TagForSimple

	TagSwitch
	TagSwitchComma
	TagSwitchCase
	TagSwitchCaseOne
	TagSwitchCaseInline

	TagBuiltinCallTwo
	TagBuiltinCallTwoComma
	TagBuiltinCall
	TagBuiltinCallComma

	TagContainerDecl
	TagContainerDeclTrailing
	TagTaggedUnion
	TagContainerField
	TagContainerFieldInit
	TagContainerFieldAlign

	TagStructInit
	TagStructInitOne
	TagArrayInit
	TagArrayInitOne
	TagArrayType
	TagArrayTypeSentinel
	TagPtrType
	TagPtrTypeAligned
	TagPtrTypeSentinel
	TagPtrTypeBitRange
	TagSlice
	TagSliceOpen
	TagSliceSentinel

	TagCatch
	TagTry
	TagReturn
	TagDefer
	TagErrdefer
	TagBreak
	TagContinue
	TagErrorSetDecl
	TagTestDecl

	TagAdd
	TagSub
	TagMul
	TagDiv
	TagAssign
	TagAssignDestructure
	TagEqualEqual
	TagBangEqual

	TagComptime
)

// Node is one entry of the AST, with the lhs/rhs "data words" spec.md §3
// describes, whose meaning is fixed per Tag (see ChildNodes in children.go
// and the full-node builders in full.go).
type Node struct {
	Tag       Tag
	MainToken ids.TokenID
	LHS       uint32
	RHS       uint32
}

// LHSNode and RHSNode reinterpret a node's lhs/rhs data words as node ids;
// meaningful only for tags whose data-kind (see ChildNodes) says so.
func (n Node) LHSNode() ids.NodeID { return ids.NodeID(n.LHS) }
func (n Node) RHSNode() ids.NodeID { return ids.NodeID(n.RHS) }

// ParamData describes one function parameter. Per spec.md §4.3, the
// parser never creates a per-parameter AST node; FullFnProto.Params is
// built by slicing this pool.
type ParamData struct {
	NameToken ids.TokenOptional
	Type      ids.NodeID // NullNode for anytype/variadic params (not produced here)
}

// AST is the parse artifact spec.md §3 calls "Parse artifact": the node
// array, the independent token list, the comment list, the extra_data
// integer pool for composite/subrange payloads, and the out-of-band
// parameter pool (see ParamData).
type AST struct {
	Nodes     []Node
	Tokens    []Token
	Comments  []Comment
	ExtraData []uint32
	Params    []ParamData

	// RootDecls are the node ids of top-level declarations, in source
	// order; Root (node 1) is their synthetic parent.
	RootDecls []ids.NodeID
}

// AddNode appends a node and returns its id.
func (a *AST) AddNode(n Node) ids.NodeID {
	a.Nodes = append(a.Nodes, n)
	return ids.NodeID(len(a.Nodes) - 1)
}

// Node returns the node at id.
func (a *AST) Node(id ids.NodeID) Node { return a.Nodes[id] }

// Token returns the token at id.
func (a *AST) Token(id ids.TokenID) Token { return a.Tokens[id] }

// TokenSlice returns the source bytes of token id, given the full source
// buffer it was lexed from.
func (a *AST) TokenSlice(src []byte, id ids.TokenID) string {
	t := a.Tokens[id]
	return string(src[t.Start:t.End])
}

// addExtra appends words to the extra_data pool and returns the start
// index, the standard "subrange via extra_data[lhs..rhs]" encoding spec.md
// §4.3 describes for variadic payloads (statement lists, call argument
// lists, parameter ranges).
func (a *AST) addExtra(words ...uint32) uint32 {
	start := uint32(len(a.ExtraData))
	a.ExtraData = append(a.ExtraData, words...)
	return start
}
