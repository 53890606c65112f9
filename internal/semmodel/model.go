// Package semmodel is the semantic data model spec.md §3 describes:
// symbol table, scope tree, reference list, and node-to-scope /
// node-to-parent links. It holds only data; internal/semanalyze is the
// single-pass builder that populates it from an internal/zigsyntax AST.
package semmodel

import "github.com/ziglint/ziglint/internal/ids"

// Symbol is a declared binding (spec.md §3 Symbol). Name is the binding's
// identifier text, copied out of the source buffer, or empty when the
// binding has no name token. internal/semanalyze never sets DebugName.
type Symbol struct {
	ID         ids.SymbolID
	Name       string
	DebugName  string
	Token      ids.TokenOptional
	Decl       ids.NodeID
	Scope      ids.ScopeID
	Visibility Visibility
	Flags      SymbolFlags
	References []ids.ReferenceID
	Members    []ids.SymbolID
	Exports    []ids.SymbolID
}

// Scope is a lexical region (spec.md §3 Scope). A function declaration
// produces two: an outer signature scope and an inner body scope: see
// internal/semanalyze's buildFnDecl.
type Scope struct {
	ID       ids.ScopeID
	Parent   ids.ScopeOptional
	Node     ids.NodeID
	Flags    ScopeFlags
	Children []ids.ScopeID
	Symbols  []ids.SymbolID
}

// Reference is an identifier use site (spec.md §3 Reference).
type Reference struct {
	ID     ids.ReferenceID
	Node   ids.NodeID
	Scope  ids.ScopeID
	Symbol ids.SymbolOptional
	Flags  ReferenceFlags
}

// NodeLinks holds the two parallel arrays spec.md §3 calls "Node links":
// the enclosing scope and the parent node of every AST node, indexed by
// node id.
type NodeLinks struct {
	Scope  []ids.ScopeID
	Parent []ids.NodeID
}

// Model is the complete semantic model for one file: append-only while
// internal/semanalyze builds it, read-only afterwards (spec.md §3
// Invariants).
type Model struct {
	Symbols    []Symbol
	Scopes     []Scope
	References []Reference
	// Unresolved holds reference ids whose symbol never resolved; present
	// as a slot for lazy or cross-file resolution, not consumed by the
	// core engine (spec.md §3).
	Unresolved []ids.ReferenceID
	Links      NodeLinks
}

// New allocates an empty model with node-link arrays pre-sized to
// nodeCount, mirroring spec.md §4.1 "Pre-allocates arrays sized to AST
// node count".
func New(nodeCount int) *Model {
	links := NodeLinks{
		Scope:  make([]ids.ScopeID, nodeCount),
		Parent: make([]ids.NodeID, nodeCount),
	}
	for i := range links.Parent {
		links.Parent[i] = ids.NullNode
	}
	return &Model{Links: links}
}

// AddSymbol appends a symbol and returns its id, which equals its
// insertion index (spec.md §3 Symbol.id).
func (m *Model) AddSymbol(s Symbol) ids.SymbolID {
	id := ids.SymbolID(len(m.Symbols))
	s.ID = id
	m.Symbols = append(m.Symbols, s)
	return id
}

// AddScope appends a scope and returns its id.
func (m *Model) AddScope(s Scope) ids.ScopeID {
	id := ids.ScopeID(len(m.Scopes))
	s.ID = id
	m.Scopes = append(m.Scopes, s)
	return id
}

// AddReference appends a reference and returns its id, wiring it onto
// its resolved symbol's References list if resolved.
func (m *Model) AddReference(r Reference) ids.ReferenceID {
	id := ids.ReferenceID(len(m.References))
	r.ID = id
	m.References = append(m.References, r)
	if sym, ok := r.Symbol.Get(); ok {
		m.Symbols[sym].References = append(m.Symbols[sym].References, id)
	} else {
		m.Unresolved = append(m.Unresolved, id)
	}
	return id
}

func (m *Model) Symbol(id ids.SymbolID) *Symbol       { return &m.Symbols[id] }
func (m *Model) Scope(id ids.ScopeID) *Scope           { return &m.Scopes[id] }
func (m *Model) Reference(id ids.ReferenceID) *Reference { return &m.References[id] }

// AddChildScope appends child to parent's child list.
func (m *Model) AddChildScope(parent, child ids.ScopeID) {
	m.Scopes[parent].Children = append(m.Scopes[parent].Children, child)
}

// BindSymbol appends sym to scope's directly-bound symbol list.
func (m *Model) BindSymbol(scope ids.ScopeID, sym ids.SymbolID) {
	m.Scopes[scope].Symbols = append(m.Scopes[scope].Symbols, sym)
}
