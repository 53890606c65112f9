// Package ids provides the newtype integer identifiers shared by every
// layer of the analysis engine: AST nodes and tokens (produced by
// internal/zigsyntax), and symbols, scopes and references (produced by
// internal/semanalyze into internal/semmodel).
//
// Every domain is a plain uint32. NodeID marks "absent" with the reserved
// NullNode sentinel; tokens, symbols and scopes have an Optional wrapper
// with an explicit presence flag, so call sites have to spell out the
// unwrap instead of silently treating 0 as a valid id.
package ids

import "fmt"

// NodeID addresses one node in a parsed AST. NullNode is the sentinel
// for "no child" (e.g. an if-statement with no else branch).
type NodeID uint32

// NullNode is the sentinel reserved for "absent child node" (spec.md §3).
const NullNode NodeID = 0

// RootNode is the id of the synthetic file-level root node.
const RootNode NodeID = 1

// IsNull reports whether n is the null-node sentinel.
func (n NodeID) IsNull() bool { return n == NullNode }

func (n NodeID) String() string { return fmt.Sprintf("Node(%d)", uint32(n)) }

// TokenID addresses one token in the re-tokenized token list.
type TokenID uint32

func (t TokenID) String() string { return fmt.Sprintf("Token(%d)", uint32(t)) }

// TokenOptional is an optional TokenID; the zero value means "none".
type TokenOptional struct {
	id    TokenID
	valid bool
}

// SomeToken wraps a present token id.
func SomeToken(t TokenID) TokenOptional { return TokenOptional{id: t, valid: true} }

// NoToken is the absent TokenOptional.
var NoToken = TokenOptional{}

// IsSome reports whether a token id is present.
func (o TokenOptional) IsSome() bool { return o.valid }

// Unwrap returns the wrapped token id; it panics if the optional is empty.
// Unwrap is for call sites that have already checked IsSome.
func (o TokenOptional) Unwrap() TokenID {
	if !o.valid {
		panic("ids: Unwrap called on empty TokenOptional")
	}
	return o.id
}

// Get returns the wrapped id and whether it was present, for the
// comma-ok idiom.
func (o TokenOptional) Get() (TokenID, bool) { return o.id, o.valid }

// SymbolID uniquely identifies a symbol within one file's semantic model;
// it equals the symbol's insertion index (spec.md §3 Symbol.id).
type SymbolID uint32

func (s SymbolID) String() string { return fmt.Sprintf("Symbol(%d)", uint32(s)) }

// SymbolOptional is an optional SymbolID, used by Reference.symbol which
// is None when a reference did not resolve (spec.md §3 Reference).
type SymbolOptional struct {
	id    SymbolID
	valid bool
}

// SomeSymbol wraps a resolved symbol id.
func SomeSymbol(s SymbolID) SymbolOptional { return SymbolOptional{id: s, valid: true} }

// NoSymbol is the unresolved SymbolOptional.
var NoSymbol = SymbolOptional{}

func (o SymbolOptional) IsSome() bool { return o.valid }

func (o SymbolOptional) Unwrap() SymbolID {
	if !o.valid {
		panic("ids: Unwrap called on empty SymbolOptional")
	}
	return o.id
}

func (o SymbolOptional) Get() (SymbolID, bool) { return o.id, o.valid }

// ScopeID uniquely identifies a scope within one file's scope tree.
type ScopeID uint32

func (s ScopeID) String() string { return fmt.Sprintf("Scope(%d)", uint32(s)) }

// ScopeOptional is an optional ScopeID; only the root scope has none
// (spec.md §3 Scope.parent).
type ScopeOptional struct {
	id    ScopeID
	valid bool
}

// SomeScope wraps a present scope id.
func SomeScope(s ScopeID) ScopeOptional { return ScopeOptional{id: s, valid: true} }

// NoScope is the absent ScopeOptional, used only for the root scope's parent.
var NoScope = ScopeOptional{}

func (o ScopeOptional) IsSome() bool { return o.valid }

func (o ScopeOptional) Unwrap() ScopeID {
	if !o.valid {
		panic("ids: Unwrap called on empty ScopeOptional")
	}
	return o.id
}

func (o ScopeOptional) Get() (ScopeID, bool) { return o.id, o.valid }

// ReferenceID uniquely identifies a reference (identifier use site) within
// one file's semantic model.
type ReferenceID uint32

func (r ReferenceID) String() string { return fmt.Sprintf("Reference(%d)", uint32(r)) }
