package semmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ziglint/ziglint/internal/ids"
)

// TestContainerMembershipDisjoint exercises the invariant spec.md §8
// requires of container membership ("member and export sets of a
// container are disjoint and their union is a subset of the container's
// declared children") directly against a hand-built scope/symbol shape,
// in isolation from parsing and scope-building. See
// internal/semanalyze's TestContainerDeclBindsMembersAndExports for the
// same invariant exercised end-to-end through a real parse.
func TestContainerMembershipDisjoint(t *testing.T) {
	m := New(0)
	root := m.AddScope(Scope{Flags: FlagTop})

	containerSym := m.AddSymbol(Symbol{Name: "Point", Scope: root, Decl: 42, Flags: FlagStruct})
	m.BindSymbol(root, containerSym)

	containerScope := m.AddScope(Scope{Parent: ids.SomeScope(root), Node: 42, Flags: FlagScopeStruct})
	m.AddChildScope(root, containerScope)

	fieldSym := m.AddSymbol(Symbol{Name: "x", Scope: containerScope, Flags: FlagMember})
	m.BindSymbol(containerScope, fieldSym)
	m.Symbol(containerSym).Members = append(m.Symbol(containerSym).Members, fieldSym)

	exportSym := m.AddSymbol(Symbol{Name: "ORIGIN", Scope: containerScope, Flags: FlagConst})
	m.BindSymbol(containerScope, exportSym)
	m.Symbol(containerSym).Exports = append(m.Symbol(containerSym).Exports, exportSym)

	owner := m.Symbol(containerSym)
	memberSet := map[ids.SymbolID]bool{}
	for _, id := range owner.Members {
		memberSet[id] = true
	}
	for _, id := range owner.Exports {
		assert.False(t, memberSet[id], "export set must be disjoint from member set")
	}

	declared := map[ids.SymbolID]bool{fieldSym: true, exportSym: true}
	for _, id := range owner.Members {
		assert.True(t, declared[id])
	}
	for _, id := range owner.Exports {
		assert.True(t, declared[id])
	}
}

func TestSymbolFlagsMergeAndIntersect(t *testing.T) {
	f := FlagConst.Merge(FlagFnParam)
	assert.True(t, f.Has(FlagConst))
	assert.True(t, f.Has(FlagFnParam))
	assert.False(t, f.IsContainer())
	assert.True(t, (FlagStruct | FlagMember).IsContainer())
}
