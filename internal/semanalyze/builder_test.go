package semanalyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziglint/ziglint/internal/ids"
	"github.com/ziglint/ziglint/internal/semmodel"
	"github.com/ziglint/ziglint/internal/source"
)

func build(t *testing.T, text string) *Result {
	t.Helper()
	src := source.New("test.zig", []byte(text))
	res, errs, berr := Build(src)
	require.Nil(t, berr, "unexpected build failure: %v", errs)
	require.NotNil(t, res)
	return res
}

func TestBuildEmptySource(t *testing.T) {
	src := source.New("empty.zig", nil)
	res, errs, berr := Build(src)
	assert.Nil(t, res)
	assert.Nil(t, errs)
	assert.Nil(t, berr)
}

func TestBuildTopLevelConsts(t *testing.T) {
	res := build(t, "const x = 1;\nconst y = 2;\npub const z = x + 1;\n")
	m := res.Model

	require.Len(t, m.Symbols, 3)
	assert.Equal(t, "x", m.Symbols[0].Name)
	assert.True(t, m.Symbols[0].Flags.Has(semmodel.FlagConst))
	assert.Equal(t, semmodel.VisibilityPrivate, m.Symbols[0].Visibility)

	assert.Equal(t, "y", m.Symbols[1].Name)
	assert.Equal(t, "z", m.Symbols[2].Name)
	assert.Equal(t, semmodel.VisibilityPublic, m.Symbols[2].Visibility)

	// z's initializer references x; that reference must resolve.
	require.Len(t, m.References, 1)
	sym, ok := m.References[0].Symbol.Get()
	require.True(t, ok)
	assert.Equal(t, m.Symbols[0].ID, sym)
	assert.Contains(t, m.Symbols[0].References, m.References[0].ID)
}

func TestBuildFnDeclCreatesTwoScopes(t *testing.T) {
	res := build(t, "fn foo(a: i32) void {\n  const b = a;\n}\n")
	m := res.Model

	require.Len(t, m.Symbols, 3) // foo, a, b
	fn := m.Symbols[0]
	assert.True(t, fn.Flags.Has(semmodel.FlagFn))

	param := m.Symbols[1]
	assert.Equal(t, "a", param.Name)
	assert.True(t, param.Flags.Has(semmodel.FlagFnParam))
	assert.True(t, param.Flags.Has(semmodel.FlagConst), "fn_param implies const (spec.md §3 invariant)")

	sigScope := m.Scope(param.Scope)
	assert.False(t, sigScope.Flags.Has(semmodel.FlagFunction), "signature scope has no function/block flag")

	require.Len(t, sigScope.Children, 1)
	bodyScope := m.Scope(sigScope.Children[0])
	assert.True(t, bodyScope.Flags.Has(semmodel.FlagFunction))
	assert.True(t, bodyScope.Flags.Has(semmodel.FlagBlock))
}

func TestCatchPayloadBindsSymbol(t *testing.T) {
	res := build(t, "fn foo() !void {\n  bar() catch |e| return e;\n}\n")
	m := res.Model

	var payload *semmodel.Symbol
	for i := range m.Symbols {
		if m.Symbols[i].Flags.Has(semmodel.FlagCatchParam) {
			payload = &m.Symbols[i]
		}
	}
	require.NotNil(t, payload, "expected a catch-payload symbol for `e`")
	assert.Equal(t, "e", payload.Name)

	// the `return e` inside the catch body must resolve to the payload.
	var resolvedToPayload bool
	for _, ref := range m.References {
		if sym, ok := ref.Symbol.Get(); ok && sym == payload.ID {
			resolvedToPayload = true
		}
	}
	assert.True(t, resolvedToPayload)
}

// Semantic builder invariants (spec.md §8).
func TestBuilderInvariants(t *testing.T) {
	res := build(t, "fn foo() !void {\n  const a = 1;\n  bar() catch |e| return e;\n}\n")
	m := res.Model

	for _, s := range m.Symbols {
		require.Less(t, int(s.Scope), len(m.Scopes), "symbol %q's scope must exist", s.Name)
		assert.True(t, terminatesAtRoot(m, s.Scope), "every scope chain for %q terminates at the root scope", s.Name)
	}
	for _, sc := range m.Scopes {
		if parent, ok := sc.Parent.Get(); ok {
			assert.Less(t, uint32(parent), uint32(sc.ID), "a scope's parent id is strictly less than its own")
		}
	}
	for _, r := range m.References {
		if sym, ok := r.Symbol.Get(); ok {
			assert.Contains(t, m.Symbol(sym).References, r.ID)
		}
	}
}

// TestContainerDeclBindsMembersAndExports exercises spec.md §4.1's
// container membership rules end-to-end through a real parse, the
// counterpart to semmodel's TestContainerMembershipDisjoint (which builds
// the same scope/symbol shape by hand).
func TestContainerDeclBindsMembersAndExports(t *testing.T) {
	res := build(t, "const Point = struct {\n  x: i32,\n  const ORIGIN = 1;\n};\n")
	m := res.Model

	require.Len(t, m.Symbols, 3) // Point, x, ORIGIN
	point := m.Symbols[0]
	assert.Equal(t, "Point", point.Name)
	assert.True(t, point.Flags.Has(semmodel.FlagStruct))
	assert.True(t, point.Flags.IsContainer())

	field := m.Symbols[1]
	assert.Equal(t, "x", field.Name)
	assert.True(t, field.Flags.Has(semmodel.FlagMember))

	export := m.Symbols[2]
	assert.Equal(t, "ORIGIN", export.Name)
	assert.True(t, export.Flags.Has(semmodel.FlagConst))

	// Point's Decl must be the container node itself (not the var_decl
	// node) so containerOwnerSymbol can find it from the struct's scope.
	containerScope := m.Scope(field.Scope)
	assert.True(t, containerScope.Flags.Has(semmodel.FlagScopeStruct))
	assert.Equal(t, point.Decl, containerScope.Node)

	assert.Contains(t, point.Members, field.ID)
	assert.Contains(t, point.Exports, export.ID)
	assert.NotContains(t, point.Members, export.ID)
	assert.NotContains(t, point.Exports, field.ID)
}

// TestWhileForComptimeIntroduceBlockScopes exercises spec.md §4.1's
// remaining scope-introducing node kinds (while/for/comptime).
func TestWhileForComptimeIntroduceBlockScopes(t *testing.T) {
	res := build(t, "fn foo() void {\n  while (true) {\n    const a = 1;\n  }\n  comptime {\n    const b = 2;\n  }\n}\n")
	m := res.Model

	var sawWhileBody, sawComptimeBody bool
	for _, s := range m.Scopes {
		if !s.Flags.Has(semmodel.FlagBlock) || s.Flags.Has(semmodel.FlagFunction) {
			continue
		}
		if s.Flags.Has(semmodel.FlagScopeComptime) {
			sawComptimeBody = true
		} else {
			sawWhileBody = true
		}
	}
	assert.True(t, sawWhileBody, "while body should get its own block scope")
	assert.True(t, sawComptimeBody, "comptime body should get its own comptime-flagged block scope")

	// both inner consts must be bound as symbols.
	var names []string
	for _, s := range m.Symbols {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "a")
	assert.Contains(t, names, "b")
}

func terminatesAtRoot(m *semmodel.Model, scope ids.ScopeID) bool {
	cur := scope
	for {
		s := m.Scope(cur)
		parent, ok := s.Parent.Get()
		if !ok {
			return s.Flags.Has(semmodel.FlagTop)
		}
		cur = parent
	}
}
