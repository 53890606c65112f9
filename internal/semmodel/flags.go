package semmodel

// SymbolFlags is a packed 16-bit bitset (spec.md §9 "Bitset enums": "a
// newtype over u16 with constants for each flag, a merge operation, an
// intersects predicate, and a named container subset").
type SymbolFlags uint16

const (
	FlagVariable SymbolFlags = 1 << iota
	FlagPayload
	FlagComptime
	FlagExtern
	FlagExport
	FlagConst
	FlagMember
	FlagFn
	FlagFnParam
	FlagCatchParam
	FlagError
	FlagStruct
	FlagEnum
	FlagUnion
)

// ContainerFlags is the aggregate "container = struct|enum|union|error"
// subset spec.md §3 names.
const ContainerFlags = FlagStruct | FlagEnum | FlagUnion | FlagError

func (f SymbolFlags) Merge(other SymbolFlags) SymbolFlags { return f | other }
func (f SymbolFlags) Intersects(other SymbolFlags) bool   { return f&other != 0 }
func (f SymbolFlags) Has(other SymbolFlags) bool          { return f&other == other }

// IsContainer reports whether f carries any of the struct/enum/union/error
// flags.
func (f SymbolFlags) IsContainer() bool { return f.Intersects(ContainerFlags) }

// Visibility reflects the "pub" keyword only; convention-based visibility
// is not encoded (spec.md §3 Symbol.visibility).
type Visibility uint8

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

func VisibilityOf(isPub bool) Visibility {
	if isPub {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// ScopeFlags is the packed bitset for Scope.flags (spec.md §3).
type ScopeFlags uint16

const (
	FlagTop ScopeFlags = 1 << iota
	FlagFunction
	FlagScopeStruct
	FlagScopeEnum
	FlagScopeUnion
	FlagScopeError
	FlagBlock
	FlagScopeComptime
	FlagCatch
	FlagTest
)

func (f ScopeFlags) Merge(other ScopeFlags) ScopeFlags { return f | other }
func (f ScopeFlags) Intersects(other ScopeFlags) bool  { return f&other != 0 }
func (f ScopeFlags) Has(other ScopeFlags) bool         { return f&other == other }

// ReferenceFlags distinguishes how an identifier/field-access node uses
// its resolved (or unresolved) symbol.
type ReferenceFlags uint8

const (
	FlagRead ReferenceFlags = 1 << iota
	FlagWrite
	FlagTypeRef
	FlagCall
)

func (f ReferenceFlags) Merge(other ReferenceFlags) ReferenceFlags { return f | other }
func (f ReferenceFlags) Intersects(other ReferenceFlags) bool     { return f&other != 0 }
