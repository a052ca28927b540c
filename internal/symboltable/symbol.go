// Package symboltable implements the symbol-table component of
// spec.md §3: an ordered, named binding store with mutability and a
// parent chain, used both for parent-chained local lookup and for
// name-based attribute lookup on a type (Object/Trait).
package symboltable

// Typed is the minimal capability a stored type must provide. It is
// declared here, not imported from internal/types, so that the types
// package can depend on symboltable (to back attribute/argument
// tables) without a import cycle; any internal/types.Type value
// already satisfies this interface structurally.
type Typed interface {
	String() string
}

// Symbol is one binding recorded in a Table (spec.md §3).
type Symbol struct {
	Name    string
	Type    Typed
	Mutable bool
	Index   int // position of this binding within its defining table
	Defined bool
}

// Found reports whether this symbol resolved to an actual binding, as
// opposed to the absent-symbol sentinel Table.Lookup returns on a
// miss (spec.md §3: "Lookup returns a sentinel 'absent' symbol with a
// dynamic type so callers can chain safely").
func (s Symbol) Found() bool {
	return s.Defined
}
