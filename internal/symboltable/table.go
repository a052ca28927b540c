package symboltable

// Table is an ordered, named binding store. It is used two ways in
// this pass: as a parent-chained locals stack (spec.md §4.5 scope)
// and, with no parent, as an Object/Trait's attribute table or an
// Object/Trait/Block's type-parameter table (spec.md §3: "support name-based lookup for
// attributes").
type Table struct {
	outer   *Table
	order   []string
	entries map[string]Symbol
	absent  Typed // the type substituted for a lookup miss (spec.md: Dynamic)
}

// New creates a root table (no parent). absent is the type every miss
// resolves to — callers pass the shared Dynamic type from typedb.
func New(absent Typed) *Table {
	return &Table{entries: make(map[string]Symbol), absent: absent}
}

// NewChild creates a table chained to outer for Lookup (but not for
// LookupLocal, which never consults the parent chain).
func NewChild(outer *Table) *Table {
	return &Table{entries: make(map[string]Symbol), outer: outer, absent: outer.absent}
}

// Outer returns the parent table, or nil at the root.
func (t *Table) Outer() *Table {
	return t.outer
}

// Define inserts or overwrites a binding, preserving first-seen
// insertion order (spec.md §3: "preserve insertion order").
func (t *Table) Define(name string, typ Typed, mutable bool) Symbol {
	index := len(t.order)
	if prev, exists := t.entries[name]; exists {
		index = prev.Index
	} else {
		t.order = append(t.order, name)
	}
	sym := Symbol{Name: name, Type: typ, Mutable: mutable, Index: index, Defined: true}
	t.entries[name] = sym
	return sym
}

// LookupLocal looks up name in this table only, never consulting the
// parent chain. Used for attribute tables, where a miss must fall
// back to the type's prototype rather than to an enclosing scope.
func (t *Table) LookupLocal(name string) (Symbol, bool) {
	sym, ok := t.entries[name]
	return sym, ok
}

// Lookup walks this table, then its parent chain (spec.md §3:
// "parent-chained lookup for locals"). On a miss everywhere it
// returns the absent-symbol sentinel with a dynamic type.
func (t *Table) Lookup(name string) Symbol {
	for tbl := t; tbl != nil; tbl = tbl.outer {
		if sym, ok := tbl.entries[name]; ok {
			return sym
		}
	}
	return Symbol{Name: name, Type: t.absent, Defined: false}
}

// Has reports whether name resolves anywhere in the chain.
func (t *Table) Has(name string) bool {
	return t.Lookup(name).Defined
}

// Names returns bound names in insertion order (used to enumerate a
// module's globals for a glob import, in declared order).
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len reports the number of distinct bindings in this table alone
// (not the parent chain).
func (t *Table) Len() int {
	return len(t.order)
}

// All returns every binding in this table alone, in insertion order.
func (t *Table) All() []Symbol {
	out := make([]Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.entries[name])
	}
	return out
}
