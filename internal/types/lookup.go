package types

import "github.com/funvibe/typecheck/internal/symboltable"

// LookupAttribute walks the attribute table then the prototype chain
// (spec.md §4.1 "Method lookup"); the same walk serves plain
// attributes since methods are just attributes of Block type. Returns
// the absent-symbol sentinel (Found() == false) on a miss.
func LookupAttribute(t Type, name string) symboltable.Symbol {
	switch cur := t.(type) {
	case *Object:
		return lookupOn(cur.Attributes, cur.Prototype(), name)
	case *Trait:
		if sym, ok := cur.Attributes.LookupLocal(name); ok {
			return sym
		}
		if block, ok := cur.RequiredMethods[name]; ok {
			return symboltable.Symbol{Name: name, Type: block, Defined: true}
		}
		return lookupProtoOnly(cur.Prototype(), name)
	default:
		return symboltable.Symbol{Name: name, Defined: false}
	}
}

func lookupOn(table *symboltable.Table, proto Type, name string) symboltable.Symbol {
	if table != nil {
		if sym, ok := table.LookupLocal(name); ok {
			return sym
		}
	}
	return lookupProtoOnly(proto, name)
}

func lookupProtoOnly(proto Type, name string) symboltable.Symbol {
	if proto == nil {
		return symboltable.Symbol{Name: name, Defined: false}
	}
	return LookupAttribute(proto, name)
}

// LookupMethod is LookupAttribute restricted to Block-typed results;
// non-Block attributes of the same name are reported as a miss by
// the caller (spec.md §4.6 send algorithm step 4).
func LookupMethod(t Type, name string) (*Block, bool) {
	sym := LookupAttribute(t, name)
	if !sym.Defined {
		return nil, false
	}
	block, ok := sym.Type.(*Block)
	return block, ok
}
