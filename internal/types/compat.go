package types

// pair guards against infinite recursion when two recursive prototype
// chains or mutually-implementing traits are compared, mirroring the
// teacher's co-inductive "visited" list in unify.go.
type pair struct {
	a, b Type
}

// CompatibleWith reports whether a value of type from is acceptable
// where a value of type to is expected (spec.md §4.1). The relation
// is NOT symmetric in general (Block argument types are checked
// contravariantly by the caller); this function implements the core,
// direction-agnostic rule for one (from, to) ordering.
func CompatibleWith(from, to Type) bool {
	return compatible(from, to, nil)
}

func compatible(from, to Type, visited []pair) bool {
	if from == nil || to == nil {
		return false
	}
	// Reflexive (spec.md §4.1: "reflexive").
	if sameType(from, to) {
		return true
	}
	// Dynamic is compatible with anything in both directions.
	if _, ok := from.(Dynamic); ok {
		return true
	}
	if _, ok := to.(Dynamic); ok {
		return true
	}
	// SelfType on either side defers to the caller, which must
	// resolve it against scope before calling CompatibleWith; treat
	// an unresolved SelfType conservatively as compatible so the
	// pass never double-errors on an already-reported resolution
	// failure.
	if _, ok := from.(SelfType); ok {
		return true
	}
	if _, ok := to.(SelfType); ok {
		return true
	}
	// Optional[T] vs Optional[U]: compare inner types directly, before
	// the plain-unwrap branch below (which would otherwise always
	// intercept, since it only tests to's shape).
	if optFrom, ok := from.(Optional); ok {
		if optTo, ok2 := to.(Optional); ok2 {
			return compatible(optFrom.Inner, optTo.Inner, visited)
		}
		// An Optional[T] value is only compatible with a wider
		// Optional[U] or with Dynamic/Self (handled above).
		return false
	}
	// Optional[T] accepts T and None-like sentinels (nil_type, whose
	// representation is an Object named by typedb; the pass passes
	// the shared nil prototype here as a plain Object comparison).
	if opt, ok := to.(Optional); ok {
		if compatible(from, opt.Inner, visited) {
			return true
		}
		if isNilLike(from) {
			return true
		}
		return false
	}

	for _, p := range visited {
		if p.a == from && p.b == to {
			return true // co-inductive: assume success, break the cycle
		}
	}
	visited = append(visited, pair{from, to})

	switch fromT := from.(type) {
	case *Object:
		switch toT := to.(type) {
		case *Object:
			return objectCompatibleWithObject(fromT, toT, visited)
		case *Trait:
			return objectImplements(fromT, toT, visited)
		}
		return false
	case *Trait:
		switch toT := to.(type) {
		case *Trait:
			return traitCompatibleWithTrait(fromT, toT, visited)
		case *Object:
			// A trait value is never compatible with a concrete
			// object type (objects don't reach traits via the
			// prototype chain in reverse).
			_ = toT
			return false
		}
		return false
	case *Block:
		toBlock, ok := to.(*Block)
		if !ok {
			return false
		}
		return blockCompatibleWithBlock(fromT, toBlock, visited)
	}
	return false
}

// sameType reports pointer/value identity for the variants that carry
// no further structure worth unifying (built-in prototypes are
// singletons, so pointer/name equality is sufficient).
func sameType(a, b Type) bool {
	switch at := a.(type) {
	case *Object:
		if bt, ok := b.(*Object); ok {
			return at == bt
		}
	case *Trait:
		if bt, ok := b.(*Trait); ok {
			return at == bt
		}
	case *Block:
		if bt, ok := b.(*Block); ok {
			return at == bt
		}
	case Dynamic:
		_, ok := b.(Dynamic)
		return ok
	case SelfType:
		_, ok := b.(SelfType)
		return ok
	}
	return false
}

func isNilLike(t Type) bool {
	obj, ok := t.(*Object)
	return ok && (obj.Name == "nil_type" || obj.Name == "void_type")
}

// objectCompatibleWithObject: "Object A -> Object B iff B is reachable
// via A's prototype chain" (spec.md §4.1).
func objectCompatibleWithObject(a, b *Object, visited []pair) bool {
	for cur := Type(a); cur != nil; {
		if curObj, ok := cur.(*Object); ok {
			if curObj == b {
				return true
			}
			cur = curObj.Prototype()
			continue
		}
		break
	}
	return false
}

// objectImplements: "B is a trait in A's implemented-traits set *or*
// A recursively implements every required trait and method of B"
// (spec.md §4.1).
func objectImplements(a *Object, trait *Trait, visited []pair) bool {
	if a.Implements(trait.Name) {
		return true
	}
	return RequiredTraitsSatisfied(a, trait) && RequiredMethodsSatisfied(a, trait)
}

func traitCompatibleWithTrait(a, b *Trait, visited []pair) bool {
	if a == b {
		return true
	}
	if a.Implements(b.Name) {
		return true
	}
	for cur := Type(a.Prototype()); cur != nil; {
		if t, ok := cur.(*Trait); ok {
			if t == b {
				return true
			}
			cur = t.Prototype()
			continue
		}
		break
	}
	return RequiredTraitsSatisfiedTrait(a, b) && RequiredMethodsSatisfiedTrait(a, b)
}

// blockCompatibleWithBlock implements spec.md §4.1's Block rule:
// argument counts match (modulo rest), arguments are contravariant,
// return is covariant, throws is covariant (absent only matches
// absent).
func blockCompatibleWithBlock(callee, caller *Block, visited []pair) bool {
	calleeArgs := callee.PositionalArgs()
	callerArgs := caller.PositionalArgs()
	if !arityCompatible(callee, caller) {
		return false
	}
	n := len(calleeArgs)
	if len(callerArgs) < n {
		n = len(callerArgs)
	}
	for i := 0; i < n; i++ {
		// Contravariant: the callee's expected type must accept
		// what the caller supplies, i.e. caller's arg type must be
		// compatible-with callee's declared type when checked from
		// the supplied-argument's perspective.
		if !compatible(callerArgs[i].Type, calleeArgs[i].Type, visited) {
			return false
		}
	}
	if callee.Returns != nil && caller.Returns != nil {
		if !compatible(caller.Returns, callee.Returns, visited) {
			return false
		}
	}
	return throwsCompatible(callee.Throws, caller.Throws, visited)
}

func arityCompatible(callee, caller *Block) bool {
	if callee.HasRest() || caller.HasRest() {
		return true
	}
	return len(callee.PositionalArgs()) == len(caller.PositionalArgs())
}

func throwsCompatible(calleeThrows, callerThrows Type, visited []pair) bool {
	if calleeThrows == nil && callerThrows == nil {
		return true
	}
	if calleeThrows == nil || callerThrows == nil {
		return false
	}
	return compatible(callerThrows, calleeThrows, visited)
}
