package types

// RequiredTraitsSatisfied reports whether o implements every trait in
// trait.RequiredTraits (spec.md §4.7 first bullet).
func RequiredTraitsSatisfied(o *Object, trait *Trait) bool {
	for _, required := range trait.RequiredTraits {
		if !objectImplements(o, required, nil) {
			return false
		}
	}
	return true
}

// RequiredMethodsSatisfied reports whether o has, for every required
// method of trait, a method of the same name whose signature is
// compatible (spec.md §4.7 second bullet). An empty required-methods
// set is vacuously satisfied (spec.md §9 Open Question).
func RequiredMethodsSatisfied(o *Object, trait *Trait) bool {
	for _, name := range trait.RequiredMethodOrder {
		required := trait.RequiredMethods[name]
		sym, ok := o.Attributes.LookupLocal(name)
		if !ok {
			if !protoHasMethod(o.Prototype(), name, required) {
				return false
			}
			continue
		}
		block, ok := sym.Type.(*Block)
		if !ok {
			return false
		}
		if !blockCompatibleWithBlock(required, block, nil) {
			return false
		}
	}
	return true
}

func protoHasMethod(proto Type, name string, required *Block) bool {
	obj, ok := proto.(*Object)
	if !ok {
		return false
	}
	sym, ok := obj.Attributes.LookupLocal(name)
	if ok {
		if block, ok := sym.Type.(*Block); ok {
			return blockCompatibleWithBlock(required, block, nil)
		}
	}
	return protoHasMethod(obj.Prototype(), name, required)
}

// MissingRequiredMethod returns the name of the first required trait
// or required method of trait that t fails to satisfy, so a
// generated-trait-not-implemented diagnostic can name the specific
// missing member instead of only reporting overall incompatibility.
// Returns "" if t already satisfies trait or is not an Object/Trait.
func MissingRequiredMethod(t Type, trait *Trait) string {
	switch v := t.(type) {
	case *Object:
		for _, required := range trait.RequiredTraits {
			if !objectImplements(v, required, nil) {
				return required.Name
			}
		}
		for _, name := range trait.RequiredMethodOrder {
			required := trait.RequiredMethods[name]
			sym, ok := v.Attributes.LookupLocal(name)
			if !ok {
				if !protoHasMethod(v.Prototype(), name, required) {
					return name
				}
				continue
			}
			block, ok := sym.Type.(*Block)
			if !ok || !blockCompatibleWithBlock(required, block, nil) {
				return name
			}
		}
	case *Trait:
		for _, r := range trait.RequiredTraits {
			if !traitCompatibleWithTrait(v, r, nil) {
				return r.Name
			}
		}
		for _, name := range trait.RequiredMethodOrder {
			reqBlock := trait.RequiredMethods[name]
			ownBlock, ok := v.RequiredMethods[name]
			if !ok || !blockCompatibleWithBlock(reqBlock, ownBlock, nil) {
				return name
			}
		}
	}
	return ""
}

// RequiredTraitsSatisfiedTrait / RequiredMethodsSatisfiedTrait mirror
// the Object versions for the case where the implementing side is
// itself a Trait (a trait may require another trait transitively).
func RequiredTraitsSatisfiedTrait(t *Trait, required *Trait) bool {
	for _, r := range required.RequiredTraits {
		if !traitCompatibleWithTrait(t, r, nil) {
			return false
		}
	}
	return true
}

func RequiredMethodsSatisfiedTrait(t *Trait, required *Trait) bool {
	for _, name := range required.RequiredMethodOrder {
		reqBlock := required.RequiredMethods[name]
		ownBlock, ok := t.RequiredMethods[name]
		if !ok {
			return false
		}
		if !blockCompatibleWithBlock(reqBlock, ownBlock, nil) {
			return false
		}
	}
	return true
}
