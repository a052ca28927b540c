package types

import "github.com/google/uuid"

// Instance is one method-call site's fresh type-parameter binding
// frame (spec.md §4.1 "Parameter instantiation"). ID is a fresh uuid
// per frame, so two calls to the same generic method carry distinct
// frame identities; nothing else in this module reads it
// (SPEC_FULL.md §3).
type Instance struct {
	ID       uuid.UUID
	Bindings map[string]Type
}

// NewInstance seeds a fresh parameter table from the receiver's own
// instances ("constructs a fresh parameter table seeded from the
// receiver's instances", spec.md §4.1).
func NewInstance(receiver *Object) *Instance {
	bindings := make(map[string]Type, len(receiver.TypeParamInstances))
	for k, v := range receiver.TypeParamInstances {
		bindings[k] = v
	}
	return &Instance{ID: uuid.New(), Bindings: bindings}
}

// Bind binds each formal parameter from the corresponding argument
// type in positional order, implementing the two-armed rule of
// spec.md §4.1: if the expected type is a generated trait whose name
// already has an instance in the receiver, reuse it; otherwise, if
// the argument is compatible with the constraint and the receiver is
// not the module currently being checked, bind the parameter to the
// argument's type going forward.
func (inst *Instance) Bind(expected Type, argument Type, receiver *Object, receiverIsCurrentModule bool) {
	trait, ok := expected.(*Trait)
	if !ok || !trait.Generated {
		return
	}
	if existing, bound := receiver.TypeParamInstances[trait.Name]; bound {
		inst.Bindings[trait.Name] = existing
		return
	}
	if _, alreadyThisCall := inst.Bindings[trait.Name]; alreadyThisCall {
		return
	}
	if !satisfiesConstraint(argument, trait) {
		return
	}
	inst.Bindings[trait.Name] = argument
	if !receiverIsCurrentModule {
		receiver.TypeParamInstances[trait.Name] = argument
	}
}

func satisfiesConstraint(argument Type, trait *Trait) bool {
	return CompatibleWith(argument, trait)
}

// Resolve substitutes a generated-trait type parameter or SelfType
// found in t using this instance's bindings and the call receiver,
// implementing "the return type is resolved through this table;
// unresolved SelfType is substituted by the receiver" (spec.md §4.1).
func (inst *Instance) Resolve(t Type, receiver Type) Type {
	switch tt := t.(type) {
	case SelfType:
		return receiver
	case *Trait:
		if tt.Generated {
			if bound, ok := inst.Bindings[tt.Name]; ok {
				return bound
			}
		}
		return t
	case Optional:
		return Optional{Inner: inst.Resolve(tt.Inner, receiver)}
	default:
		return t
	}
}
