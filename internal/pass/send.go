package pass

import (
	"fmt"

	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// typeSend implements spec.md §4.6 "Sends", the eight-step algorithm:
// determine the receiver, type every argument, short-circuit on a
// Dynamic receiver, look up the method, verify keyword arguments,
// verify arity, check each argument's compatibility (binding generic
// parameters as it goes), then resolve the return type through the
// same binding frame.
func (p *Pass) typeSend(n *ast.Send, scope *typescope.Scope) types.Type {
	receiverType := scope.SelfType
	if n.Receiver != nil {
		receiverType = p.typeExpr(n.Receiver, scope)
	} else if _, ok := types.LookupMethod(scope.SelfType, n.Name); !ok {
		// An implicit receiver resolves against self_type first, then
		// falls back to the module type when self doesn't respond
		// (spec.md §4.6 Sends step 1), mirroring typeIdentifier's
		// local -> self -> module -> global chain.
		if _, ok := types.LookupMethod(p.Module.Type, n.Name); ok {
			receiverType = p.Module.Type
		}
	}
	n.ReceiverType = receiverType

	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = p.typeExpr(a, scope)
	}
	kwTypes := make(map[string]types.Type, len(n.KeywordArgs))
	for _, kw := range n.KeywordArgs {
		kwTypes[kw.Name] = p.typeExpr(kw.Value, scope)
	}

	if _, ok := receiverType.(types.Dynamic); ok {
		n.SetType(p.dynamic())
		return p.dynamic()
	}

	// An unannotated closure argument carries a Constraint in place of
	// a concrete type; a send against it synthesizes a required
	// method on the constraint instead of resolving a real signature
	// (spec.md §4.6 send-algorithm step 3, §8 scenario 6).
	if constraint, ok := receiverType.(*types.Constraint); ok {
		required := &types.Block{
			BlockKind: types.KindMethod,
			Arguments: []types.Arg{{Name: "self", Type: types.Dynamic{}}},
			Returns:   p.dynamic(),
		}
		for range n.Args {
			required.Arguments = append(required.Arguments, types.Arg{Type: types.Dynamic{}})
		}
		constraint.RequireMethod(n.Name, required)
		n.SetType(p.dynamic())
		return p.dynamic()
	}

	block, ok := types.LookupMethod(receiverType, n.Name)
	if !ok {
		p.err(diagnostics.UndefinedMethod, n, n.Name, receiverType.String())
		n.SetType(p.dynamic())
		return p.dynamic()
	}

	receiverObj, isObj := receiverType.(*types.Object)
	var inst *types.Instance
	receiverIsCurrentModule := false
	if isObj {
		inst = types.NewInstance(receiverObj)
		receiverIsCurrentModule = p.Module.DefinesOwnType && receiverObj == p.Module.Type
	}

	positional := block.PositionalArgs()
	keywordParams := make(map[string]types.Arg)
	var positionalParams []types.Arg
	for _, a := range positional {
		if a.Keyword {
			keywordParams[a.Name] = a
		} else {
			positionalParams = append(positionalParams, a)
		}
	}

	for name := range kwTypes {
		if _, ok := keywordParams[name]; !ok {
			p.err(diagnostics.UndefinedKeywordArgument, n, name, n.Name)
		}
	}

	if !p.arityMatches(positionalParams, block.HasRest(), len(n.Args)) {
		p.err(diagnostics.ArgumentCountMismatch, n, arityDescription(positionalParams, block.HasRest()), len(n.Args))
	}

	for i, argType := range argTypes {
		if i >= len(positionalParams) {
			break
		}
		expected := p.resolveSend(positionalParams[i].Type, inst, receiverType)
		if isObj {
			inst.Bind(positionalParams[i].Type, argType, receiverObj, receiverIsCurrentModule)
			expected = p.resolveSend(positionalParams[i].Type, inst, receiverType)
		}
		p.checkArgCompatible(argType, expected, n.Args[i])
	}

	for name, argType := range kwTypes {
		param, ok := keywordParams[name]
		if !ok {
			continue
		}
		expected := p.resolveSend(param.Type, inst, receiverType)
		if isObj {
			inst.Bind(param.Type, argType, receiverObj, receiverIsCurrentModule)
			expected = p.resolveSend(param.Type, inst, receiverType)
		}
		p.checkArgCompatible(argType, expected, n)
	}

	result := p.dynamic()
	if block.Returns != nil {
		result = p.resolveSend(block.Returns, inst, receiverType)
	}
	n.SetType(result)
	return result
}

// checkArgCompatible reports the argument/expected-type mismatch at
// anchor. When expected is still an unbound generated trait (the
// argument failed spec.md §4.1's parameter-instantiation constraint
// check), the more specific generated-trait-not-implemented
// diagnostic names the exact missing required trait/method instead of
// the generic type-mismatch report.
func (p *Pass) checkArgCompatible(argType, expected types.Type, anchor ast.Node) {
	if trait, ok := expected.(*types.Trait); ok && trait.Generated {
		if !types.CompatibleWith(argType, trait) {
			missing := types.MissingRequiredMethod(argType, trait)
			p.err(diagnostics.GeneratedTraitNotImplemented, anchor, trait.Name, missing, argType.String())
		}
		return
	}
	if !types.CompatibleWith(argType, expected) {
		p.err(diagnostics.TypeMismatch, anchor, expected.String(), argType.String())
	}
}

// resolveSend substitutes SelfType/generated-trait parameters found in
// t using inst (when the receiver is an Object) or, absent an
// instance, resolves a bare SelfType directly against receiverType
// (spec.md §4.1).
func (p *Pass) resolveSend(t types.Type, inst *types.Instance, receiverType types.Type) types.Type {
	if inst != nil {
		return inst.Resolve(t, receiverType)
	}
	if _, ok := t.(types.SelfType); ok {
		return receiverType
	}
	if opt, ok := t.(types.Optional); ok {
		return types.Optional{Inner: p.resolveSend(opt.Inner, inst, receiverType)}
	}
	return t
}

func (p *Pass) arityMatches(params []types.Arg, hasRest bool, argCount int) bool {
	min := 0
	for _, a := range params {
		if !a.Optional && !a.Rest {
			min++
		}
	}
	if argCount < min {
		return false
	}
	if hasRest {
		return true
	}
	return argCount <= len(params)
}

func arityDescription(params []types.Arg, hasRest bool) string {
	min := 0
	for _, a := range params {
		if !a.Optional && !a.Rest {
			min++
		}
	}
	if hasRest {
		return fmt.Sprintf("at least %d", min)
	}
	if min == len(params) {
		return fmt.Sprintf("%d", min)
	}
	return fmt.Sprintf("%d-%d", min, len(params))
}
