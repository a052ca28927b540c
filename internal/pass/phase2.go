package pass

import (
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/types"
)

// phase2 re-enters every queued method body under its recorded scope,
// then verifies the body's type against the declared return type
// (spec.md §4.6 "Phase 2 (deferred methods)"). Queue order is
// insertion order, satisfying the determinism requirement of
// spec.md §5.
func (p *Pass) phase2() {
	for _, q := range p.queue {
		bodyScope := q.scope.Enter(q.scope.SelfType, q.block)
		bodyType := p.typeBody(q.node.Body, bodyScope)
		declared := q.block.Returns
		if declared == nil {
			declared = types.Dynamic{}
			q.block.Returns = declared
		}
		if !types.CompatibleWith(bodyType, declared) {
			p.err(diagnostics.ReturnTypeMismatch, q.node, declared.String(), bodyType.String())
		}
	}
}
