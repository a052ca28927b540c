package pass

import (
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/types"
)

// asType recovers a types.Type from the symboltable.Typed interface a
// Table stores its values behind. Every value this pass ever puts
// into a Table is a types.Type, and so is the absent-symbol
// sentinel's Dynamic value, so the assertion does not fail in
// practice; the Dynamic fallback only covers a nil or foreign value.
func asType(t symboltable.Typed) types.Type {
	if typ, ok := t.(types.Type); ok {
		return typ
	}
	return types.Dynamic{}
}
