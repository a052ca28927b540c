// Package diagnostics implements the append-only error sink the type
// pass writes to (spec.md §4.4). It never aborts traversal; callers
// record a diagnostic and substitute a type, then continue.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/typecheck/internal/token"
)

// Phase identifies which compilation stage produced a diagnostic.
// This pass only ever emits PhaseTypeCheck, but the type mirrors the
// teacher's phase-tagged diagnostics so a future pass can share the
// sink without redefining it.
type Phase string

const (
	PhaseTypeCheck Phase = "typecheck"
)

// Kind enumerates every diagnostic this pass can raise (spec.md §4.4).
type Kind string

const (
	UndefinedAttribute           Kind = "undefined-attribute"
	UndefinedMethod              Kind = "undefined-method"
	UndefinedConstant            Kind = "undefined-constant"
	UndefinedKeywordArgument     Kind = "undefined-keyword-argument"
	UndefinedLocal               Kind = "undefined-local"
	ImportUndefinedSymbol        Kind = "import-undefined-symbol"
	ImportExistingSymbol         Kind = "import-existing-symbol"
	TypeMismatch                 Kind = "type-mismatch"
	ReturnTypeMismatch           Kind = "return-type-mismatch"
	ArgumentCountMismatch        Kind = "argument-count-mismatch"
	GeneratedTraitNotImplemented Kind = "generated-trait-not-implemented"
	UnimplementedTrait           Kind = "unimplemented-trait"
	UnimplementedMethod          Kind = "unimplemented-method"
	ReassignUndefinedAttribute   Kind = "reassign-undefined-attribute"
	ReassignUndefinedLocal       Kind = "reassign-undefined-local"
	ReassignImmutableAttribute   Kind = "reassign-immutable-attribute"
	ReassignImmutableLocal       Kind = "reassign-immutable-local"
	DefineInstanceAttrOutsideInit Kind = "define-instance-attribute-outside-init"
	DefineRequiredMethodOnNonTrait Kind = "define-required-method-on-non-trait"
	RedefineReservedConstant     Kind = "redefine-reserved-constant"
	UnknownRawInstruction        Kind = "unknown-raw-instruction"
)

var messageTemplates = map[Kind]string{
	UndefinedAttribute:             "undefined attribute '%s' on %s",
	UndefinedMethod:                "undefined method '%s' on %s",
	UndefinedConstant:              "undefined constant '%s'",
	UndefinedKeywordArgument:       "undefined keyword argument '%s' for method '%s'",
	UndefinedLocal:                 "undefined local '%s'",
	ImportUndefinedSymbol:          "module '%s' does not export '%s'",
	ImportExistingSymbol:           "import of '%s' collides with an existing binding",
	TypeMismatch:                   "type mismatch: expected %s, got %s",
	ReturnTypeMismatch:             "return type mismatch: declared %s, got %s",
	ArgumentCountMismatch:          "argument count mismatch: expected %s, got %d",
	GeneratedTraitNotImplemented:   "type parameter '%s' requires trait or method '%s', not implemented by %s",
	UnimplementedTrait:             "%s does not implement required trait %s (from %s)",
	UnimplementedMethod:            "%s does not implement required method '%s' (from %s)",
	ReassignUndefinedAttribute:     "cannot reassign undefined attribute '%s'",
	ReassignUndefinedLocal:         "cannot reassign undefined local '%s'",
	ReassignImmutableAttribute:     "cannot reassign immutable attribute '%s'",
	ReassignImmutableLocal:         "cannot reassign immutable local '%s'",
	DefineInstanceAttrOutsideInit:  "instance attribute '%s' may only be defined inside 'init'",
	DefineRequiredMethodOnNonTrait: "required method '%s' declared outside a trait",
	RedefineReservedConstant:       "'%s' is a reserved name and may not be redefined",
	UnknownRawInstruction:          "unknown raw instruction '%s'",
}

// Diagnostic is one recorded violation.
type Diagnostic struct {
	Kind  Kind
	Phase Phase
	Token token.Token
	Args  []interface{}
}

func (d *Diagnostic) Error() string {
	template, ok := messageTemplates[d.Kind]
	if !ok {
		return fmt.Sprintf("unknown diagnostic kind: %s", d.Kind)
	}
	msg := fmt.Sprintf(template, d.Args...)
	return fmt.Sprintf("%s error at %s [%s]: %s", d.Phase, d.Token, d.Kind, msg)
}

// New builds a type-check-phase diagnostic at tok.
func New(kind Kind, tok token.Token, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Phase: PhaseTypeCheck, Token: tok, Args: args}
}
