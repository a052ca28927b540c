// Package ast defines the AST node contract this pass consumes
// (spec.md §6 External Interfaces). The lexer and parser that build
// these trees are out of this module's scope; only the node shapes
// matter here: each node carries a source location and a mutable
// Type slot (plus, on a few node kinds, supplementary slots that
// downstream IR lowering reads).
//
// Dispatch inside the pass is an explicit Go type switch rather than
// a reflection-based Visitor, per spec.md §9 "Visitor dispatch ->
// pattern match". Node/Statement/Expression still mirror the
// teacher's split (internal/ast/ast_core.go) because that split is an
// ambient convention of this codebase, not a visitor mechanism.
package ast

import (
	"github.com/funvibe/typecheck/internal/token"
	"github.com/funvibe/typecheck/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node appearing in a declaration or method body
// position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that, after the pass, always carries a type
// (invariant 1: "Every AST expression node carries a non-null type
// after the pass, even on error paths").
type Expression interface {
	Node
	expressionNode()
	GetType() types.Type
	SetType(types.Type)
}

// exprBase factors the Type slot and token shared by every
// expression node, the way the teacher's per-node GetToken nil-guard
// is shared via an embedded Token field.
type exprBase struct {
	Token token.Token
	Type  types.Type
}

func (e *exprBase) GetToken() token.Token { return e.Token }
func (e *exprBase) expressionNode()       {}
func (e *exprBase) GetType() types.Type   { return e.Type }
func (e *exprBase) SetType(t types.Type)  { e.Type = t }

// statementNode makes every Expression also satisfy Statement: this
// language has no separate expression-statement wrapper, so a bare
// send, literal, or control-flow expression is itself a valid body
// statement (spec.md §4.6 bodies are statement lists ending in an
// expression).
func (e *exprBase) statementNode() {}

type stmtBase struct {
	Token token.Token
}

func (s *stmtBase) GetToken() token.Token { return s.Token }
func (s *stmtBase) statementNode()        {}

// Program is the root node of one module's AST: possibly many files'
// worth of statements, already concatenated by the parser/driver in
// declaration order.
type Program struct {
	ModuleName string
	Imports    []*ImportStatement
	Statements []Statement
}

func (p *Program) GetToken() token.Token {
	if len(p.Statements) > 0 {
		return p.Statements[0].GetToken()
	}
	return token.Token{}
}

// ImportStatement binds selected symbols from another module into
// this module's globals, with rename support and a glob form
// (spec.md §4.6).
type ImportStatement struct {
	stmtBase
	ModulePath string
	// Names selects specific symbols; empty + Glob means "import
	// everything".
	Names []ImportedName
	Glob  bool
	// ReexportSelf marks "export self": the exported alias binds to
	// the source module's own type (spec.md §4.6, SPEC_FULL.md §4).
	ReexportSelf  bool
	ReexportAlias string
}

// ImportedName is one selected symbol, optionally renamed.
type ImportedName struct {
	Source string
	Alias  string // equals Source when no rename is given
}
