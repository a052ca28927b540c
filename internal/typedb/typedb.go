// Package typedb implements spec.md §4.2: the process-wide, read-only
// registry of built-in prototypes created once before any module is
// processed (spec.md §3 "Lifecycles": "Built-in types are created
// once and shared (process-wide) before any module is processed").
//
// Grounded on the teacher's registerBuiltinsToPrelude
// (internal/analyzer/builtins.go), which uses the same sync.Once
// idempotent-registration shape for its own (differently-typed)
// prelude.
package typedb

import (
	"sync"

	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/types"
)

// Database is the fixed set of named prototypes (spec.md §4.2).
type Database struct {
	Integer *types.Object
	Float   *types.Object
	String  *types.Object
	Array   *types.Object
	Block   *types.Object
	Trait   *types.Object
	Object  *types.Object
	Nil     *types.Object
	True    *types.Object
	False   *types.Object
	Void    *types.Object
	// TopLevel additionally owns Modules (a registry of all module
	// types by qualified name) and Module (the prototype every
	// module type inherits from), per spec.md §4.2.
	TopLevel *types.Object
	// ModuleProto is the "Module" attribute value on TopLevel: the
	// prototype every module's own Object type inherits from.
	ModuleProto *types.Object
	// Dynamic is shared process-wide; every fresh attribute table
	// built by this package points lookup misses at it.
	Dynamic types.Dynamic

	// modules is the backing store for TopLevel.Modules: qualified
	// module name -> that module's own Object type.
	modules map[string]*types.Object
}

var (
	once sync.Once
	db   *Database
)

// Get returns the shared, lazily-built database (spec.md §4.2). Safe
// to call from multiple modules; construction happens exactly once.
func Get() *Database {
	once.Do(func() {
		db = build()
	})
	return db
}

// Reset rebuilds the database from scratch (test-only, mirrors the
// teacher's ResetBuiltins/ResetPrelude pair).
func Reset() {
	once = sync.Once{}
	db = nil
}

func newProto(name string) *types.Object {
	return &types.Object{
		Name:               name,
		Attributes:         symboltable.New(types.Dynamic{}),
		ImplementedTraits:  make(map[string]*types.Trait),
		TypeParams:         symboltable.New(types.Dynamic{}),
		TypeParamInstances: make(map[string]types.Type),
	}
}

func build() *Database {
	d := &Database{modules: make(map[string]*types.Object)}

	object := newProto(config.ObjectTypeName)
	d.Object = object

	proto := func(name string) *types.Object {
		o := newProto(name)
		o.SetPrototype(object)
		return o
	}

	d.Integer = proto(config.IntegerTypeName)
	d.Float = proto(config.FloatTypeName)
	d.String = proto(config.StringTypeName)
	d.Array = proto(config.ArrayTypeName)
	d.Block = proto(config.BlockTypeName)
	d.Trait = proto(config.TraitTypeName)
	d.Nil = proto(config.NilTypeName)
	d.True = proto(config.TrueTypeName)
	d.False = proto(config.FalseTypeName)
	d.Void = proto(config.VoidTypeName)

	d.ModuleProto = proto(config.ModulePrototypeAttr)

	d.TopLevel = proto(config.TopLevelName)
	d.TopLevel.Attributes.Define(config.ModulePrototypeAttr, d.ModuleProto, false)
	// Modules is exposed through RegisterModule/LookupModule rather
	// than as a literal attribute value, since it is a live registry,
	// not a fixed type.

	return d
}

// RegisterModule records typ under qualified name in the Modules
// registry (append-only across compilation, spec.md §5).
func (d *Database) RegisterModule(qualifiedName string, typ *types.Object) {
	d.modules[qualifiedName] = typ
}

// LookupModule resolves a previously-registered module's own type.
func (d *Database) LookupModule(qualifiedName string) (*types.Object, bool) {
	t, ok := d.modules[qualifiedName]
	return t, ok
}
