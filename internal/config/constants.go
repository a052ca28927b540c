// Package config holds the process-wide toggles and the name tables
// that are part of this pass's external contract (spec.md §6): the
// reserved-constant list, the intrinsic raw-instruction registry, and
// the special method/attribute names downstream code generation
// expects to find unchanged.
package config

// IsTestMode mirrors the teacher's config.IsTestMode switch. No code
// in this module reads it, so setting it changes no output.
var IsTestMode = false

// Special names that are part of the external contract (spec.md §6).
const (
	InitMethodName      = "init"    // only method in which attributes may be defined on self
	TryBlockName        = "$try"    // synthesized Block name for a try expression's try branch
	ElseBlockName       = "$else"   // synthesized Block name for a try expression's else branch
	ModuleGlobalName    = "$module" // name under which a module's own type is registered in its globals
	ModulePrototypeAttr = "Module"  // attribute on top_level every module type inherits from
	ModulesRegistryAttr = "Modules" // attribute on top_level: registry of all module types by qualified name
	NameAttr            = "$name"   // reserved string attribute defined on every Object/Trait
	SelfArgName         = "self"    // the implicit 0th argument of every Block
)

// Built-in prototype names (typedb.Database field names, spec.md §4.2).
const (
	IntegerTypeName = "integer_type"
	FloatTypeName   = "float_type"
	StringTypeName  = "string_type"
	ArrayTypeName   = "array_type"
	BlockTypeName   = "block_type"
	TraitTypeName   = "trait_type"
	ObjectTypeName  = "object_type"
	NilTypeName     = "nil_type"
	TrueTypeName    = "true_type"
	FalseTypeName   = "false_type"
	VoidTypeName    = "void_type"
	TopLevelName    = "top_level"
)

// ReservedConstants is the default set of names a module may not
// redefine as a constant (spec.md invariant 5). LoadNameOverlay can
// add names to it from a YAML document so the compiler and
// downstream code generation can share one source of truth.
var ReservedConstants = map[string]bool{
	"Self":  true,
	"Dyn":   true,
	"True":  true,
	"False": true,
	"Nil":   true,
}

// RawInstructions is the closed registry of intrinsic opcodes this
// pass assigns fixed types to (spec.md §4.6 "Raw instruction nodes").
// The value is the name of the typedb prototype the instruction
// evaluates to; "" means the instruction evaluates to nil (spec.md's
// void/nil literal type) rather than a prototype lookup.
var RawInstructions = map[string]string{
	"integer_to_string": StringTypeName,
	"string_to_integer": IntegerTypeName,
	"float_to_string":   StringTypeName,
	"integer_to_float":  FloatTypeName,
	"float_to_integer":  IntegerTypeName,
	"stdout_write":      IntegerTypeName,
	"stdout_flush":      NilTypeName,
	"stderr_write":      IntegerTypeName,
	"get_toplevel":      TopLevelName,
	"array_length":      IntegerTypeName,
	"array_at":          "", // nil_type like every "" entry: element type is not tracked per-array
	"array_push":        NilTypeName,
	"panic":             NilTypeName,
	"exit":              NilTypeName,
}
