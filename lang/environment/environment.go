// Package environment builds the default global scope: the primitive table
// every FUEL program runs against, per spec.md §4.4/§6. Registration is
// split across one file per primitive family, mirroring nenuphar's
// lang/machine package decomposition (one file per value-kind concern).
package environment

import (
	"io"

	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/types"
)

// MakeDefaultScope constructs a fresh global scope with every primitive
// registered, analogous to the original interpreter's make_default_scope.
func MakeDefaultScope(moduleName string, output io.Writer, input io.Reader) *types.Scope {
	sc := types.NewGlobalScope(moduleName, output, input)
	registerArithmetic(sc)
	registerComparison(sc)
	registerLists(sc)
	registerStrings(sc)
	registerIO(sc)
	registerTypeOps(sc)
	registerControl(sc)
	registerIntrospection(sc)
	registerImports(sc)
	// "true"/"false" are ordinary global bindings, not literal syntax (the
	// scanner only recognizes "#t"/"#f" as boolean literals); this lets
	// e.g. "(if false 1)" read naturally without adding a second literal
	// form for the same value.
	sc.GDef("true", types.NewBool(true))
	sc.GDef("false", types.NewBool(false))
	return sc
}

// builtin registers a regular (arguments pre-evaluated) primitive.
func builtin(sc *types.Scope, name, signature, doc string, fn types.Invocable) {
	f := &types.Function{
		Invoke:        fn,
		Signature:     signature,
		Documentation: doc,
		Module:        "core",
		Builtin:       true,
	}
	sc.Global.Primitives.Put(name, f)
	sc.GDef(name, types.NewFunctionValue(f))
}

// special registers a special form (arguments passed unevaluated).
func special(sc *types.Scope, name, signature, doc string, fn types.Invocable) {
	f := &types.Function{
		Invoke:        fn,
		Signature:     signature,
		Documentation: doc,
		Module:        "core",
		Builtin:       true,
		SpecialForm:   true,
	}
	sc.Global.Primitives.Put(name, f)
	sc.GDef(name, types.NewFunctionValue(f))
}

func arityError(sc *types.Scope, name string, want string, got int) error {
	return types.NewError(sc, "%s expects %s argument(s), got %d", name, want, got)
}

// evalArg evaluates an unevaluated argument subtree of a special form, so
// special-form Invocables (which receive raw AST per spec.md §4.6 step 5)
// can evaluate the subset of their arguments that the form's own semantics
// call for. push, pop and search use it; the control forms call
// evaluator.Eval directly.
func evalArg(v *types.Value, sc *types.Scope) (*types.Value, error) {
	return evaluator.Eval(v, sc)
}
