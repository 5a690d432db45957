// Package macro implements both FUEL macro mechanisms described in
// spec.md §4.5: runtime macros, substituted and evaluated at the call site
// during ordinary evaluation, and compile-time macros, expanded in a
// dedicated fixed-point pre-pass over the freshly read AST.
package macro

import (
	"fmt"

	"github.com/maze516/fuel-lang/lang/types"
)

const (
	DefineMacroEval   = "define-macro-eval"
	DefineMacroExpand = "define-macro-expand"
)

// parseDefinition pulls (name, formals, body) out of a
// (define-macro-{eval,expand} NAME (formals...) BODY) form. callItems is the
// full call, including the leading define-macro-* symbol.
func parseDefinition(callItems []*types.Value) (name string, formals []string, body *types.Value, err error) {
	if len(callItems) != 4 {
		return "", nil, nil, fmt.Errorf("macro definition expects (define-macro-* name (formals...) body), got %d forms", len(callItems))
	}
	nameVal := callItems[1]
	if !nameVal.IsSymbol() {
		return "", nil, nil, fmt.Errorf("macro definition name must be a symbol")
	}
	formalsVal := callItems[2]
	if !formalsVal.IsList() {
		return "", nil, nil, fmt.Errorf("macro definition formal argument list must be a list")
	}
	for _, f := range formalsVal.ListItems() {
		if !f.IsSymbol() {
			return "", nil, nil, fmt.Errorf("macro formal arguments must be symbols")
		}
		formals = append(formals, f.SymbolName())
	}
	return nameVal.SymbolName(), formals, callItems[3], nil
}

// RegisterRuntime registers a runtime macro from a
// (define-macro-eval name (formals...) body) call form into the scope
// root's macro table.
func RegisterRuntime(sc *types.Scope, callItems []*types.Value) (string, error) {
	name, formals, body, err := parseDefinition(callItems)
	if err != nil {
		return "", err
	}
	sc.Global.Macros.Put(name, &types.Macro{
		Kind:       types.MacroRuntimeEvaluate,
		Name:       name,
		FormalArgs: formals,
		Body:       body,
	})
	return name, nil
}

// RegisterCompileTime registers a compile-time macro from a
// (define-macro-expand name (formals...) body) call form.
func RegisterCompileTime(sc *types.Scope, callItems []*types.Value) (string, error) {
	name, formals, body, err := parseDefinition(callItems)
	if err != nil {
		return "", err
	}
	sc.Global.Macros.Put(name, &types.Macro{
		Kind:       types.MacroCompileTimeExpand,
		Name:       name,
		FormalArgs: formals,
		Body:       body,
	})
	return name, nil
}

// Lookup returns the macro registered for name, if any.
func Lookup(sc *types.Scope, name string) (*types.Macro, bool) {
	return sc.Global.Macros.Get(name)
}

// Expand substitutes the formal arguments of macro into its body with the
// unevaluated argument subtrees of call (a full call form, head included),
// and returns the resulting expression with the call site's token attached
// to its root.
func Expand(call *types.Value, macro *types.Macro) (*types.Value, error) {
	items := call.ListItems()
	args := items[1:]
	if len(args) < len(macro.FormalArgs) {
		return nil, fmt.Errorf("macro %s expects %d arguments, got %d", macro.Name, len(macro.FormalArgs), len(args))
	}
	expr := macro.Body
	for i, formal := range macro.FormalArgs {
		expr = substitute(formal, args[i], expr)
	}
	return expr.WithToken(call.Token()), nil
}

// substitute replaces every occurrence of the symbol named formal in expr
// with value. If expr itself is the symbol, value is substituted directly
// (if value is a list it is inlined as a sub-list, not spliced). List
// sub-expressions are walked recursively; all other atoms pass through
// unchanged.
func substitute(formal string, value, expr *types.Value) *types.Value {
	if expr.IsSymbol() && expr.SymbolName() == formal {
		return value
	}
	if expr.IsList() {
		items := expr.ListItems()
		out := make([]*types.Value, len(items))
		for i, it := range items {
			out[i] = substitute(formal, value, it)
		}
		return types.NewList(out).WithToken(expr.Token())
	}
	return expr
}

// ExpandCompileTime repeatedly applies the compile-time macro pre-pass over
// ast until a fixed point is reached: a macro that expands into another
// macro call is expanded again on the next pass, and definitions evaporate
// (their node is removed from the tree) after registering as a side effect.
//
// A macro that rewrites to a call of itself never reaches a fixed point;
// per spec.md §8 this is an accepted non-terminating program, not a bug to
// guard against here.
func ExpandCompileTime(ast *types.Value, sc *types.Scope) (*types.Value, error) {
	for {
		expanded, changed, err := expandPass(ast, sc)
		if err != nil {
			return nil, err
		}
		ast = expanded
		if !changed {
			return ast, nil
		}
	}
}

func expandPass(ast *types.Value, sc *types.Scope) (*types.Value, bool, error) {
	if ast == nil || !ast.IsList() || ast.IsNil() {
		return ast, false, nil
	}
	items := ast.ListItems()
	head := items[0]
	if head.IsSymbol() {
		switch head.SymbolName() {
		case DefineMacroEval:
			if _, err := RegisterRuntime(sc, items); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		case DefineMacroExpand:
			if _, err := RegisterCompileTime(sc, items); err != nil {
				return nil, false, err
			}
			return nil, true, nil
		}
		if m, ok := Lookup(sc, head.SymbolName()); ok && m.Kind == types.MacroCompileTimeExpand {
			expanded, err := Expand(ast, m)
			if err != nil {
				return nil, false, err
			}
			return expanded, true, nil
		}
	}

	changedAny := false
	out := make([]*types.Value, 0, len(items))
	for _, it := range items {
		expanded, changed, err := expandPass(it, sc)
		if err != nil {
			return nil, false, err
		}
		if changed {
			changedAny = true
		}
		if expanded == nil {
			// a nested macro definition evaporated; drop the node
			continue
		}
		out = append(out, expanded)
	}
	return types.NewList(out).WithToken(ast.Token()), changedAny, nil
}
