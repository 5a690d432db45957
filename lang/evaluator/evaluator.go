// Package evaluator implements the tree-walking evaluator at the heart of
// FUEL: given a Value and a Scope, it produces a Value, per spec.md §4.6.
package evaluator

import (
	"github.com/maze516/fuel-lang/lang/macro"
	"github.com/maze516/fuel-lang/lang/types"
)

// Eval evaluates val in sc and returns the resulting Value.
//
//  1. A literal (number, string, bool, nil) evaluates to itself.
//  2. A symbol resolves in sc; an unresolved symbol is an error.
//  3. An empty list evaluates to Nil.
//  4. Anything else is a call: its head is resolved to a macro or a
//     function wrapper and dispatched accordingly.
func Eval(val *types.Value, sc *types.Scope) (*types.Value, error) {
	if val == nil || val.IsNil() {
		return types.Nil(), nil
	}
	switch {
	case val.IsSymbol():
		return sc.Resolve(val.SymbolName())
	case val.IsList():
		return evalCall(val, sc)
	default:
		return val, nil
	}
}

// EvalBody evaluates a sequence of expressions in order, in sc, and returns
// the value of the last one (or Nil for an empty sequence): the implicit
// "last expression is the result" rule used by function bodies and "do"
// blocks. If an expression evaluates to an explicit (return expr) marker,
// iteration stops immediately and the marker is returned *still tagged* -
// nested "do"s propagate it to their own caller unchanged, so it unwinds
// all the way to the enclosing function call, which is what actually
// unwraps it (see environment's "fn"/"defn"/"lambda" Invoke).
func EvalBody(exprs []*types.Value, sc *types.Scope) (*types.Value, error) {
	var result *types.Value = types.Nil()
	for _, e := range exprs {
		v, err := Eval(e, sc)
		if err != nil {
			return nil, err
		}
		if _, ok := v.AsReturn(); ok {
			return v, nil
		}
		result = v
	}
	return result, nil
}

func evalCall(call *types.Value, sc *types.Scope) (*types.Value, error) {
	items := call.ListItems()
	if len(items) == 0 {
		return types.Nil(), nil
	}
	head := items[0]

	if head.IsSymbol() {
		if m, ok := macro.Lookup(sc, head.SymbolName()); ok && m.Kind == types.MacroRuntimeEvaluate {
			expanded, err := macro.Expand(call, m)
			if err != nil {
				return nil, err
			}
			return Eval(expanded, sc)
		}
	}

	if tok := call.Token(); tok != nil {
		sc.CurrentToken = tok
	}

	fnVal, err := Eval(head, sc)
	if err != nil {
		return nil, err
	}
	if !fnVal.IsFunction() {
		return nil, types.NewError(sc, "Function %s not found", head.String())
	}
	fn := fnVal.FunctionValue()

	var args []*types.Value
	if fn.SpecialForm {
		args = items[1:]
	} else {
		args = make([]*types.Value, len(items)-1)
		for i, a := range items[1:] {
			v, err := Eval(a, sc)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
	}

	if sc.Global.Tracing {
		sc.AppendTrace(head.String())
	}

	if hook := sc.Global.Debugger; hook != nil && hook.NeedsBreak(sc) {
		if err := hook.InteractiveLoop(sc); err != nil {
			return nil, err
		}
	}

	return fn.Invoke(args, sc)
}
