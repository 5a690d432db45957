package environment

import (
	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/macro"
	"github.com/maze516/fuel-lang/lang/reader"
	"github.com/maze516/fuel-lang/lang/types"
)

func registerControl(sc *types.Scope) {
	special(sc, "if", "(if cond then [else])", "Evaluates then if cond is truthy, else (or nil).", ifFn)
	special(sc, "do", "(do e1 e2 ...)", "Evaluates expressions in order; result is the last one.", doFn)
	special(sc, "while", "(while cond body ...)", "Repeats body while cond is truthy.", whileFn)
	special(sc, "def", "(def name value)", "Binds name in the current scope.", defFn)
	special(sc, "defn", "(defn name (formals...) body...)", "Defines a named function in the current scope.", defnFn)
	special(sc, "fn", "(fn (formals...) body...)", "An anonymous function closing over the current scope.", fnFn)
	special(sc, "lambda", "(lambda (formals...) body...)", "Alias for fn.", fnFn)
	special(sc, "setf", "(setf target value)", "Generalized assignment: a symbol, or (nth k l)/(first l)/(last l).", setfFn)
	special(sc, "gdef", "(gdef name value)", "Binds name directly in the global scope.", gdefFn)
	special(sc, "gdefn", "(gdefn name (formals...) body...)", "Defines a named function directly in the global scope.", gdefnFn)
	special(sc, "quote", "(quote x)", "Returns x unevaluated.", quoteFn)
	special(sc, "quasiquote", "(quasiquote x)", "Returns x with unquote/unquote-splicing holes filled.", quasiquoteFn)
	special(sc, "unquote", "(unquote x)", "Only meaningful inside quasiquote; evaluates x.", unquoteOutsideFn)
	special(sc, "unquote-splicing", "(unquote-splicing x)", "Only meaningful inside quasiquote; splices x.", unquoteOutsideFn)
	special(sc, "return", "(return expr)", "Short-circuits the remaining forms of the enclosing function body.", returnFn)

	special(sc, "define-macro-eval", "(define-macro-eval name (formals...) body)", "Registers a runtime macro.", defineMacroEvalFn)
	special(sc, "define-macro-expand", "(define-macro-expand name (formals...) body)", "Registers a compile-time macro.", defineMacroExpandFn)

	builtin(sc, "eval", "(eval v)", "Evaluates v (typically produced by quote) in the current scope.", evalFn)
	builtin(sc, "evalstr", "(evalstr s)", "Reads and evaluates s as FUEL source.", evalstrFn)
	builtin(sc, "apply", "(apply fn arglist)", "Calls fn with the elements of arglist as arguments.", applyFn)
	builtin(sc, "map", "(map fn l1 l2 ...)", "Calls fn elementwise over one or more lists.", mapFn)
	builtin(sc, "reduce", "(reduce fn l [seed])", "Left-folds fn over the elements of l, starting from seed or the first element.", reduceFn)
}

func ifFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, arityError(sc, "if", "2 or 3", len(args))
	}
	cond, err := evaluator.Eval(args[0], sc)
	if err != nil {
		return nil, err
	}
	if cond.ToBool() {
		return evaluator.Eval(args[1], sc)
	}
	if len(args) == 3 {
		return evaluator.Eval(args[2], sc)
	}
	return types.Nil(), nil
}

func doFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return evaluator.EvalBody(args, sc)
}

func whileFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) < 1 {
		return nil, arityError(sc, "while", "at least 1", len(args))
	}
	cond, body := args[0], args[1:]
	result := types.Nil()
	for {
		c, err := evaluator.Eval(cond, sc)
		if err != nil {
			return nil, err
		}
		if !c.ToBool() {
			return result, nil
		}
		v, err := evaluator.EvalBody(body, sc)
		if err != nil {
			return nil, err
		}
		if _, ok := v.AsReturn(); ok {
			return v, nil
		}
		result = v
	}
}

func defFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "def", "2", len(args))
	}
	if !args[0].IsSymbol() {
		return nil, types.NewError(sc, "def: first argument must be a symbol")
	}
	v, err := evaluator.Eval(args[1], sc)
	if err != nil {
		return nil, err
	}
	sc.Define(args[0].SymbolName(), v)
	return v, nil
}

func gdefFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "gdef", "2", len(args))
	}
	if !args[0].IsSymbol() {
		return nil, types.NewError(sc, "gdef: first argument must be a symbol")
	}
	v, err := evaluator.Eval(args[1], sc)
	if err != nil {
		return nil, err
	}
	sc.GDef(args[0].SymbolName(), v)
	return v, nil
}

// makeClosure builds the Function wrapper shared by fn/defn/lambda: a new
// child scope is created on every call, linked to defScope (the scope
// captured at definition time, for lexical resolution) and to the caller
// (for the call stack); formals are bound positionally, missing actuals
// bind to nil, and actuals in excess of the formals are exposed as
// _additionalArgs (and the full actual list as a whole is exposed for
// arg/args/argscount).
func makeClosure(name string, formals []string, body []*types.Value, defScope *types.Scope) *types.Function {
	return &types.Function{
		Signature: "(" + name + " " + formalsSignature(formals) + ")",
		Module:    defScope.ModuleName,
		Invoke: func(actuals []*types.Value, caller *types.Scope) (*types.Value, error) {
			child := types.NewChildScope(name, defScope, caller)
			for i, f := range formals {
				if i < len(actuals) {
					child.Define(f, actuals[i])
				} else {
					child.Define(f, types.Nil())
				}
			}
			var extra []*types.Value
			if len(actuals) > len(formals) {
				extra = append(extra, actuals[len(formals):]...)
			}
			child.Define(types.AdditionalArgsName, types.NewList(extra))
			child.Define(allArgsName, types.NewList(append([]*types.Value{}, actuals...)))

			result, err := evaluator.EvalBody(body, child)
			if err != nil {
				return nil, err
			}
			if ret, ok := result.AsReturn(); ok {
				return ret, nil
			}
			return result, nil
		},
	}
}

const allArgsName = "_allArgs"

func formalsSignature(formals []string) string {
	s := ""
	for i, f := range formals {
		if i > 0 {
			s += " "
		}
		s += f
	}
	return s
}

func parseFormals(sc *types.Scope, formalsVal *types.Value) ([]string, error) {
	if !formalsVal.IsList() {
		return nil, types.NewError(sc, "expected a formal argument list")
	}
	var formals []string
	for _, f := range formalsVal.ListItems() {
		if !f.IsSymbol() {
			return nil, types.NewError(sc, "formal arguments must be symbols")
		}
		formals = append(formals, f.SymbolName())
	}
	return formals, nil
}

func fnFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) < 1 {
		return nil, arityError(sc, "fn", "at least 1", len(args))
	}
	formals, err := parseFormals(sc, args[0])
	if err != nil {
		return nil, err
	}
	fn := makeClosure("lambda", formals, args[1:], sc)
	return types.NewFunctionValue(fn), nil
}

func defnFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) < 2 {
		return nil, arityError(sc, "defn", "at least 2", len(args))
	}
	if !args[0].IsSymbol() {
		return nil, types.NewError(sc, "defn: first argument must be a symbol")
	}
	name := args[0].SymbolName()
	formals, err := parseFormals(sc, args[1])
	if err != nil {
		return nil, err
	}
	fn := makeClosure(name, formals, args[2:], sc)
	fnVal := types.NewFunctionValue(fn)
	sc.Define(name, fnVal)
	return fnVal, nil
}

func gdefnFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) < 2 {
		return nil, arityError(sc, "gdefn", "at least 2", len(args))
	}
	if !args[0].IsSymbol() {
		return nil, types.NewError(sc, "gdefn: first argument must be a symbol")
	}
	name := args[0].SymbolName()
	formals, err := parseFormals(sc, args[1])
	if err != nil {
		return nil, err
	}
	fn := makeClosure(name, formals, args[2:], sc)
	fnVal := types.NewFunctionValue(fn)
	sc.GDef(name, fnVal)
	return fnVal, nil
}

// setfFn implements the four syntactic cases of generalized assignment
// described in spec.md §9: a bare symbol, or a (nth k l)/(first l)/(last l)
// target expression, pattern-matched on shape before evaluation.
func setfFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "setf", "2", len(args))
	}
	target, valueExpr := args[0], args[1]
	value, err := evaluator.Eval(valueExpr, sc)
	if err != nil {
		return nil, err
	}

	if target.IsSymbol() {
		if err := sc.SetBang(target.SymbolName(), value); err != nil {
			return nil, err
		}
		return value, nil
	}

	if !target.IsList() || len(target.ListItems()) == 0 {
		return nil, types.NewError(sc, "setf: unsupported target")
	}
	items := target.ListItems()
	head := items[0]
	if !head.IsSymbol() {
		return nil, types.NewError(sc, "setf: unsupported target")
	}

	switch head.SymbolName() {
	case "nth":
		if len(items) != 3 {
			return nil, types.NewError(sc, "setf: (nth k l) expects 2 arguments")
		}
		idxVal, err := evaluator.Eval(items[1], sc)
		if err != nil {
			return nil, err
		}
		listVal, err := evaluator.Eval(items[2], sc)
		if err != nil {
			return nil, err
		}
		if !listVal.IsList() {
			return nil, types.NewError(sc, "setf: (nth k l) target must be a list")
		}
		listItems := listVal.ListItems()
		idx := int(idxVal.ToInt())
		if idx < 0 || idx >= len(listItems) {
			return nil, types.NewError(sc, "setf: index %d out of range", idx)
		}
		listItems[idx] = value
		listVal.SetListItems(listItems)
		return value, nil

	case "first":
		if len(items) != 2 {
			return nil, types.NewError(sc, "setf: (first l) expects 1 argument")
		}
		listVal, err := evaluator.Eval(items[1], sc)
		if err != nil {
			return nil, err
		}
		if !listVal.IsList() || len(listVal.ListItems()) == 0 {
			return nil, types.NewError(sc, "setf: (first l) target must be a non-empty list")
		}
		listItems := listVal.ListItems()
		listItems[0] = value
		listVal.SetListItems(listItems)
		return value, nil

	case "last":
		if len(items) != 2 {
			return nil, types.NewError(sc, "setf: (last l) expects 1 argument")
		}
		listVal, err := evaluator.Eval(items[1], sc)
		if err != nil {
			return nil, err
		}
		if !listVal.IsList() || len(listVal.ListItems()) == 0 {
			return nil, types.NewError(sc, "setf: (last l) target must be a non-empty list")
		}
		listItems := listVal.ListItems()
		listItems[len(listItems)-1] = value
		listVal.SetListItems(listItems)
		return value, nil

	default:
		return nil, types.NewError(sc, "setf: unsupported target %s", head.SymbolName())
	}
}

func quoteFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "quote", "1", len(args))
	}
	return args[0], nil
}

func quasiquoteFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "quasiquote", "1", len(args))
	}
	return quasiExpand(args[0], sc, false)
}

// quasiExpand walks a quasiquote template, replacing (unquote x) with the
// evaluated value of x and splicing (unquote-splicing x) into the
// enclosing list. Per spec.md §4.7 this does not recurse into nested
// quasiquotes - a (quasiquote ...) encountered while walking is left
// completely untouched.
func quasiExpand(tmpl *types.Value, sc *types.Scope, spliceAllowed bool) (*types.Value, error) {
	if !tmpl.IsList() || tmpl.IsNil() {
		return tmpl, nil
	}
	items := tmpl.ListItems()
	if len(items) == 2 && items[0].IsSymbol() && items[0].SymbolName() == "unquote" {
		return evaluator.Eval(items[1], sc)
	}
	if len(items) == 2 && items[0].IsSymbol() && items[0].SymbolName() == "quasiquote" {
		return tmpl, nil
	}

	var out []*types.Value
	for _, it := range items {
		if it.IsList() {
			sub := it.ListItems()
			if len(sub) == 2 && sub[0].IsSymbol() && sub[0].SymbolName() == "unquote-splicing" {
				spliced, err := evaluator.Eval(sub[1], sc)
				if err != nil {
					return nil, err
				}
				if !spliced.IsList() {
					return nil, types.NewError(sc, "unquote-splicing: value must be a list")
				}
				out = append(out, spliced.ListItems()...)
				continue
			}
		}
		expanded, err := quasiExpand(it, sc, true)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return types.NewList(out).WithToken(tmpl.Token()), nil
}

func unquoteOutsideFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return nil, types.NewError(sc, "unquote/unquote-splicing used outside quasiquote")
}

func returnFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) > 1 {
		return nil, arityError(sc, "return", "0 or 1", len(args))
	}
	if len(args) == 0 {
		return types.NewReturn(types.Nil()), nil
	}
	v, err := evaluator.Eval(args[0], sc)
	if err != nil {
		return nil, err
	}
	return types.NewReturn(v), nil
}

func defineMacroEvalFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	full := append([]*types.Value{types.NewSymbol(macro.DefineMacroEval)}, args...)
	name, err := macro.RegisterRuntime(sc, full)
	if err != nil {
		return nil, err
	}
	return types.NewSymbol(name), nil
}

func defineMacroExpandFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	full := append([]*types.Value{types.NewSymbol(macro.DefineMacroExpand)}, args...)
	name, err := macro.RegisterCompileTime(sc, full)
	if err != nil {
		return nil, err
	}
	return types.NewSymbol(name), nil
}

func evalFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "eval", "1", len(args))
	}
	return evaluator.Eval(args[0], sc)
}

func evalstrFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "evalstr", "1", len(args))
	}
	ast, err := reader.ReadScript(args[0].StringValue())
	if err != nil {
		return nil, err
	}
	return evaluator.Eval(ast, sc)
}

func applyFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "apply", "2", len(args))
	}
	if !args[0].IsFunction() {
		return nil, types.NewError(sc, "apply: first argument must be a function")
	}
	if !args[1].IsList() {
		return nil, types.NewError(sc, "apply: second argument must be a list")
	}
	return args[0].FunctionValue().Invoke(args[1].ListItems(), sc)
}

func mapFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) < 2 {
		return nil, arityError(sc, "map", "at least 2", len(args))
	}
	if !args[0].IsFunction() {
		return nil, types.NewError(sc, "map: first argument must be a function")
	}
	fn := args[0].FunctionValue()
	lists := args[1:]
	minLen := -1
	for _, l := range lists {
		if !l.IsList() {
			return nil, types.NewError(sc, "map: arguments after the function must be lists")
		}
		n := len(l.ListItems())
		if minLen == -1 || n < minLen {
			minLen = n
		}
	}
	out := make([]*types.Value, 0, minLen)
	for i := 0; i < minLen; i++ {
		callArgs := make([]*types.Value, len(lists))
		for j, l := range lists {
			callArgs[j] = l.ListItems()[i]
		}
		v, err := fn.Invoke(callArgs, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return types.NewList(out), nil
}

func reduceFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, arityError(sc, "reduce", "2 or 3", len(args))
	}
	if !args[0].IsFunction() {
		return nil, types.NewError(sc, "reduce: first argument must be a function")
	}
	if !args[1].IsList() {
		return nil, types.NewError(sc, "reduce: second argument must be a list")
	}
	fn := args[0].FunctionValue()
	items := args[1].ListItems()

	var acc *types.Value
	rest := items
	if len(args) == 3 {
		acc = args[2]
	} else if len(items) > 0 {
		acc = items[0]
		rest = items[1:]
	} else {
		return types.Nil(), nil
	}

	for _, it := range rest {
		v, err := fn.Invoke([]*types.Value{acc, it}, sc)
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}
