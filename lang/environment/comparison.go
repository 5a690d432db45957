package environment

import (
	"strings"

	"github.com/maze516/fuel-lang/lang/types"
)

func registerComparison(sc *types.Scope) {
	builtin(sc, "<", "(< a b)", "Numeric or lexicographic less-than.", ltFn)
	builtin(sc, "<=", "(<= a b)", "Numeric or lexicographic less-or-equal.", leFn)
	builtin(sc, ">", "(> a b)", "Numeric or lexicographic greater-than.", gtFn)
	builtin(sc, ">=", "(>= a b)", "Numeric or lexicographic greater-or-equal.", geFn)
	builtin(sc, "=", "(= a b)", "Alias for ==.", eqFn)
	builtin(sc, "==", "(== a b)", "Equality; elementwise for lists, numeric promotion for numbers.", eqFn)
	builtin(sc, "!=", "(!= a b)", "Negation of ==.", neFn)
	builtin(sc, "equal", "(equal a b)", "Alias for ==.", eqFn)

	builtin(sc, "and", "(and a b ...)", "Evaluates all arguments (no short-circuit); true iff all are truthy.", andFn)
	builtin(sc, "or", "(or a b ...)", "Evaluates all arguments (no short-circuit); true iff any is truthy.", orFn)
	builtin(sc, "not", "(not a)", "Logical negation.", notFn)
	builtin(sc, "!", "(! a)", "Alias for not.", notFn)
}

// compareOrdered returns -1/0/1 comparing a and b: numeric promotion across
// Int/Double, lexicographic for strings.
func compareOrdered(a, b *types.Value) int {
	if (a.Kind == types.KindInt || a.Kind == types.KindDouble) && (b.Kind == types.KindInt || b.Kind == types.KindDouble) {
		x, y := a.ToFloat(), b.ToFloat()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.Display(), b.Display())
}

func ltFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "<", "2", len(args))
	}
	return types.NewBool(compareOrdered(args[0], args[1]) < 0), nil
}

func leFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "<=", "2", len(args))
	}
	return types.NewBool(compareOrdered(args[0], args[1]) <= 0), nil
}

func gtFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, ">", "2", len(args))
	}
	return types.NewBool(compareOrdered(args[0], args[1]) > 0), nil
}

func geFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, ">=", "2", len(args))
	}
	return types.NewBool(compareOrdered(args[0], args[1]) >= 0), nil
}

func eqFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "==", "2", len(args))
	}
	return types.NewBool(types.Equal(args[0], args[1])), nil
}

func neFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	v, err := eqFn(args, sc)
	if err != nil {
		return nil, err
	}
	return types.NewBool(!v.BoolValue()), nil
}

func andFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	for _, a := range args {
		if !a.ToBool() {
			return types.NewBool(false), nil
		}
	}
	return types.NewBool(true), nil
}

func orFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	for _, a := range args {
		if a.ToBool() {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(false), nil
}

func notFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "not", "1", len(args))
	}
	return types.NewBool(!args[0].ToBool()), nil
}
