package environment

import (
	"github.com/maze516/fuel-lang/lang/types"
)

func registerArithmetic(sc *types.Scope) {
	builtin(sc, "+", "(+ a b ...)", "Adds numbers, concatenates strings or lists.", addFn)
	builtin(sc, "add", "(add a b ...)", "Alias for +.", addFn)
	builtin(sc, "-", "(- a b ...)", "Subtracts; with one operand, negates it.", subFn)
	builtin(sc, "sub", "(sub a b ...)", "Alias for -.", subFn)
	builtin(sc, "*", "(* a b ...)", "Multiplies numbers.", mulFn)
	builtin(sc, "mul", "(mul a b ...)", "Alias for *.", mulFn)
	builtin(sc, "/", "(/ a b ...)", "Divides numbers left to right.", divFn)
	builtin(sc, "div", "(div a b ...)", "Alias for /.", divFn)
	builtin(sc, "%", "(% a b)", "Integer remainder.", modFn)
}

func anyDouble(args []*types.Value) bool {
	for _, a := range args {
		if a.Kind == types.KindDouble {
			return true
		}
	}
	return false
}

func addFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) == 0 {
		return types.NewInt(0), nil
	}
	switch args[0].Kind {
	case types.KindString:
		s := args[0].StringValue()
		for _, a := range args[1:] {
			s += a.Display()
		}
		return types.NewString(s), nil
	case types.KindList:
		items := append([]*types.Value{}, args[0].ListItems()...)
		for _, a := range args[1:] {
			if a.IsList() {
				items = append(items, a.ListItems()...)
			} else {
				items = append(items, a)
			}
		}
		return types.NewList(items), nil
	default:
		return numericFold(args, 0, func(acc, v float64) float64 { return acc + v }, func(acc, v int64) int64 { return acc + v }), nil
	}
}

func subFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) == 0 {
		return nil, arityError(sc, "-", "at least 1", 0)
	}
	if len(args) == 1 {
		if anyDouble(args) {
			return types.NewDouble(-args[0].ToFloat()), nil
		}
		return types.NewInt(-args[0].ToInt()), nil
	}
	if anyDouble(args) {
		acc := args[0].ToFloat()
		for _, a := range args[1:] {
			acc -= a.ToFloat()
		}
		return types.NewDouble(acc), nil
	}
	acc := args[0].ToInt()
	for _, a := range args[1:] {
		acc -= a.ToInt()
	}
	return types.NewInt(acc), nil
}

func mulFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return numericFold(args, 1, func(acc, v float64) float64 { return acc * v }, func(acc, v int64) int64 { return acc * v }), nil
}

func divFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) == 0 {
		return nil, arityError(sc, "/", "at least 1", 0)
	}
	if anyDouble(args) {
		acc := args[0].ToFloat()
		for _, a := range args[1:] {
			d := a.ToFloat()
			if d == 0 {
				return nil, types.NewError(sc, "division by zero")
			}
			acc /= d
		}
		return types.NewDouble(acc), nil
	}
	acc := args[0].ToInt()
	for _, a := range args[1:] {
		d := a.ToInt()
		if d == 0 {
			return nil, types.NewError(sc, "division by zero")
		}
		acc /= d
	}
	return types.NewInt(acc), nil
}

func modFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "%", "2", len(args))
	}
	d := args[1].ToInt()
	if d == 0 {
		return nil, types.NewError(sc, "division by zero")
	}
	return types.NewInt(args[0].ToInt() % d), nil
}

// numericFold folds args into a single numeric Value (seed is the result
// for an empty argument list), applying the contagion rule: the result is
// Double (folded with op) if any operand is Double, Int (folded with intOp
// on int64) otherwise.
func numericFold(args []*types.Value, seed float64, op func(acc, v float64) float64, intOp func(acc, v int64) int64) *types.Value {
	if len(args) == 0 {
		if seed == float64(int64(seed)) {
			return types.NewInt(int64(seed))
		}
		return types.NewDouble(seed)
	}
	if anyDouble(args) {
		acc := args[0].ToFloat()
		for _, a := range args[1:] {
			acc = op(acc, a.ToFloat())
		}
		return types.NewDouble(acc)
	}
	acc := args[0].ToInt()
	for _, a := range args[1:] {
		acc = intOp(acc, a.ToInt())
	}
	return types.NewInt(acc)
}
