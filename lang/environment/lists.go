package environment

import (
	"github.com/maze516/fuel-lang/lang/types"
)

func registerLists(sc *types.Scope) {
	builtin(sc, "list", "(list a b ...)", "Constructs a list from its arguments.", listFn)
	builtin(sc, "cons", "(cons a l)", "Prepends a to list l.", consFn)
	builtin(sc, "first", "(first l)", "First element of a list, or first character of a string.", firstFn)
	builtin(sc, "car", "(car l)", "Alias for first.", firstFn)
	builtin(sc, "last", "(last l)", "Last element of a list, or last character of a string.", lastFn)
	builtin(sc, "rest", "(rest l)", "All but the first element of a list, or all but the first character of a string.", restFn)
	builtin(sc, "cdr", "(cdr l)", "Alias for rest.", restFn)
	builtin(sc, "nth", "(nth n l)", "Nth element of a list, or nth character of a string.", nthFn)
	builtin(sc, "len", "(len l)", "Length of a list, or of a string.", lenFn)
	builtin(sc, "append", "(append l1 l2 ...)", "Concatenates lists.", appendFn)
	builtin(sc, "reverse", "(reverse l)", "Reverses a list.", reverseFn)

	special(sc, "push", "(push value list [index])", "Inserts value into list at index (default 0), mutating it in place.", pushFn)
	special(sc, "pop", "(pop list [index])", "Removes and returns the element of list at index (default 0); out-of-range returns nil.", popFn)
}

func listFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	items := make([]*types.Value, len(args))
	copy(items, args)
	return types.NewList(items), nil
}

func consFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "cons", "2", len(args))
	}
	if !args[1].IsList() {
		return nil, types.NewError(sc, "cons: second argument must be a list")
	}
	items := append([]*types.Value{args[0]}, args[1].ListItems()...)
	return types.NewList(items), nil
}

func firstFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "first", "1", len(args))
	}
	switch {
	case args[0].IsString():
		s := args[0].StringValue()
		if len(s) == 0 {
			return types.NewString(""), nil
		}
		return types.NewString(s[:1]), nil
	case args[0].IsList():
		items := args[0].ListItems()
		if len(items) == 0 {
			return types.Nil(), nil
		}
		return items[0], nil
	default:
		return nil, types.NewError(sc, "first: argument must be a list or string")
	}
}

func lastFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "last", "1", len(args))
	}
	switch {
	case args[0].IsString():
		s := args[0].StringValue()
		if len(s) == 0 {
			return types.NewString(""), nil
		}
		return types.NewString(s[len(s)-1:]), nil
	case args[0].IsList():
		items := args[0].ListItems()
		if len(items) == 0 {
			return types.Nil(), nil
		}
		return items[len(items)-1], nil
	default:
		return nil, types.NewError(sc, "last: argument must be a list or string")
	}
}

func restFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "rest", "1", len(args))
	}
	switch {
	case args[0].IsString():
		s := args[0].StringValue()
		if len(s) == 0 {
			return types.NewString(""), nil
		}
		return types.NewString(s[1:]), nil
	case args[0].IsList():
		items := args[0].ListItems()
		if len(items) == 0 {
			return types.NewList(nil), nil
		}
		rest := append([]*types.Value{}, items[1:]...)
		return types.NewList(rest), nil
	default:
		return nil, types.NewError(sc, "rest: argument must be a list or string")
	}
}

func nthFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "nth", "2", len(args))
	}
	n := int(args[0].ToInt())
	switch {
	case args[1].IsString():
		s := args[1].StringValue()
		if n < 0 || n >= len(s) {
			return types.Nil(), nil
		}
		return types.NewString(s[n : n+1]), nil
	case args[1].IsList():
		items := args[1].ListItems()
		if n < 0 || n >= len(items) {
			return types.Nil(), nil
		}
		return items[n], nil
	default:
		return nil, types.NewError(sc, "nth: second argument must be a list or string")
	}
}

func lenFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "len", "1", len(args))
	}
	switch {
	case args[0].IsString():
		return types.NewInt(int64(len(args[0].StringValue()))), nil
	case args[0].IsList():
		return types.NewInt(int64(len(args[0].ListItems()))), nil
	default:
		return nil, types.NewError(sc, "len: argument must be a list or string")
	}
}

func appendFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	var out []*types.Value
	for _, a := range args {
		if !a.IsList() {
			return nil, types.NewError(sc, "append: all arguments must be lists")
		}
		out = append(out, a.ListItems()...)
	}
	return types.NewList(out), nil
}

func reverseFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 || !args[0].IsList() {
		return nil, types.NewError(sc, "reverse: argument must be a list")
	}
	items := args[0].ListItems()
	out := make([]*types.Value, len(items))
	for i, it := range items {
		out[len(items)-1-i] = it
	}
	return types.NewList(out), nil
}

// pushFn is a special form: the value to insert is taken literally
// (unevaluated), the list and optional index are evaluated normally. The
// target list is mutated in place via SetListItems, so every Value sharing
// its backing List sees the insertion.
func pushFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return nil, arityError(sc, "push", "2 or 3", len(args))
	}
	value := args[0]
	listExpr, err := evalArg(args[1], sc)
	if err != nil {
		return nil, err
	}
	if !listExpr.IsList() {
		return nil, types.NewError(sc, "push: second argument must be a list")
	}
	idx := 0
	if len(args) == 3 {
		posVal, err := evalArg(args[2], sc)
		if err != nil {
			return nil, err
		}
		idx = int(posVal.ToInt())
	}
	items := listExpr.ListItems()
	if idx < 0 {
		idx = 0
	}
	if idx > len(items) {
		idx = len(items)
	}
	out := make([]*types.Value, 0, len(items)+1)
	out = append(out, items[:idx]...)
	out = append(out, value)
	out = append(out, items[idx:]...)
	listExpr.SetListItems(out)
	return listExpr, nil
}

// popFn is a special form only so it can reuse evalArg uniformly with push;
// both of its arguments are evaluated normally.
func popFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, arityError(sc, "pop", "1 or 2", len(args))
	}
	listVal, err := evalArg(args[0], sc)
	if err != nil {
		return nil, err
	}
	if !listVal.IsList() {
		return nil, types.NewError(sc, "pop: argument must be a list")
	}
	idx := 0
	if len(args) == 2 {
		posVal, err := evalArg(args[1], sc)
		if err != nil {
			return nil, err
		}
		idx = int(posVal.ToInt())
	}
	items := listVal.ListItems()
	if idx < 0 || idx >= len(items) {
		return types.Nil(), nil
	}
	popped := items[idx]
	out := make([]*types.Value, 0, len(items)-1)
	out = append(out, items[:idx]...)
	out = append(out, items[idx+1:]...)
	listVal.SetListItems(out)
	return popped, nil
}
