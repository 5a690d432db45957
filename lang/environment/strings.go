package environment

import (
	"strconv"
	"strings"

	"github.com/maze516/fuel-lang/lang/types"
)

func registerStrings(sc *types.Scope) {
	builtin(sc, "string", "(string v)", "Converts any value to its string form.", stringFn)
	special(sc, "str", "(str x)", "Stringifies x without evaluating it first.", strFn)
	special(sc, "sym", "(sym x)", "Converts x (unevaluated) to a symbol named by its printed form.", symFn)
	builtin(sc, "trim", "(trim s)", "Trims leading/trailing whitespace.", trimFn)
	builtin(sc, "lower-case", "(lower-case s)", "Lowercases a string.", lowerFn)
	builtin(sc, "upper-case", "(upper-case s)", "Uppercases a string.", upperFn)
	special(sc, "search", "(search needle haystack)", "Index of needle in a string or list haystack, or -1. For a list haystack needle is unevaluated; for a string haystack a non-string needle is evaluated.", searchFn)
	builtin(sc, "replace", "(replace s old new)", "Replaces every occurrence of old with new in s.", replaceFn)
	builtin(sc, "slice", "(slice s start len)", "Substring of s starting at start for len characters; len -1 means to the end.", sliceFn)
	builtin(sc, "parse-integer", "(parse-integer s)", "Parses s as an integer, or Undefined on failure.", parseIntFn)
	builtin(sc, "parse-float", "(parse-float s)", "Parses s as a double, or Undefined on failure.", parseFloatFn)
}

func stringFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "string", "1", len(args))
	}
	return types.NewString(args[0].Display()), nil
}

func strFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "str", "1", len(args))
	}
	return types.NewString(args[0].Display()), nil
}

func symFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "sym", "1", len(args))
	}
	if args[0].IsSymbol() {
		return types.NewSymbol(args[0].SymbolName()), nil
	}
	return types.NewSymbol(args[0].Display()), nil
}

func trimFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "trim", "1", len(args))
	}
	return types.NewString(strings.TrimSpace(args[0].StringValue())), nil
}

func lowerFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "lower-case", "1", len(args))
	}
	return types.NewString(strings.ToLower(args[0].StringValue())), nil
}

func upperFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "upper-case", "1", len(args))
	}
	return types.NewString(strings.ToUpper(args[0].StringValue())), nil
}

func searchFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 2 {
		return nil, arityError(sc, "search", "2", len(args))
	}
	needle := args[0]
	haystack, err := evalArg(args[1], sc)
	if err != nil {
		return nil, err
	}
	switch {
	case haystack.IsString():
		n := needle
		if !n.IsString() {
			n, err = evalArg(needle, sc)
			if err != nil {
				return nil, err
			}
		}
		idx := strings.Index(haystack.StringValue(), n.Display())
		return types.NewInt(int64(idx)), nil
	case haystack.IsList():
		for i, it := range haystack.ListItems() {
			if types.Equal(it, needle) {
				return types.NewInt(int64(i)), nil
			}
		}
		return types.NewInt(-1), nil
	default:
		return nil, types.NewError(sc, "search: second argument must be a string or list")
	}
}

func replaceFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 3 {
		return nil, arityError(sc, "replace", "3", len(args))
	}
	return types.NewString(strings.ReplaceAll(args[0].StringValue(), args[1].StringValue(), args[2].StringValue())), nil
}

func sliceFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 3 {
		return nil, arityError(sc, "slice", "3", len(args))
	}
	s := args[0].StringValue()
	start := int(args[1].ToInt())
	length := int(args[2].ToInt())
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	end := len(s)
	if length >= 0 {
		end = start + length
		if end > len(s) {
			end = len(s)
		}
	}
	return types.NewString(s[start:end]), nil
}

func parseIntFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "parse-integer", "1", len(args))
	}
	i, err := strconv.ParseInt(strings.TrimSpace(args[0].StringValue()), 10, 64)
	if err != nil {
		return types.Undefined(), nil
	}
	return types.NewInt(i), nil
}

func parseFloatFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "parse-float", "1", len(args))
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(args[0].StringValue()), 64)
	if err != nil {
		return types.Undefined(), nil
	}
	return types.NewDouble(f), nil
}
