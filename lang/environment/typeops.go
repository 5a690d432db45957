package environment

import (
	"github.com/maze516/fuel-lang/lang/types"
)

func registerTypeOps(sc *types.Scope) {
	builtin(sc, "type", "(type v)", "Numeric type code of v.", typeFn)
	builtin(sc, "typestr", "(typestr v)", "Type name of v.", typestrFn)
	builtin(sc, "int", "(int v)", "Converts v to an Int; Undefined if a string does not parse.", intFn)
	builtin(sc, "float", "(float v)", "Converts v to a Double; Undefined if a string does not parse.", floatFn)
}

func typeFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "type", "1", len(args))
	}
	return types.NewInt(int64(args[0].TypeCode())), nil
}

func typestrFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "typestr", "1", len(args))
	}
	return types.NewString(args[0].Kind.String()), nil
}

func intFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "int", "1", len(args))
	}
	v := args[0]
	if v.IsString() {
		iv, err := parseIntFn(args, sc)
		if err != nil {
			return nil, err
		}
		return iv, nil
	}
	return types.NewInt(v.ToInt()), nil
}

func floatFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "float", "1", len(args))
	}
	v := args[0]
	if v.IsString() {
		fv, err := parseFloatFn(args, sc)
		if err != nil {
			return nil, err
		}
		return fv, nil
	}
	return types.NewDouble(v.ToFloat()), nil
}
