package environment

import (
	"sort"
	"strings"
	"time"

	"github.com/maze516/fuel-lang/lang/types"
)

// fuelName and fuelCopyright mirror the identifying strings the original
// interpreter prints from its "fuel"/"copyright" builtins.
const (
	fuelName      = "FUEL -- Fast Useful Embeddable Lisp"
	fuelCopyright = "Copyright (C) FUEL contributors. Distributed under the MIT license."
)

var startTime = time.Now()

func registerIntrospection(sc *types.Scope) {
	builtin(sc, "vars", "(vars)", "Lists the names bound in the current scope.", varsFn)
	builtin(sc, "argscount", "(argscount)", "Number of actual arguments passed to the current function call.", argscountFn)
	builtin(sc, "arg", "(arg n)", "The nth actual argument passed to the current function call.", argFn)
	builtin(sc, "args", "(args)", "All actual arguments passed to the current function call, as a list.", argsFn)
	builtin(sc, "trace", "(trace on?)", "Enables or disables call tracing on the global scope.", traceFn)
	builtin(sc, "gettrace", "(gettrace)", "Returns the accumulated trace buffer.", gettraceFn)
	builtin(sc, "tickcount", "(tickcount)", "Milliseconds elapsed since interpreter start.", tickcountFn)
	builtin(sc, "fuel", "(fuel)", "Returns the interpreter name string; no version number is included.", fuelFn)
	builtin(sc, "copyright", "(copyright)", "Returns the interpreter copyright notice.", copyrightFn)
	builtin(sc, "help", "(help)", "Lists every registered primitive with its documentation.", helpFn)
	builtin(sc, "doc", "(doc [name])", "Documentation for a named primitive, or every primitive if name is omitted.", docFn)
	builtin(sc, "searchdoc", "(searchdoc name)", "Primitives whose name or documentation contains name.", searchdocFn)
	builtin(sc, "nop", "(nop)", "Does nothing; returns nil.", nopFn)
}

func varsFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	names := sc.LocalNames()
	sort.Strings(names)
	out := make([]*types.Value, len(names))
	for i, n := range names {
		out[i] = types.NewSymbol(n)
	}
	return types.NewList(out), nil
}

func allActuals(sc *types.Scope) []*types.Value {
	v, err := sc.Resolve(allArgsName)
	if err != nil || !v.IsList() {
		return nil
	}
	return v.ListItems()
}

func argscountFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.NewInt(int64(len(allActuals(sc)))), nil
}

func argFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "arg", "1", len(args))
	}
	actuals := allActuals(sc)
	n := int(args[0].ToInt())
	if n < 0 || n >= len(actuals) {
		return types.Nil(), nil
	}
	return actuals[n], nil
}

func argsFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.NewList(allActuals(sc)), nil
}

func traceFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "trace", "1", len(args))
	}
	sc.Global.Tracing = args[0].ToBool()
	return types.NewBool(sc.Global.Tracing), nil
}

func gettraceFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.NewString(sc.TraceOutput()), nil
}

func tickcountFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.NewInt(time.Since(startTime).Milliseconds()), nil
}

func fuelFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.NewString(fuelName), nil
}

func copyrightFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.NewString(fuelCopyright), nil
}

func sortedPrimitiveNames(sc *types.Scope) []string {
	names := make([]string, 0, sc.Global.Primitives.Count())
	sc.Global.Primitives.Iter(func(k string, _ *types.Function) bool {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	return names
}

func helpFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	var b strings.Builder
	for _, name := range sortedPrimitiveNames(sc) {
		f, _ := sc.Global.Primitives.Get(name)
		b.WriteString(f.FormattedDoc())
		b.WriteString("\n\n")
	}
	return types.NewString(strings.TrimRight(b.String(), "\n")), nil
}

func docFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) == 0 {
		return helpFn(args, sc)
	}
	if len(args) != 1 {
		return nil, arityError(sc, "doc", "0 or 1", len(args))
	}
	name := args[0].Display()
	f, ok := sc.Global.Primitives.Get(name)
	if !ok {
		return types.NewString("no documentation for " + name), nil
	}
	return types.NewString(f.FormattedDoc()), nil
}

func searchdocFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 1 {
		return nil, arityError(sc, "searchdoc", "1", len(args))
	}
	needle := strings.ToLower(args[0].Display())
	var b strings.Builder
	for _, name := range sortedPrimitiveNames(sc) {
		f, _ := sc.Global.Primitives.Get(name)
		if strings.Contains(strings.ToLower(name), needle) || strings.Contains(strings.ToLower(f.Documentation), needle) {
			b.WriteString(f.FormattedDoc())
			b.WriteString("\n\n")
		}
	}
	return types.NewString(strings.TrimRight(b.String(), "\n")), nil
}

func nopFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	return types.Nil(), nil
}
