package environment

import (
	"fmt"

	"github.com/maze516/fuel-lang/lang/types"
)

func registerIO(sc *types.Scope) {
	builtin(sc, "print", "(print a ...)", "Writes its arguments to the output stream.", printFn)
	builtin(sc, "println", "(println a ...)", "Like print, followed by a newline.", printlnFn)
	builtin(sc, "readline", "(readline)", "Reads one line from the input stream.", readlineFn)
}

func printFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	w := sc.Global.Output
	var result string
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(w, " ")
			result += " "
		}
		fmt.Fprint(w, a.Display())
		result += a.Display()
	}
	return types.NewString(result), nil
}

func printlnFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	v, err := printFn(args, sc)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(sc.Global.Output)
	return v, nil
}

func readlineFn(args []*types.Value, sc *types.Scope) (*types.Value, error) {
	if len(args) != 0 {
		return nil, arityError(sc, "readline", "0", len(args))
	}
	if sc.Global.Input == nil {
		return types.Nil(), nil
	}
	line, err := sc.Global.Input.ReadString('\n')
	if err != nil && line == "" {
		return types.Nil(), nil
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return types.NewString(line), nil
}
