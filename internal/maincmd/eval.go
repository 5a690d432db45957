package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	fuel "github.com/maze516/fuel-lang"
)

func (c *Cmd) Eval(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return EvalFiles(stdio, c.Trace, c.libPath(), args...)
}

// EvalFiles evaluates each file in its own fresh scope and prints the
// result of its last top-level form to stdout.
func EvalFiles(stdio mainer.Stdio, trace bool, libPath []string, files ...string) error {
	var firstErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			firstErr = err
			continue
		}
		res, err := fuel.Eval(string(src), fuel.Options{
			ModuleName: file,
			Tracing:    trace,
			Output:     stdio.Stdout,
			Input:      stdio.Stdin,
			LibPath:    libPath,
		})
		if err != nil {
			firstErr = fmt.Errorf("%s: %w", file, err)
			continue
		}
		fmt.Fprintln(stdio.Stdout, res.Value.String())
	}
	return printError(stdio, firstErr)
}
