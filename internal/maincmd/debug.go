package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	fuel "github.com/maze516/fuel-lang"
)

func (c *Cmd) Debug(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return DebugFiles(stdio, c.Trace, c.libPath(), args...)
}

// DebugFiles evaluates each file with the interactive debugger attached,
// reading commands from stdio.Stdin.
func DebugFiles(stdio mainer.Stdio, trace bool, libPath []string, files ...string) error {
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
			Debug:      true,
		})
		if err != nil {
			firstErr = fmt.Errorf("%s: %w", file, err)
			continue
		}
		fmt.Fprintln(stdio.Stdout, res.Value.String())
	}
	return printError(stdio, firstErr)
}
