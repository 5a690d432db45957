package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/mna/mainer"

	fuel "github.com/maze516/fuel-lang"
)

const replPrompt = "FUEL(isp)> "

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(stdio, c.libPath())
}

// Repl runs an interactive read-eval-print loop: each line is read, parsed
// as a complete set of top-level forms and evaluated against a scope that
// persists across iterations, and the printed result of the last form is
// echoed back.
func Repl(stdio mainer.Stdio, libPath []string) error {
	opts := fuel.Options{Output: stdio.Stdout, Input: stdio.Stdin, LibPath: libPath}
	in := bufio.NewReader(stdio.Stdin)

	for {
		fmt.Fprint(stdio.Stdout, replPrompt)
		line, err := in.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return printError(stdio, err)
		}
		if line == "" {
			continue
		}

		res, err := fuel.Eval(line, opts)
		if err != nil {
			fmt.Fprintf(stdio.Stdout, "Exception: %s\n", err)
			continue
		}
		opts.Scope = res.Scope
		if res.Value != nil {
			fmt.Fprintln(stdio.Stdout, res.Value.String())
		}
	}
}
