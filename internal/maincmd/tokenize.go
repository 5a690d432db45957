package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/maze516/fuel-lang/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles scans each file and prints every token except whitespace
// and comments, with its line number.
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	var firstErr error
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			firstErr = err
			continue
		}
		toks, err := scanner.ScanAll(string(src))
		for _, tok := range toks {
			if tok.IsDiscardable() {
				continue
			}
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s", file, tok.Line, tok.Kind)
			if tok.Text != "" {
				fmt.Fprintf(stdio.Stdout, " %q", tok.Text)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err != nil {
			firstErr = err
		}
	}
	return printError(stdio, firstErr)
}
