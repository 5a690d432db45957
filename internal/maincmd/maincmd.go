// Package maincmd implements the fuel command-line tool: argument parsing
// and command dispatch, kept separate from cmd/fuel/main.go so it can be
// exercised by tests without an os.Exit.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/maze516/fuel-lang/config"
)

const binName = "fuel"

// manifestFile is the project manifest maincmd looks for in the current
// directory, per SPEC_FULL.md's config layer.
const manifestFile = "fuel.yaml"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...] [-- <arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

Interpreter and tool for the FUEL (Fast Useful Embeddable Lisp) language.

The <command> can be one of:
       eval                      Evaluate one or more source files and
                                 print the result of the last form.
       tokenize                  Execute the scanner phase and print
                                 the resulting tokens.
       debug                     Evaluate a file with the interactive
                                 debugger attached.
       repl                      Start an interactive read-eval-print
                                 loop.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.

Valid flag options for the <eval> and <debug> commands are:
       --trace                   Enable call tracing.
       --libpath dir[:dir...]    Library search path for "import"
                                 (also valid for <repl>).

More information on the FUEL language:
       https://github.com/maze516/fuel-lang
`, binName)
)

// Cmd holds the parsed command-line flags and dispatches to the
// corresponding subcommand method.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Trace   bool   `flag:"trace"`
	LibPath string `flag:"libpath"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if (cmdName == "tokenize" || cmdName == "eval" || cmdName == "debug") && len(c.args[1:]) == 0 {
		return fmt.Errorf("%s: at least one file must be provided", cmdName)
	}

	if c.flags["trace"] && cmdName != "eval" && cmdName != "debug" {
		return fmt.Errorf("%s: invalid flag 'trace'", cmdName)
	}
	if c.flags["libpath"] && cmdName != "eval" && cmdName != "debug" && cmdName != "repl" {
		return fmt.Errorf("%s: invalid flag 'libpath'", cmdName)
	}

	return nil
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

// libPath resolves the effective library search path, following the
// precedence described in SPEC_FULL.md's config layer: the FUEL_LIBPATH
// environment variable wins over a fuel.yaml manifest in the current
// directory, which in turn wins over the --libpath flag.
func (c *Cmd) libPath() []string {
	if env, err := config.LoadEnv(); err == nil && len(env.LibPath) > 0 {
		return env.LibPath
	}
	if manifest, err := config.LoadManifest(manifestFile); err == nil && len(manifest.LibPath) > 0 {
		return manifest.LibPath
	}
	if c.LibPath == "" {
		return nil
	}
	return strings.Split(c.LibPath, ":")
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a mainer.Stdio and a slice of strings
// as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
