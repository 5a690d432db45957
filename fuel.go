// Package fuel is the embeddable Lisp interpreter's facade: it composes
// the tokenizer, reader, optional compile-time macro expander and
// evaluator into the single eval(source) entry point described in
// spec.md §6.
package fuel

import (
	"bytes"
	"io"
	"os"

	"github.com/maze516/fuel-lang/lang/debugger"
	"github.com/maze516/fuel-lang/lang/environment"
	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/macro"
	"github.com/maze516/fuel-lang/lang/reader"
	"github.com/maze516/fuel-lang/lang/types"
)

// Options configures a single Eval call. A zero-value Options evaluates
// source against a fresh global scope, with compile-time macro expansion
// enabled, tracing off, stdout/stdin as the I/O streams, and no debugger
// attached.
type Options struct {
	// Scope, if non-nil, is evaluated against directly instead of a fresh
	// global scope - callers that want bindings from a previous Eval call
	// to persist pass the Scope they got back.
	Scope *types.Scope

	ModuleName string

	// DisableCompileTimeMacros skips the compile-time macro expansion
	// pre-pass; runtime macros still work regardless.
	DisableCompileTimeMacros bool

	Tracing bool
	Output  io.Writer
	Input   io.Reader

	// Debug attaches an interactive debugger (breakpoints/stepping) to the
	// scope for the duration of this Eval call.
	Debug bool

	LibPath []string
}

// Result is what Eval returns: the value the program evaluated to, and the
// scope it ran in (so a caller can thread bindings into a subsequent Eval
// call, e.g. a REPL).
type Result struct {
	Value *types.Value
	Scope *types.Scope
}

// Eval tokenizes, reads, (if enabled) expands compile-time macros, then
// evaluates source, returning the resulting value and the scope it ran in.
func Eval(source string, opts Options) (Result, error) {
	sc := opts.Scope
	if sc == nil {
		output := opts.Output
		if output == nil {
			output = os.Stdout
		}
		input := opts.Input
		if input == nil {
			input = os.Stdin
		}
		moduleName := opts.ModuleName
		if moduleName == "" {
			moduleName = "main"
		}
		sc = environment.MakeDefaultScope(moduleName, output, input)
		sc.LibPath = opts.LibPath
	}
	sc.Tracing = sc.Tracing || opts.Tracing

	dbgInput := opts.Input
	if dbgInput == nil {
		dbgInput = os.Stdin
	}

	var dbg *debugger.Debugger
	if opts.Debug {
		dbg = debugger.New(sc.Output, dbgInput)
		dbg.CommandLineScript = source
		sc.Debugger = dbg
		defer func() { sc.Debugger = nil }()
	}

	forms, err := reader.ReadAll(source)
	if err != nil {
		return Result{Scope: sc}, err
	}

restart:
	result := types.Nil()
	for _, form := range forms {
		if !opts.DisableCompileTimeMacros {
			form, err = macro.ExpandCompileTime(form, sc)
			if err != nil {
				return Result{Scope: sc}, err
			}
			if form == nil {
				// a top-level compile-time macro definition evaporated
				continue
			}
		}
		result, err = evaluator.Eval(form, sc)
		if err != nil {
			if dbg != nil && err == debugger.ErrRestart {
				breakpoints := dbg.Breakpoints
				sc = environment.MakeDefaultScope(sc.ModuleName, sc.Output, dbgInput)
				sc.LibPath = opts.LibPath
				dbg = debugger.New(sc.Output, dbgInput)
				dbg.Breakpoints = breakpoints
				dbg.CommandLineScript = source
				sc.Debugger = dbg
				goto restart
			}
			return Result{Value: result, Scope: sc}, err
		}
	}
	return Result{Value: result, Scope: sc}, nil
}

// EvalString is a convenience wrapper over Eval that discards the scope and
// returns the printed form of the result, matching what a one-shot
// command-line evaluation reports.
func EvalString(source string) (string, error) {
	res, err := Eval(source, Options{})
	if err != nil {
		return "", err
	}
	return res.Value.String(), nil
}

// EvalToBuffer evaluates source with output captured in a buffer instead of
// going to the real stdout, returning the captured output alongside the
// result.
func EvalToBuffer(source string, opts Options) (string, Result, error) {
	var buf bytes.Buffer
	opts.Output = &buf
	res, err := Eval(source, opts)
	return buf.String(), res, err
}
