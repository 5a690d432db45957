// Package debugger implements the interactive breakpoint/stepping REPL
// described in spec.md §4.8, grounded closely on
// original_source/CppLisp/CppLispDebugger/Debugger.cpp - the most complete
// and literal behavioral reference for this component in the whole pack.
package debugger

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/reader"
	"github.com/maze516/fuel-lang/lang/types"
)

// ErrRestart is returned by InteractiveLoop when the user issues the
// "restart" command; the facade catches it and re-runs the program from a
// fresh global scope while keeping the debugger's breakpoints.
var ErrRestart = fmt.Errorf("debugger: restart requested")

// ErrExit is not returned by InteractiveLoop: its "exit"/"quit"/"q"
// commands resume the running program the same way "run" does.
var ErrExit = fmt.Errorf("debugger: exit requested")

// Breakpoint is a (line, module, optional condition) triple. Equality on
// (line, module) replaces an existing entry, per spec.md §3.
type Breakpoint struct {
	Line      int
	Module    string
	Condition string
}

// Debugger holds the breakpoint table and the current step predicate. It
// implements types.DebuggerHook.
type Debugger struct {
	Output io.Writer
	Input  *bufio.Reader

	Breakpoints []Breakpoint

	running      bool
	stopPredicate func(sc *types.Scope) bool

	// CommandLineScript is the source text listed by "code"; when it is
	// empty, "code" prints only the current module and line.
	CommandLineScript string
}

// New creates a Debugger with no breakpoints, stopped at the very first
// call.
func New(output io.Writer, input io.Reader) *Debugger {
	d := &Debugger{Output: output}
	if input != nil {
		d.Input = bufio.NewReader(input)
	}
	d.DoStep()
	return d
}

// NeedsBreak reports whether the evaluator should enter the interactive
// loop before its next call, per spec.md §4.6/§4.8.
func (d *Debugger) NeedsBreak(sc *types.Scope) bool {
	if d.running && d.stopPredicate != nil && d.stopPredicate(sc) {
		d.running = false
		return true
	}
	return d.HitsBreakpoint(sc.CurrentLineNo(), sc.ModuleName, sc)
}

// HitsBreakpoint reports whether a breakpoint fires for (lineNo, moduleName)
// in sc: the module must be unset or match, the line must match, and any
// condition must evaluate truthy in sc.
func (d *Debugger) HitsBreakpoint(lineNo int, moduleName string, sc *types.Scope) bool {
	for _, bp := range d.Breakpoints {
		if bp.Module != "" && bp.Module != moduleName {
			continue
		}
		if bp.Line != lineNo {
			continue
		}
		if bp.Condition == "" {
			return true
		}
		ast, err := reader.ReadScript(bp.Condition)
		if err != nil {
			fmt.Fprintf(d.Output, "Error: bad condition for line %d: %s\n", bp.Line, bp.Condition)
			return false
		}
		result, err := evaluator.Eval(ast, sc)
		if err != nil {
			fmt.Fprintf(d.Output, "Error: bad condition for line %d: %s\n", bp.Line, bp.Condition)
			return false
		}
		return result.ToBool()
	}
	return false
}

// HasBreakpointAt reports whether a breakpoint is registered at
// (lineNo, moduleName), ignoring any condition - used by showCode's source
// listing to flag breakpointed lines regardless of whether their condition
// currently holds.
func (d *Debugger) HasBreakpointAt(lineNo int, moduleName string) bool {
	for _, bp := range d.Breakpoints {
		if bp.Module != "" && bp.Module != moduleName {
			continue
		}
		if bp.Line == lineNo {
			return true
		}
	}
	return false
}

// AddBreakpoint adds or replaces (by module+line) a breakpoint.
func (d *Debugger) AddBreakpoint(line int, module, condition string) {
	for i, bp := range d.Breakpoints {
		if bp.Line == line && bp.Module == module {
			d.Breakpoints[i] = Breakpoint{line, module, condition}
			return
		}
	}
	d.Breakpoints = append(d.Breakpoints, Breakpoint{line, module, condition})
}

// ClearBreakpoint removes the 1-based nth breakpoint (as listed by
// "list"/"t"). Reports whether an entry existed at that index.
func (d *Debugger) ClearBreakpoint(no int) bool {
	idx := no - 1
	if idx < 0 || idx >= len(d.Breakpoints) {
		return false
	}
	d.Breakpoints = append(d.Breakpoints[:idx], d.Breakpoints[idx+1:]...)
	return true
}

// ClearAllBreakpoints empties the breakpoint table.
func (d *Debugger) ClearAllBreakpoints() { d.Breakpoints = nil }

// DoStep arranges for the next call, at any depth, to stop.
func (d *Debugger) DoStep() {
	d.stopPredicate = func(*types.Scope) bool { return true }
	d.running = true
}

// DoStepOver arranges to stop once the call stack is no deeper than it is
// right now in sc.
func (d *Debugger) DoStepOver(sc *types.Scope) {
	depth := sc.CallStackDepth()
	d.stopPredicate = func(s *types.Scope) bool { return s.CallStackDepth() <= depth }
	d.running = true
}

// DoStepOut arranges to stop once the call stack is shallower than it is
// right now in sc.
func (d *Debugger) DoStepOut(sc *types.Scope) {
	depth := sc.CallStackDepth()
	d.stopPredicate = func(s *types.Scope) bool { return s.CallStackDepth() < depth }
	d.running = true
}

// DoRun disables stepping; only an explicit breakpoint stops execution.
func (d *Debugger) DoRun() {
	d.stopPredicate = nil
	d.running = false
}

// InteractiveLoop runs the debugger's command REPL against sc (the scope
// where a break just fired), blocking on the input stream until the user
// resumes with run/step/over/out, or requests a restart.
func (d *Debugger) InteractiveLoop(sc *types.Scope) error {
	if sc.CurrentToken != nil {
		fmt.Fprintf(d.Output, "--> line=%d module=%s\n", sc.CurrentLineNo(), sc.ModuleName)
	}
	current := sc
	for {
		fmt.Fprint(d.Output, dbgPrompt)
		line, err := d.readLine()
		if err != nil {
			return nil
		}
		cmd := strings.TrimSpace(line)
		lower := strings.ToLower(cmd)

		switch {
		case cmd == "":
			continue
		case matches(lower, "help", "h"):
			d.showHelp()
		case lower == "about":
			fmt.Fprintln(d.Output, fuelName)
		case lower == "version" || lower == "ver":
			fmt.Fprintln(d.Output, fuelName+" debugger")
		case lower == "funcs":
			d.dumpFuncs(current)
		case lower == "macros":
			d.dumpMacros(sc)
		case lower == "builtins":
			d.dumpBuiltins(sc)
		case strings.HasPrefix(lower, "searchdoc"):
			d.docCommand(current, "searchdoc", strings.TrimSpace(cmd[len("searchdoc"):]))
		case strings.HasPrefix(lower, "doc"):
			d.docCommand(current, "doc", strings.TrimSpace(cmd[len("doc"):]))
		case lower == "modules":
			d.dumpModules(sc)
		case strings.HasPrefix(lower, "clear"):
			d.clearCommand(strings.TrimSpace(cmd[len("clear"):]))
		case lower == "stack" || matches(lower, "stack", "k"):
			d.dumpStack(sc)
		case lower == "code" || matches(lower, "code", "c"):
			d.showCode(current)
		case lower == "list" || matches(lower, "list", "t"):
			d.showBreakpoints()
		case strings.HasPrefix(lower, "break ") || strings.HasPrefix(lower, "b "):
			d.breakCommand(cmd, current.ModuleName)
		case lower == "up" || matches(lower, "up", "u"):
			if current.Caller != nil {
				current = current.Caller
			}
		case lower == "down" || matches(lower, "down", "d"):
			if current.Callee != nil {
				current = current.Callee
			}
		case lower == "step" || lower == "s":
			d.DoStep()
			return nil
		case lower == "over" || lower == "v":
			d.DoStepOver(current)
			return nil
		case lower == "out" || lower == "o":
			d.DoStepOut(current)
			return nil
		case lower == "run" || lower == "r":
			d.DoRun()
			return nil
		case lower == "locals" || matches(lower, "locals", "l"):
			current.DumpVars(d.Output)
		case lower == "globals" || matches(lower, "globals", "g"):
			sc.Global.DumpVars(d.Output)
		case lower == "restart":
			return ErrRestart
		case lower == "exit" || lower == "quit" || lower == "q":
			d.DoRun()
			return nil
		default:
			d.evalCommand(current, cmd)
		}
	}
}

const (
	prompt    = "FUEL(isp)> "
	dbgPrompt = "FUEL(isp)-DBG> "
	fuelName  = "FUEL -- Fast Useful Embeddable Lisp"
)

func matches(lower, full, short string) bool {
	return lower == full || lower == short
}

func (d *Debugger) readLine() (string, error) {
	if d.Input == nil {
		return "", io.EOF
	}
	return d.Input.ReadString('\n')
}

func (d *Debugger) showHelp() {
	fmt.Fprintln(d.Output, "help/h version about code/c stack/k up/u down/d run/r step/s over/v out/o "+
		"break/b clear list/t locals/l globals/g modules builtins funcs macros doc searchdoc restart exit/quit/q")
}

func (d *Debugger) showBreakpoints() {
	fmt.Fprintln(d.Output, "Breakpoints:")
	for i, bp := range d.Breakpoints {
		cond := ""
		if bp.Condition != "" {
			cond = " if " + bp.Condition
		}
		fmt.Fprintf(d.Output, "%d: %s:%d%s\n", i+1, bp.Module, bp.Line, cond)
	}
}

func (d *Debugger) breakCommand(cmd, currentModule string) {
	rest := strings.TrimSpace(cmd[strings.IndexByte(cmd, ' ')+1:])
	fields := strings.SplitN(rest, " ", 2)
	moduleName := currentModule
	lineSpec := fields[0]
	if idx := strings.IndexByte(lineSpec, ':'); idx >= 0 {
		moduleName = lineSpec[:idx]
		lineSpec = lineSpec[idx+1:]
	}
	line, err := strconv.Atoi(lineSpec)
	if err != nil {
		fmt.Fprintf(d.Output, "bad breakpoint line: %s\n", lineSpec)
		return
	}
	condition := ""
	if len(fields) > 1 {
		condition = strings.TrimSpace(fields[1])
	}
	d.AddBreakpoint(line, moduleName, condition)
}

func (d *Debugger) clearCommand(rest string) {
	if rest == "" {
		d.ClearAllBreakpoints()
		fmt.Fprintln(d.Output, "all breakpoints cleared")
		return
	}
	n, err := strconv.Atoi(rest)
	if err != nil || !d.ClearBreakpoint(n) {
		fmt.Fprintf(d.Output, "no such breakpoint: %s\n", rest)
	}
}

func (d *Debugger) dumpStack(sc *types.Scope) {
	for _, line := range sc.StackSnapshot() {
		fmt.Fprintln(d.Output, line)
	}
}

// showCode prints the current module's source, one line per source line,
// with a "B " marker on lines carrying a breakpoint and a "-->" marker on
// the current line - matching CppLispDebugger's ShowSourceCode.
func (d *Debugger) showCode(sc *types.Scope) {
	if d.CommandLineScript == "" {
		fmt.Fprintf(d.Output, "module=%s line=%d\n", sc.ModuleName, sc.CurrentLineNo())
		return
	}
	currentLine := sc.CurrentLineNo()
	lines := strings.Split(d.CommandLineScript, "\n")
	for i, text := range lines {
		lineNo := i + 1
		breakMark := "  "
		if d.HasBreakpointAt(lineNo, sc.ModuleName) {
			breakMark = "B "
		}
		mark := ""
		if currentLine == lineNo {
			mark = "-->"
		}
		fmt.Fprintf(d.Output, "%3d %2s %3s %s\n", lineNo, breakMark, mark, text)
	}
}

func (d *Debugger) dumpBuiltins(sc *types.Scope) {
	names := make([]string, 0, sc.Global.Primitives.Count())
	sc.Global.Primitives.Iter(func(k string, _ *types.Function) bool {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	fmt.Fprintln(d.Output, "builtins:")
	for _, n := range names {
		fmt.Fprintln(d.Output, n)
	}
}

// dumpFuncs lists user-defined functions (defn/fn/lambda bindings), walking
// sc's lexical chain, as distinct from dumpBuiltins's primitive listing -
// every registered primitive has Builtin set, so filtering the primitive
// table by that flag alone can never separate the two.
func (d *Debugger) dumpFuncs(sc *types.Scope) {
	seen := map[string]bool{}
	var names []string
	for s := sc; s != nil; s = s.Parent {
		for _, name := range s.LocalNames() {
			if seen[name] {
				continue
			}
			seen[name] = true
			if v, ok := s.LocalValue(name); ok && v.IsFunction() && !v.FunctionValue().Builtin {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	fmt.Fprintln(d.Output, "functions:")
	for _, n := range names {
		fmt.Fprintln(d.Output, n)
	}
}

func (d *Debugger) dumpMacros(sc *types.Scope) {
	names := make([]string, 0, sc.Global.Macros.Count())
	sc.Global.Macros.Iter(func(k string, _ *types.Macro) bool {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	fmt.Fprintln(d.Output, "macros:")
	for _, n := range names {
		fmt.Fprintln(d.Output, n)
	}
}

func (d *Debugger) dumpModules(sc *types.Scope) {
	seen := map[string]bool{}
	var names []string
	for s := sc; s != nil; s = s.Caller {
		if s.ModuleName != "" && !seen[s.ModuleName] {
			seen[s.ModuleName] = true
			names = append(names, s.ModuleName)
		}
	}
	sort.Strings(names)
	fmt.Fprintln(d.Output, "modules:")
	for _, n := range names {
		fmt.Fprintln(d.Output, n)
	}
}

func (d *Debugger) docCommand(sc *types.Scope, name, arg string) {
	ast, err := reader.ReadScript(fmt.Sprintf("(%s %s)", name, quoteArgOrEmpty(arg)))
	if err != nil {
		fmt.Fprintln(d.Output, err)
		return
	}
	result, err := evaluator.Eval(ast, sc)
	if err != nil {
		fmt.Fprintln(d.Output, err)
		return
	}
	fmt.Fprintln(d.Output, result.Display())
}

func quoteArgOrEmpty(arg string) string {
	if arg == "" {
		return ""
	}
	return "'" + arg
}

func (d *Debugger) evalCommand(sc *types.Scope, cmd string) {
	ast, err := reader.ReadScript(cmd)
	if err != nil {
		fmt.Fprintln(d.Output, "Exception: "+err.Error())
		return
	}
	result, err := evaluator.Eval(ast, sc)
	if err != nil {
		fmt.Fprintln(d.Output, "Exception: "+err.Error())
		return
	}
	fmt.Fprintf(d.Output, "result=%s\n", result.String())
}
