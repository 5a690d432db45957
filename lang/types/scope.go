package types

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dolthub/swiss"

	"github.com/maze516/fuel-lang/lang/token"
)

// AdditionalArgsName is the reserved binding name a call uses to expose
// actual arguments in excess of a function's formal parameters, per spec.md
// §4.6 ("excess actuals are reachable via (arg n), (args), (argscount)").
const AdditionalArgsName = "_additionalArgs"

// DebuggerHook is the minimal surface the evaluator needs from an attached
// debugger. It is declared here, rather than the evaluator importing the
// debugger package directly, so that the debugger (which must itself
// evaluate expressions typed at its REPL) can depend on the evaluator
// without creating an import cycle.
type DebuggerHook interface {
	// NeedsBreak is asked before every call the evaluator is about to make.
	NeedsBreak(sc *Scope) bool
	// InteractiveLoop runs the debugger's REPL, blocking until the user
	// resumes execution.
	InteractiveLoop(sc *Scope) error
}

// Scope is a named binding frame: a symbol table plus links to the lexical
// parent (for closures), the global scope root, and the calling frame (the
// live call stack, used by the debugger).
type Scope struct {
	Name     string
	bindings *swiss.Map[string, *Value]

	Parent *Scope // lexical parent, for closures ("static"/defining scope)
	Global *Scope // the scope root
	Caller *Scope // the scope that called into this one ("next", toward the caller)
	Callee *Scope // the most recent scope this one called into ("previous", toward the callee)

	ModuleName   string
	CurrentToken *token.Token

	// The following fields are only meaningful on the global scope; child
	// scopes read them through Global.
	Tracing    bool
	traceLines []string
	Output     io.Writer
	Input      *bufio.Reader
	Debugger   DebuggerHook
	Primitives *swiss.Map[string, *Function]
	Macros     *swiss.Map[string, *Macro]
	LibPath    []string
}

// NewGlobalScope creates a fresh scope root with no bindings, primitives or
// macros registered; environment.MakeDefaultScope is responsible for
// populating the primitive table.
func NewGlobalScope(moduleName string, output io.Writer, input io.Reader) *Scope {
	sc := &Scope{
		Name:       "global",
		bindings:   swiss.NewMap[string, *Value](64),
		ModuleName: moduleName,
		Output:     output,
		Primitives: swiss.NewMap[string, *Function](128),
		Macros:     swiss.NewMap[string, *Macro](8),
	}
	if input != nil {
		sc.Input = bufio.NewReader(input)
	}
	sc.Global = sc
	return sc
}

// NewChildScope creates a new frame on function entry: lexically linked to
// defScope (the scope captured by the closure, used for symbol resolution)
// and to callerScope (the live caller, used for the call stack / debugger).
func NewChildScope(name string, defScope, callerScope *Scope) *Scope {
	global := defScope.Global
	sc := &Scope{
		Name:         name,
		bindings:     swiss.NewMap[string, *Value](8),
		Parent:       defScope,
		Global:       global,
		Caller:       callerScope,
		ModuleName:   defScope.ModuleName,
		CurrentToken: callerScope.CurrentToken,
	}
	if callerScope != nil {
		callerScope.Callee = sc
	}
	return sc
}

// Define binds name in the current scope, shadowing any binding of the same
// name visible through the parent chain.
func (sc *Scope) Define(name string, v *Value) {
	sc.bindings.Put(name, v)
}

// GDef binds name directly in the global scope, regardless of where it is
// called from.
func (sc *Scope) GDef(name string, v *Value) {
	sc.Global.bindings.Put(name, v)
}

// Resolve looks up name, searching this scope's bindings then walking the
// lexical parent chain up to the global scope.
func (sc *Scope) Resolve(name string) (*Value, error) {
	for s := sc; s != nil; s = s.Parent {
		if v, ok := s.bindings.Get(name); ok {
			return v, nil
		}
		if s.Parent == nil {
			break
		}
	}
	return nil, NewError(sc, "symbol %s not found", name)
}

// IsBound reports whether name resolves anywhere in the lexical chain.
func (sc *Scope) IsBound(name string) bool {
	_, err := sc.Resolve(name)
	return err == nil
}

// SetBang updates the nearest enclosing binding for name; it is an error if
// no such binding exists (set!/setf on an undefined symbol).
func (sc *Scope) SetBang(name string, v *Value) error {
	for s := sc; s != nil; s = s.Parent {
		if _, ok := s.bindings.Get(name); ok {
			s.bindings.Put(name, v)
			return nil
		}
		if s.Parent == nil {
			break
		}
	}
	return NewError(sc, "symbol %s not found for set", name)
}

// LocalNames returns the names bound directly in this scope (not walking
// the parent chain), for the "vars"/"locals"/"globals" introspection
// primitives and debugger commands. Order is not significant.
func (sc *Scope) LocalNames() []string {
	names := make([]string, 0, sc.bindings.Count())
	sc.bindings.Iter(func(k string, _ *Value) bool {
		names = append(names, k)
		return false
	})
	return names
}

// LocalValue returns the value bound directly in this scope for name, if
// any.
func (sc *Scope) LocalValue(name string) (*Value, bool) {
	return sc.bindings.Get(name)
}

// CallStackDepth is the number of live caller frames between sc and the
// root facade invocation.
func (sc *Scope) CallStackDepth() int {
	depth := 0
	for s := sc.Caller; s != nil; s = s.Caller {
		depth++
	}
	return depth
}

// StackSnapshot renders the call stack from sc up to the root caller, most
// recent call first, for inclusion in a LispError.
func (sc *Scope) StackSnapshot() []string {
	var lines []string
	for s := sc; s != nil; s = s.Caller {
		line := 0
		if s.CurrentToken != nil {
			line = s.CurrentToken.Line
		}
		lines = append(lines, fmt.Sprintf("%s (module %s, line %d)", s.Name, s.ModuleName, line))
	}
	return lines
}

// AppendTrace records a traced call head in the global trace buffer; the
// evaluator calls it only when the global scope's Tracing flag is set.
func (sc *Scope) AppendTrace(head string) {
	g := sc.Global
	g.traceLines = append(g.traceLines, head)
}

// TraceOutput returns the accumulated trace buffer, as retrieved by
// "(gettrace)".
func (sc *Scope) TraceOutput() string {
	return strings.Join(sc.Global.traceLines, "\n")
}

// CurrentLineNo returns the line number of the scope's current token, or 0
// if none is set.
func (sc *Scope) CurrentLineNo() int {
	if sc.CurrentToken == nil {
		return 0
	}
	return sc.CurrentToken.Line
}

// DumpVars writes a human-readable listing of this scope's own bindings to
// w, for the debugger's "locals"/"globals" commands.
func (sc *Scope) DumpVars(w io.Writer) {
	names := sc.LocalNames()
	for _, name := range names {
		v, _ := sc.bindings.Get(name)
		fmt.Fprintf(w, "%s = %s\n", name, v.String())
	}
}
