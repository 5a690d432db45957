package debugger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maze516/fuel-lang/lang/debugger"
	"github.com/maze516/fuel-lang/lang/environment"
	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/reader"
	"github.com/maze516/fuel-lang/lang/token"
	"github.com/maze516/fuel-lang/lang/types"
)

func TestNewStopsAtFirstCall(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	sc := environment.MakeDefaultScope("main", &out, nil)
	sc.CurrentToken = &token.Token{Line: 1}
	require.True(t, d.NeedsBreak(sc))
}

func TestAddBreakpointReplacesOnSameLineAndModule(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	d.AddBreakpoint(10, "main", "")
	d.AddBreakpoint(10, "main", "(> x 0)")
	require.Len(t, d.Breakpoints, 1)
	require.Equal(t, "(> x 0)", d.Breakpoints[0].Condition)
}

func TestHitsBreakpointModuleAndLineMatch(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	d.DoRun()
	d.AddBreakpoint(5, "main", "")

	sc := environment.MakeDefaultScope("main", &out, nil)
	require.True(t, d.HitsBreakpoint(5, "main", sc))
	require.False(t, d.HitsBreakpoint(5, "other", sc))
	require.False(t, d.HitsBreakpoint(6, "main", sc))
}

func TestHitsBreakpointWithCondition(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	d.DoRun()
	d.AddBreakpoint(1, "", "(> x 10)")

	sc := environment.MakeDefaultScope("main", &out, nil)
	sc.Define("x", types.NewInt(5))
	require.False(t, d.HitsBreakpoint(1, "main", sc))

	sc.Define("x", types.NewInt(20))
	require.True(t, d.HitsBreakpoint(1, "main", sc))
}

func TestClearBreakpoint(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	d.AddBreakpoint(1, "main", "")
	d.AddBreakpoint(2, "main", "")
	require.True(t, d.ClearBreakpoint(1))
	require.Len(t, d.Breakpoints, 1)
	require.Equal(t, 2, d.Breakpoints[0].Line)
	require.False(t, d.ClearBreakpoint(99))
}

func TestClearAllBreakpoints(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	d.AddBreakpoint(1, "main", "")
	d.AddBreakpoint(2, "main", "")
	d.ClearAllBreakpoints()
	require.Empty(t, d.Breakpoints)
}

func TestDoStepOverStopsAtSameDepthOnly(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	sc := environment.MakeDefaultScope("main", &out, nil)
	d.DoStepOver(sc)

	child := types.NewChildScope("callee", sc, sc)
	child.CurrentToken = &token.Token{Line: 2}
	require.False(t, d.NeedsBreak(child))

	sc.CurrentToken = &token.Token{Line: 3}
	require.True(t, d.NeedsBreak(sc))
}

func TestDoStepOutStopsOnlyAboveStartingDepth(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	sc := environment.MakeDefaultScope("main", &out, nil)
	child := types.NewChildScope("callee", sc, sc)
	child.CurrentToken = &token.Token{Line: 1}

	d.DoStepOut(child)
	require.False(t, d.NeedsBreak(child))

	sc.CurrentToken = &token.Token{Line: 2}
	require.True(t, d.NeedsBreak(sc))
}

func TestInteractiveLoopRunCommandResumes(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("run\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	sc.CurrentToken = &token.Token{Line: 1}
	err := d.InteractiveLoop(sc)
	require.NoError(t, err)
	require.False(t, d.NeedsBreak(sc))
}

func TestInteractiveLoopRestartReturnsErrRestart(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("restart\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	err := d.InteractiveLoop(sc)
	require.Equal(t, debugger.ErrRestart, err)
}

func TestInteractiveLoopEvaluatesExpression(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("(+ 1 2)\nrun\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	require.NoError(t, d.InteractiveLoop(sc))
	require.Contains(t, out.String(), "result=3")
}

func TestInteractiveLoopStepCommandReturnsImmediately(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("step\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	sc.CurrentToken = &token.Token{Line: 1}
	require.NoError(t, d.InteractiveLoop(sc))
	require.True(t, d.NeedsBreak(sc))
}

func TestHasBreakpointAtIgnoresCondition(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, nil)
	d.AddBreakpoint(3, "main", "(> x 10)")
	require.True(t, d.HasBreakpointAt(3, "main"))
	require.False(t, d.HasBreakpointAt(3, "other"))
	require.False(t, d.HasBreakpointAt(4, "main"))
}

func TestInteractiveLoopCodeCommandShowsBreakpointAndCurrentLineMarkers(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("code\nrun\n"))
	d.CommandLineScript = "(def x 1)\n(+ x 1)\n(println x)"
	d.AddBreakpoint(3, "main", "")

	sc := environment.MakeDefaultScope("main", &out, nil)
	sc.CurrentToken = &token.Token{Line: 2}
	require.NoError(t, d.InteractiveLoop(sc))

	listing := out.String()
	require.Contains(t, listing, "-->")
	require.Contains(t, listing, "(+ x 1)")
	require.Contains(t, listing, "B ")
	require.Contains(t, listing, "(println x)")
}

func TestInteractiveLoopFuncsListsUserDefinedFunctionsOnly(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("funcs\nrun\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	forms, err := reader.ReadAll("(defn square (x) (* x x))")
	require.NoError(t, err)
	_, err = evaluator.EvalBody(forms, sc)
	require.NoError(t, err)

	require.NoError(t, d.InteractiveLoop(sc))
	listing := out.String()
	require.Contains(t, listing, "functions:")
	require.Contains(t, listing, "square")
	require.NotContains(t, listing, "\nreduce\n")
}

func TestInteractiveLoopBuiltinsListsPrimitives(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("builtins\nrun\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	require.NoError(t, d.InteractiveLoop(sc))
	require.Contains(t, out.String(), "+")
}

func TestInteractiveLoopLocalsCommand(t *testing.T) {
	var out bytes.Buffer
	d := debugger.New(&out, strings.NewReader("locals\nrun\n"))
	sc := environment.MakeDefaultScope("main", &out, nil)
	sc.Define("x", types.NewInt(42))
	require.NoError(t, d.InteractiveLoop(sc))
	require.Contains(t, out.String(), "x = 42")
}
