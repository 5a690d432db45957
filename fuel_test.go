package fuel_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	fuel "github.com/maze516/fuel-lang"
)

func TestEvalStringReturnsPrintedResult(t *testing.T) {
	res, err := fuel.EvalString("(+ 1 2)")
	require.NoError(t, err)
	require.Equal(t, "3", res)
}

func TestEvalToBufferCapturesOutput(t *testing.T) {
	out, res, err := fuel.EvalToBuffer(`(println "hi") (+ 1 1)`, fuel.Options{})
	require.NoError(t, err)
	require.Equal(t, "hi\n", out)
	require.Equal(t, "2", res.Value.String())
}

func TestEvalReusesPassedScopeAcrossCalls(t *testing.T) {
	out1, res1, err := fuel.EvalToBuffer("(def x 10)", fuel.Options{})
	require.NoError(t, err)
	require.Empty(t, out1)

	out2, res2, err := fuel.EvalToBuffer("(+ x 5)", fuel.Options{Scope: res1.Scope})
	require.NoError(t, err)
	require.Empty(t, out2)
	require.Equal(t, "15", res2.Value.String())
}

func TestEvalPropagatesSyntaxErrors(t *testing.T) {
	_, err := fuel.EvalString("(+ 1 2")
	require.Error(t, err)
}

func TestEvalPropagatesRuntimeErrors(t *testing.T) {
	_, err := fuel.EvalString("(/ 1 0)")
	require.Error(t, err)
}

func TestEvalTracingAccumulatesTraceOutput(t *testing.T) {
	_, res, err := fuel.EvalToBuffer(`(defn f (x) (+ x 1)) (f 2)`, fuel.Options{Tracing: true})
	require.NoError(t, err)
	require.NotEmpty(t, res.Scope.TraceOutput())
}

func TestEvalDebugAttachesDebuggerAndRunCommandFinishes(t *testing.T) {
	out, res, err := fuel.EvalToBuffer(`(defn f (x) (+ x 1)) (f 2)`, fuel.Options{
		Debug: true,
		Input: strings.NewReader("run\n"),
	})
	require.NoError(t, err)
	require.Equal(t, "3", res.Value.String())
	require.Contains(t, out, "FUEL(isp)-DBG>")
}

func TestEvalCompileTimeMacroExpansionCanBeDisabled(t *testing.T) {
	_, _, err := fuel.EvalToBuffer(
		`(do (define-macro-expand inc (x) (+ x 1)) (inc 5))`,
		fuel.Options{DisableCompileTimeMacros: true},
	)
	require.Error(t, err)
}
