package macro_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maze516/fuel-lang/lang/macro"
	"github.com/maze516/fuel-lang/lang/reader"
	"github.com/maze516/fuel-lang/lang/types"
)

func TestRegisterAndExpandRuntimeMacro(t *testing.T) {
	sc := types.NewGlobalScope("main", nil, nil)
	def, err := reader.ReadScript("(define-macro-eval twice (x) (list x x))")
	require.NoError(t, err)

	name, err := macro.RegisterRuntime(sc, def.ListItems())
	require.NoError(t, err)
	require.Equal(t, "twice", name)

	m, ok := macro.Lookup(sc, "twice")
	require.True(t, ok)
	require.Equal(t, types.MacroRuntimeEvaluate, m.Kind)

	call, err := reader.ReadScript("(twice foo)")
	require.NoError(t, err)
	expanded, err := macro.Expand(call, m)
	require.NoError(t, err)
	require.Equal(t, "(list foo foo)", expanded.String())
}

func TestExpandCompileTimeEvaporatesDefinitions(t *testing.T) {
	sc := types.NewGlobalScope("main", nil, nil)
	ast, err := reader.ReadScript("(do (define-macro-expand inc (x) (+ x 1)) (inc 5))")
	require.NoError(t, err)

	expanded, err := macro.ExpandCompileTime(ast, sc)
	require.NoError(t, err)
	require.Equal(t, "(do (+ 5 1))", expanded.String())
}

func TestExpandCompileTimeFixedPoint(t *testing.T) {
	sc := types.NewGlobalScope("main", nil, nil)
	ast, err := reader.ReadScript(`(do
		(define-macro-expand a (x) (b x))
		(define-macro-expand b (x) (+ x 1))
		(a 10))`)
	require.NoError(t, err)

	expanded, err := macro.ExpandCompileTime(ast, sc)
	require.NoError(t, err)
	require.Equal(t, "(do (+ 10 1))", expanded.String())
}
