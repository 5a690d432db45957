package environment_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maze516/fuel-lang/lang/environment"
	"github.com/maze516/fuel-lang/lang/evaluator"
	"github.com/maze516/fuel-lang/lang/reader"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0600)
}

// evalOut evaluates src against a fresh default scope and returns the
// result of the last top-level form together with everything written to
// the output stream.
func evalOut(t *testing.T, src string) (string, string) {
	t.Helper()
	var buf bytes.Buffer
	sc := environment.MakeDefaultScope("test", &buf, strings.NewReader(""))
	forms, err := reader.ReadAll(src)
	require.NoError(t, err)
	result, err := evaluator.EvalBody(forms, sc)
	require.NoError(t, err)
	return result.String(), buf.String()
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	sc := environment.MakeDefaultScope("test", &bytes.Buffer{}, nil)
	forms, err := reader.ReadAll(src)
	require.NoError(t, err)
	_, err = evaluator.EvalBody(forms, sc)
	return err
}

func TestArithmeticContagion(t *testing.T) {
	res, _ := evalOut(t, "(+ 1 2 3)")
	require.Equal(t, "6", res)

	res, _ = evalOut(t, "(+ 1 2.5)")
	require.Equal(t, "3.500000", res)

	res, _ = evalOut(t, "(- 5)")
	require.Equal(t, "-5", res)
}

func TestArithmeticStringAndListConcat(t *testing.T) {
	res, _ := evalOut(t, `(+ "ab" "cd")`)
	require.Equal(t, `"abcd"`, res)

	res, _ = evalOut(t, "(+ (list 1 2) (list 3 4))")
	require.Equal(t, "(1 2 3 4)", res)
}

func TestDivisionByZeroErrors(t *testing.T) {
	require.Error(t, evalErr(t, "(/ 1 0)"))
}

func TestComparisonAndLogic(t *testing.T) {
	res, _ := evalOut(t, `(< 1 2)`)
	require.Equal(t, "#t", res)

	res, _ = evalOut(t, `(and #t #f)`)
	require.Equal(t, "#f", res)

	res, _ = evalOut(t, `(or #f #t)`)
	require.Equal(t, "#t", res)
}

func TestPushIsLiteralArgument(t *testing.T) {
	// z is never bound; push must not evaluate its first argument.
	res, _ := evalOut(t, "(def l (list 1 2)) (push z l) l")
	require.Equal(t, "(z 1 2)", res)
}

func TestPopOutOfRangeReturnsNil(t *testing.T) {
	res, _ := evalOut(t, "(def l (list 1)) (pop l 5)")
	require.Equal(t, "NIL", res)
}

func TestStrAndSymAreUnevaluated(t *testing.T) {
	res, _ := evalOut(t, "(str abc)")
	require.Equal(t, `"abc"`, res)

	res, _ = evalOut(t, "(sym abc)")
	require.Equal(t, "abc", res)
}

func TestSearchStringVsList(t *testing.T) {
	res, _ := evalOut(t, `(search "b" "abc")`)
	require.Equal(t, "1", res)

	res, _ = evalOut(t, "(def l (list 1 2 3)) (search 2 l)")
	require.Equal(t, "1", res)
}

func TestSliceToEndWithNegativeLength(t *testing.T) {
	res, _ := evalOut(t, `(slice "hello" 1 -1)`)
	require.Equal(t, `"ello"`, res)
}

func TestSetfVariants(t *testing.T) {
	res, _ := evalOut(t, "(def x 1) (setf x 2) x")
	require.Equal(t, "2", res)

	res, _ = evalOut(t, "(def l (list 1 2 3)) (setf (nth 1 l) 9) l")
	require.Equal(t, "(1 9 3)", res)

	res, _ = evalOut(t, "(def l (list 1 2 3)) (setf (first l) 9) l")
	require.Equal(t, "(9 2 3)", res)

	res, _ = evalOut(t, "(def l (list 1 2 3)) (setf (last l) 9) l")
	require.Equal(t, "(1 2 9)", res)
}

func TestQuasiquoteDoesNotRecurseIntoNested(t *testing.T) {
	res, _ := evalOut(t, "(def x 5) `(a ,x `(b ,x))")
	require.Equal(t, "(a 5 (quasiquote (b (unquote x))))", res)
}

func TestDefnAndArgIntrospection(t *testing.T) {
	_, out := evalOut(t, `
		(defn f (x)
		  (do (println (argscount)) (println (arg 0)) (println (arg 1))
		      (println (nth 1 _additionalArgs))
		      (+ x x)))
		(f 5 6 7)`)
	require.Equal(t, "3\n5\n6\n7\n", out)
}

func TestReduceSeedOrFirstElement(t *testing.T) {
	res, _ := evalOut(t, "(reduce (fn (a b) (+ a b)) (list 1 2 3))")
	require.Equal(t, "6", res)

	res, _ = evalOut(t, "(reduce (fn (a b) (+ a b)) (list 1 2 3) 10)")
	require.Equal(t, "16", res)
}

func TestTrueFalseGlobalsMatchBoolLiterals(t *testing.T) {
	res, _ := evalOut(t, "(if false 1 2)")
	require.Equal(t, "2", res)

	res, _ = evalOut(t, "(if true 1 2)")
	require.Equal(t, "1", res)

	res, _ = evalOut(t, "(== true #t)")
	require.Equal(t, "#t", res)
}

func TestImportFallsBackToEnvLibPathWhenScopeHasNone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir+"/greet.fuel", "(defn hello () \"hi\")"))
	t.Setenv("FUEL_LIBPATH", dir)

	var buf bytes.Buffer
	sc := environment.MakeDefaultScope("test", &buf, nil)

	forms, err := reader.ReadAll("(import \"greet\") (hello)")
	require.NoError(t, err)
	result, err := evaluator.EvalBody(forms, sc)
	require.NoError(t, err)
	require.Equal(t, `"hi"`, result.String())
}

func TestImportLoadsModuleFromLibPath(t *testing.T) {
	dir := t.TempDir()
	modulePath := dir + "/greet.fuel"
	require.NoError(t, writeFile(modulePath, "(defn hello () \"hi\")"))

	var buf bytes.Buffer
	sc := environment.MakeDefaultScope("test", &buf, nil)
	sc.LibPath = []string{dir}

	forms, err := reader.ReadAll("(import \"greet\") (hello)")
	require.NoError(t, err)
	result, err := evaluator.EvalBody(forms, sc)
	require.NoError(t, err)
	require.Equal(t, `"hi"`, result.String())
}
