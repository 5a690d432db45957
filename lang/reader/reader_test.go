package reader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadScriptAtom(t *testing.T) {
	v, err := ReadScript("42")
	require.NoError(t, err)
	require.Equal(t, int64(42), v.IntValue())
}

func TestReadScriptList(t *testing.T) {
	v, err := ReadScript("(+ 1 2)")
	require.NoError(t, err)
	require.True(t, v.IsList())
	require.Len(t, v.ListItems(), 3)
}

func TestReadScriptRejectsMultipleForms(t *testing.T) {
	_, err := ReadScript("1 2")
	require.Error(t, err)
	require.Contains(t, err.Error(), "script too long")
}

func TestReadScriptUnmatchedParens(t *testing.T) {
	_, err := ReadScript("(+ 1 2")
	require.Error(t, err)

	_, err = ReadScript(")")
	require.Error(t, err)
}

func TestReaderExpandsShorthands(t *testing.T) {
	cases := map[string]string{
		"'x":  "quote",
		"`x":  "quasiquote",
		",x":  "unquote",
		",@x": "unquote-splicing",
	}
	for src, head := range cases {
		v, err := ReadScript(src)
		require.NoError(t, err, src)
		require.True(t, v.IsList(), src)
		items := v.ListItems()
		require.Len(t, items, 2, src)
		require.True(t, items[0].IsSymbol(), src)
		require.Equal(t, head, items[0].SymbolName(), src)
	}
}

func TestReadAllMultipleForms(t *testing.T) {
	vals, err := ReadAll("1 2 (+ 1 2)")
	require.NoError(t, err)
	require.Len(t, vals, 3)
	require.Equal(t, int64(1), vals[0].IntValue())
	require.Equal(t, int64(2), vals[1].IntValue())
	require.True(t, vals[2].IsList())
}

func TestReadAllEmptySource(t *testing.T) {
	vals, err := ReadAll("   ; just a comment\n")
	require.NoError(t, err)
	require.Empty(t, vals)
}

func TestReadScriptLiterals(t *testing.T) {
	v, err := ReadScript(`"hello"`)
	require.NoError(t, err)
	require.True(t, v.IsString())
	require.Equal(t, "hello", v.StringValue())

	v, err = ReadScript("#t")
	require.NoError(t, err)
	require.True(t, v.ToBool())

	v, err = ReadScript("nil")
	require.NoError(t, err)
	require.True(t, v.IsNil())

	v, err = ReadScript("2.5")
	require.NoError(t, err)
	require.Equal(t, 2.5, v.DoubleValue())
}

func TestReadScriptRetainsToken(t *testing.T) {
	v, err := ReadScript("(foo)")
	require.NoError(t, err)
	require.NotNil(t, v.Token())
	require.Equal(t, 1, v.Token().Line)
}
