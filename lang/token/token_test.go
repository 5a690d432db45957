package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	require.Equal(t, "(", LPAREN.String())
	require.Equal(t, "symbol", SYMBOL.String())
	require.Contains(t, Kind(255).String(), "invalid")
}

func TestMakeAndIsDiscardable(t *testing.T) {
	tok := Make(SYMBOL, "foo", 3, 10, 13)
	require.Equal(t, "foo", tok.Text)
	require.Equal(t, 3, tok.Line)
	require.False(t, tok.IsDiscardable())

	ws := Make(WHITESPACE, " ", 3, 13, 14)
	require.True(t, ws.IsDiscardable())

	comment := Make(COMMENT, "; x", 3, 14, 17)
	require.True(t, comment.IsDiscardable())
}

func TestTokenString(t *testing.T) {
	tok := Make(INT, "42", 1, 0, 2)
	require.Contains(t, tok.String(), "42")
	require.Contains(t, tok.String(), "int")
}
