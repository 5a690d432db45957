package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilEqualsEmptyList(t *testing.T) {
	require.True(t, Nil().IsNil())
	require.True(t, NewList(nil).IsNil())
	require.False(t, NewList([]*Value{NewInt(1)}).IsNil())
}

func TestEmptyListPrintsDistinctFromNil(t *testing.T) {
	require.Equal(t, "NIL", Nil().String())
	require.Equal(t, "()", NewList(nil).String())
}

func TestStringPrintingQuotesOnlyInString(t *testing.T) {
	s := NewString("hi")
	require.Equal(t, `"hi"`, s.String())
	require.Equal(t, "hi", s.Display())
}

func TestDoublePrintsFixedSixDigits(t *testing.T) {
	require.Equal(t, "2.300000", NewDouble(2.3).String())
}

func TestBoolLiteralsPrintLiterally(t *testing.T) {
	require.Equal(t, "#t", NewBool(true).String())
	require.Equal(t, "#f", NewBool(false).String())
}

func TestToBoolTruthiness(t *testing.T) {
	require.False(t, Nil().ToBool())
	require.False(t, NewBool(false).ToBool())
	require.True(t, NewBool(true).ToBool())
	require.True(t, NewInt(0).ToBool()) // zero is truthy, unlike C-family languages
	require.True(t, NewString("").ToBool())
}

func TestEqualPromotesNumericKinds(t *testing.T) {
	require.True(t, Equal(NewInt(2), NewDouble(2.0)))
	require.False(t, Equal(NewInt(2), NewDouble(2.1)))
}

func TestEqualNilAndEmptyList(t *testing.T) {
	require.True(t, Equal(Nil(), NewList(nil)))
}

func TestEqualListsElementwise(t *testing.T) {
	a := NewList([]*Value{NewInt(1), NewString("x")})
	b := NewList([]*Value{NewInt(1), NewString("x")})
	c := NewList([]*Value{NewInt(1), NewString("y")})
	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
}

func TestReturnTagRoundTrips(t *testing.T) {
	v := NewInt(5)
	tagged := NewReturn(v)

	require.Equal(t, "5", tagged.String())
	unwrapped, ok := tagged.AsReturn()
	require.True(t, ok)
	require.Equal(t, int64(5), unwrapped.IntValue())

	_, ok = v.AsReturn()
	require.False(t, ok)
}

func TestSetListItemsSharesBackingStore(t *testing.T) {
	l := NewList([]*Value{NewInt(1)})
	alias := l
	l.SetListItems([]*Value{NewInt(1), NewInt(2)})
	require.Equal(t, 2, len(alias.ListItems()))
}

func TestTypeCodesMatchSpecOrder(t *testing.T) {
	require.Equal(t, 0, Undefined().TypeCode())
	require.Equal(t, 1, Nil().TypeCode())
	require.Equal(t, 2, NewBool(true).TypeCode())
	require.Equal(t, 3, NewInt(1).TypeCode())
	require.Equal(t, 4, NewDouble(1).TypeCode())
	require.Equal(t, 5, NewString("").TypeCode())
	require.Equal(t, 6, NewList(nil).TypeCode())
	require.Equal(t, 8, NewSymbol("x").TypeCode())
	require.Equal(t, 10, NewErrorValue(NewError(nil, "boom")).TypeCode())
}
