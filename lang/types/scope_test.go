package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveWalksParentChain(t *testing.T) {
	global := NewGlobalScope("main", &bytes.Buffer{}, nil)
	global.Define("x", NewInt(1))

	child := NewChildScope("f", global, global)
	child.Define("y", NewInt(2))

	v, err := child.Resolve("x")
	require.NoError(t, err)
	require.Equal(t, int64(1), v.IntValue())

	v, err = child.Resolve("y")
	require.NoError(t, err)
	require.Equal(t, int64(2), v.IntValue())

	_, err = global.Resolve("y")
	require.Error(t, err)
}

func TestGDefBindsInGlobalRegardlessOfCaller(t *testing.T) {
	global := NewGlobalScope("main", &bytes.Buffer{}, nil)
	child := NewChildScope("f", global, global)

	child.GDef("g", NewInt(9))

	v, err := global.Resolve("g")
	require.NoError(t, err)
	require.Equal(t, int64(9), v.IntValue())
}

func TestSetBangRequiresExistingBinding(t *testing.T) {
	global := NewGlobalScope("main", &bytes.Buffer{}, nil)
	global.Define("x", NewInt(1))
	child := NewChildScope("f", global, global)

	require.NoError(t, child.SetBang("x", NewInt(2)))
	v, _ := global.Resolve("x")
	require.Equal(t, int64(2), v.IntValue())

	require.Error(t, child.SetBang("never-defined", NewInt(0)))
}

func TestCallStackDepth(t *testing.T) {
	global := NewGlobalScope("main", &bytes.Buffer{}, nil)
	require.Equal(t, 0, global.CallStackDepth())

	level1 := NewChildScope("f1", global, global)
	level2 := NewChildScope("f2", global, level1)

	require.Equal(t, 1, level1.CallStackDepth())
	require.Equal(t, 2, level2.CallStackDepth())
}

func TestTraceOutputAccumulates(t *testing.T) {
	global := NewGlobalScope("main", &bytes.Buffer{}, nil)
	global.Tracing = true
	global.AppendTrace("foo")
	global.AppendTrace("bar")
	require.Equal(t, "foo\nbar", global.TraceOutput())
}
