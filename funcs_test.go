package arith_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith"
)

func TestRoot(t *testing.T) {
	cases := []struct {
		x, n, r float64
	}{
		{8, 3, 2},
		{27, 3, 3},
		{16, 2, 4},
		{16, 4, 2},
		{1, 7, 1},
		{2, 1, 2},
		{1e300, 100, 1e3},
		{0.125, 3, 0.5},
		{4, 0.5, 16},
		{0, 3, 0},
	}
	for _, c := range cases {
		r := arith.Root(c.x, c.n)
		assert.Equal(t, c.r, r, "root(%g, %g)", c.x, c.n)
	}
}

func TestRootNaN(t *testing.T) {
	assert.True(t, math.IsNaN(arith.Root(-8, 3)))
	assert.True(t, math.IsNaN(arith.Root(math.NaN(), 2)))
	assert.True(t, math.IsInf(arith.Root(math.Inf(1), 2), 1))
}

func TestLog(t *testing.T) {
	cases := []struct {
		x, b, r float64
	}{
		{100, 10, 2},
		{1000, 10, 3},
		{1e-3, 10, -3},
		{8, 2, 3},
		{1024, 2, 10},
		{81, 3, 4},
		{1, 10, 0},
		{0.5, 2, -1},
		{math.E, math.E, 1},
	}
	for _, c := range cases {
		r := arith.Log(c.x, c.b)
		assert.Equal(t, c.r, r, "log(%g, %g)", c.x, c.b)
	}
}

func TestLogOutsideDomain(t *testing.T) {
	assert.True(t, math.IsNaN(arith.Log(-1, 10)))
	assert.True(t, math.IsNaN(arith.Log(8, -2)))
	assert.True(t, math.IsInf(arith.Log(0, 10), -1))
	assert.True(t, math.IsInf(arith.Log(8, 1), 1))
}

func TestArgs(t *testing.T) {
	a := arith.Args{1, 2}
	x, err := a.At(1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, x)

	for _, i := range []int{-1, 2, 10} {
		_, err := a.At(i)
		var ac *arith.ArgCountError
		require.ErrorAs(t, err, &ac, "index %d", i)
		assert.Equal(t, i, ac.Index)
		assert.Equal(t, 2, ac.Len)
		assert.Empty(t, ac.Func)
		assert.ErrorIs(t, err, arith.ErrArgumentCount)
	}
}

func TestAdapters(t *testing.T) {
	m := arith.Monadic(math.Sqrt)
	r, err := m.Call(arith.Args{9, 100})
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
	_, err = m.Call(nil)
	assert.ErrorIs(t, err, arith.ErrArgumentCount)

	d := arith.Dyadic(math.Max)
	r, err = d.Call(arith.Args{3, 7})
	require.NoError(t, err)
	assert.Equal(t, 7.0, r)
	_, err = d.Call(arith.Args{3})
	assert.ErrorIs(t, err, arith.ErrArgumentCount)
}

func TestDefaultFuncs(t *testing.T) {
	m := arith.DefaultFuncs()
	for _, name := range []string{"root", "sin", "cos", "tan", "asin", "acos", "atan", "sqrt", "ln", "log", "abs"} {
		assert.Contains(t, m, name)
	}
	assert.Len(t, m, 11)

	delete(m, "sin")
	assert.Contains(t, arith.DefaultFuncs(), "sin", "DefaultFuncs shares its map")
}
