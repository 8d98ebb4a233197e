package llsd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRealEqualBitExact(t *testing.T) {
	require.True(t, RealEqual(0.0, 0.0, -1))
	require.False(t, RealEqual(0.0, math.Copysign(0, -1), -1), "bit-exact must distinguish -0.0 from +0.0")
	require.True(t, RealEqual(math.NaN(), math.NaN(), -1), "identical NaN bit pattern is bit-exact equal to itself")
}

func TestRealEqualPrecision(t *testing.T) {
	require.True(t, RealEqual(3.14159, 3.14160, 10))
	require.False(t, RealEqual(3.14159, 3.14160, 20))

	x := 1.0
	next := math.Nextafter(x, math.Inf(1))
	require.False(t, RealEqual(x, next, 52))
	require.True(t, RealEqual(x, x, 10))
}

func TestRealEqualNaNNeverEqualAtFinitePrecision(t *testing.T) {
	nan := math.NaN()
	require.False(t, RealEqual(nan, nan, 0))
	require.False(t, RealEqual(nan, nan, 52))
}

func TestEqualScalars(t *testing.T) {
	require.True(t, Equal(NewInteger(5), NewInteger(5), -1))
	require.False(t, Equal(NewInteger(5), NewInteger(6), -1))
	require.False(t, Equal(NewInteger(5), NewString("5"), -1), "different tags never compare equal")
	require.True(t, Equal(NewUndefined(), NewUndefined(), -1))
}

func TestEqualMapIgnoresOrder(t *testing.T) {
	a, err := NewMap(Pair{"x", NewInteger(1)}, Pair{"y", NewInteger(2)})
	require.NoError(t, err)
	b, err := NewMap(Pair{"y", NewInteger(2)}, Pair{"x", NewInteger(1)})
	require.NoError(t, err)
	require.True(t, Equal(a, b, -1), "Map equality does not consider order")
}

func TestEqualArrayConsidersOrder(t *testing.T) {
	a := NewArray(NewInteger(1), NewInteger(2))
	b := NewArray(NewInteger(2), NewInteger(1))
	require.False(t, Equal(a, b, -1))
}

func TestEqualBinary(t *testing.T) {
	require.True(t, Equal(NewBinary([]byte("abc")), NewBinary([]byte("abc")), -1))
	require.False(t, Equal(NewBinary([]byte("abc")), NewBinary([]byte("abd")), -1))
}
