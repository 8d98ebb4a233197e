package llsd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeScalarOverlayWins(t *testing.T) {
	base, _ := NewMap(Pair{"a", NewInteger(1)}, Pair{"b", NewInteger(2)})
	overlay, _ := NewMap(Pair{"b", NewInteger(99)}, Pair{"c", NewInteger(3)})

	merged := Merge(base, overlay)
	mm, err := merged.AsMap()
	require.NoError(t, err)

	a, _ := mm.Get("a")
	av, _ := a.AsInteger()
	require.Equal(t, int32(1), av)

	b, _ := mm.Get("b")
	bv, _ := b.AsInteger()
	require.Equal(t, int32(99), bv)

	c, _ := mm.Get("c")
	cv, _ := c.AsInteger()
	require.Equal(t, int32(3), cv)
}

func TestMergeRecursesNestedMaps(t *testing.T) {
	baseInner, _ := NewMap(Pair{"x", NewInteger(1)}, Pair{"y", NewInteger(2)})
	base, _ := NewMap(Pair{"nested", baseInner})

	overlayInner, _ := NewMap(Pair{"y", NewInteger(20)})
	overlay, _ := NewMap(Pair{"nested", overlayInner})

	merged := Merge(base, overlay)
	mm, _ := merged.AsMap()
	nested, _ := mm.Get("nested")
	nm, _ := nested.AsMap()

	x, _ := nm.Get("x")
	xv, _ := x.AsInteger()
	require.Equal(t, int32(1), xv)

	y, _ := nm.Get("y")
	yv, _ := y.AsInteger()
	require.Equal(t, int32(20), yv)
}

func TestMergeArraysReplacedAtomically(t *testing.T) {
	base, _ := NewMap(Pair{"arr", NewArray(NewInteger(1), NewInteger(2), NewInteger(3))})
	overlay, _ := NewMap(Pair{"arr", NewArray(NewInteger(9))})

	merged := Merge(base, overlay)
	mm, _ := merged.AsMap()
	arr, _ := mm.Get("arr")
	elems, _ := arr.AsArray()
	require.Len(t, elems, 1, "overlay array must replace base array wholesale, not merge element-wise")
}

func TestMergeNonMapOverlayWins(t *testing.T) {
	base := NewInteger(1)
	overlay := NewString("two")
	require.True(t, Equal(NewString("two"), Merge(base, overlay), -1))
}
