package llsd

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestScalarConstructorsAndAccessors(t *testing.T) {
	require.Equal(t, Undefined, NewUndefined().Kind())

	b := NewBoolean(true)
	got, err := b.AsBoolean()
	require.NoError(t, err)
	require.True(t, got)

	i := NewInteger(-42)
	gi, err := i.AsInteger()
	require.NoError(t, err)
	require.Equal(t, int32(-42), gi)

	r := NewReal(3.5)
	gr, err := r.AsReal()
	require.NoError(t, err)
	require.Equal(t, 3.5, gr)

	s := NewString("hello")
	gs, err := s.AsString()
	require.NoError(t, err)
	require.Equal(t, "hello", gs)

	id := uuid.New()
	u := NewUUID(id)
	gu, err := u.AsUUID()
	require.NoError(t, err)
	require.Equal(t, id, gu)

	now := time.Now().Truncate(time.Millisecond)
	d := NewDate(now)
	gd, err := d.AsDate()
	require.NoError(t, err)
	require.True(t, now.Equal(gd))

	uri := NewURI("http://example.org")
	gru, err := uri.AsURI()
	require.NoError(t, err)
	require.Equal(t, "http://example.org", gru)

	bin := NewBinary([]byte("payload"))
	gbin, err := bin.AsBinary()
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), gbin)
}

func TestWrongTypeAccessor(t *testing.T) {
	v := NewInteger(1)
	_, err := v.AsString()
	require.Error(t, err)
	var llerr *Error
	require.ErrorAs(t, err, &llerr)
	require.Equal(t, WrongType, llerr.Kind)
}

func TestBinaryIsCopiedNotAliased(t *testing.T) {
	src := []byte{1, 2, 3}
	v := NewBinary(src)
	src[0] = 99
	got, _ := v.AsBinary()
	require.Equal(t, byte(1), got[0], "Value must not alias caller's backing array")

	got[1] = 42
	got2, _ := v.AsBinary()
	require.Equal(t, byte(2), got2[1], "AsBinary must not return an alias of internal storage")
}

func TestMapBuilderRejectsDuplicateKeys(t *testing.T) {
	b := NewMapBuilder()
	require.NoError(t, b.Put("a", NewInteger(1)))
	err := b.Put("a", NewInteger(2))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	b := NewMapBuilder()
	keys := []string{"z", "a", "m", "b"}
	for i, k := range keys {
		require.NoError(t, b.Put(k, NewInteger(int32(i))))
	}
	m := b.Build()
	mv, err := m.AsMap()
	require.NoError(t, err)
	require.Equal(t, keys, mv.Keys())

	var visited []string
	mv.Range(func(key string, v Value) bool {
		visited = append(visited, key)
		return true
	})
	require.Equal(t, keys, visited)
}

func TestMapGetMissing(t *testing.T) {
	m, err := NewMap()
	require.NoError(t, err)
	mv, err := m.AsMap()
	require.NoError(t, err)
	_, ok := mv.Get("nope")
	require.False(t, ok)
}

func TestArrayRoundTripsOrder(t *testing.T) {
	v := NewArray(NewInteger(1), NewInteger(2), NewInteger(3))
	arr, err := v.AsArray()
	require.NoError(t, err)
	require.Len(t, arr, 3)
	for i, e := range arr {
		n, _ := e.AsInteger()
		require.Equal(t, int32(i+1), n)
	}
}

func TestCountElementsAndMaxDepth(t *testing.T) {
	leaf := NewInteger(1)
	inner := NewArray(leaf, leaf)
	outer, err := NewMap(Pair{Key: "a", Value: inner}, Pair{Key: "b", Value: leaf})
	require.NoError(t, err)

	// outer(map) + inner(array) + 2 leaves in array + 1 leaf under "b" = 5
	require.Equal(t, uint64(5), CountElements(outer))
	// outer -> inner -> leaf = depth 3
	require.Equal(t, uint64(3), MaxDepth(outer))
}

func TestTagString(t *testing.T) {
	require.Equal(t, "Map", Map.String())
	require.Equal(t, "UUID", UUID.String())
	require.Equal(t, "Unknown", Tag(999).String())
}
