package notation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
	"github.com/stretchr/testify/require"
)

func TestScenarioB_NestedMapRoundTrip(t *testing.T) {
	input := `{name:s'Alice',scores:[i10,i20,r3.5],id:u550e8400-e29b-41d4-a716-446655440000}`

	v, err := Parse([]byte(input), nil)
	require.NoError(t, err)

	m, err := v.AsMap()
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())

	name, _ := m.Get("name")
	nv, _ := name.AsString()
	require.Equal(t, "Alice", nv)

	scores, _ := m.Get("scores")
	elems, _ := scores.AsArray()
	require.Len(t, elems, 3)
	i0, _ := elems[0].AsInteger()
	require.Equal(t, int32(10), i0)
	i1, _ := elems[1].AsInteger()
	require.Equal(t, int32(20), i1)
	r2, _ := elems[2].AsReal()
	require.Equal(t, 3.5, r2)

	out, err := Serialize(v, nil)
	require.NoError(t, err)
	require.Equal(t, input, string(out), "re-serialized notation must be byte-identical: bareword keys, single-quoted strings")
}

func TestUndefined(t *testing.T) {
	v, err := Parse([]byte("!"), nil)
	require.NoError(t, err)
	require.True(t, v.IsUndefined())
	out, _ := Serialize(v, nil)
	require.Equal(t, "!", string(out))
}

func TestBooleanForms(t *testing.T) {
	for _, tok := range []string{"1", "t", "T"} {
		v, err := Parse([]byte(tok), nil)
		require.NoError(t, err)
		b, _ := v.AsBoolean()
		require.True(t, b)
	}
	for _, tok := range []string{"0", "f", "F"} {
		v, err := Parse([]byte(tok), nil)
		require.NoError(t, err)
		b, _ := v.AsBoolean()
		require.False(t, b)
	}
}

func TestRealEdgeCases(t *testing.T) {
	cases := map[string]string{
		"rnan":  "nan",
		"rinf":  "inf",
		"r-inf": "-inf",
	}
	for tok, want := range cases {
		v, err := Parse([]byte(tok), nil)
		require.NoError(t, err)
		out, err := Serialize(v, nil)
		require.NoError(t, err)
		require.Equal(t, "r"+want, string(out))
	}
}

func TestStringEscapes(t *testing.T) {
	v, err := Parse([]byte(`s'line1\nline2\ttab\\back\'quote'`), nil)
	require.NoError(t, err)
	s, _ := v.AsString()
	require.Equal(t, "line1\nline2\ttab\\back'quote", s)

	out, err := Serialize(v, nil)
	require.NoError(t, err)
	roundtripped, err := Parse(out, nil)
	require.NoError(t, err)
	s2, _ := roundtripped.AsString()
	require.Equal(t, s, s2)
}

func TestDuplicateKeyRejected(t *testing.T) {
	_, err := Parse([]byte(`{a:i1,a:i2}`), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrDuplicateKey)
}

func TestTrailingCommaRejected(t *testing.T) {
	_, err := Parse([]byte(`[i1,i2,]`), nil)
	require.Error(t, err)

	_, err = Parse([]byte(`{a:i1,}`), nil)
	require.Error(t, err)
}

func TestUnexpectedEOF(t *testing.T) {
	_, err := Parse([]byte(`[i1,i2`), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrSyntax)
}

func TestMapKeyQuotedWhenNotBareword(t *testing.T) {
	v, err := llsd.NewMap(llsd.Pair{Key: "not a bareword!", Value: llsd.NewInteger(1)})
	require.NoError(t, err)
	out, err := Serialize(v, nil)
	require.NoError(t, err)
	require.Equal(t, `{s'not a bareword!':i1}`, string(out))
}

func TestBinaryBase64AndBase16Parse(t *testing.T) {
	v64, err := Parse([]byte(`b64"aGVsbG8="`), nil)
	require.NoError(t, err)
	b, _ := v64.AsBinary()
	require.Equal(t, []byte("hello"), b)

	v16, err := Parse([]byte(`b16"68656c6c6f"`), nil)
	require.NoError(t, err)
	b16, _ := v16.AsBinary()
	require.Equal(t, []byte("hello"), b16)
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	v := llsd.NewUUID(id)
	out, err := Serialize(v, nil)
	require.NoError(t, err)
	parsed, err := Parse(out, nil)
	require.NoError(t, err)
	require.True(t, llsd.Equal(v, parsed, -1))
}

func TestMaxDepthLimit(t *testing.T) {
	// depth N+1 fails, depth N succeeds
	build := func(n int) []byte {
		out := make([]byte, 0, n*2)
		for i := 0; i < n; i++ {
			out = append(out, '[')
		}
		out = append(out, 'i', '1')
		for i := 0; i < n; i++ {
			out = append(out, ']')
		}
		return out
	}
	cfg := &llsd.Config{MaxDepth: 3}
	_, err := Parse(build(3), cfg)
	require.NoError(t, err)
	_, err = Parse(build(4), cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrLimit)
}
