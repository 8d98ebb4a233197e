package jsoncodec

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
	"github.com/stretchr/testify/require"
)

func TestScalarRoundTrip(t *testing.T) {
	values := []llsd.Value{
		llsd.NewUndefined(),
		llsd.NewBoolean(true),
		llsd.NewBoolean(false),
		llsd.NewInteger(-42),
		llsd.NewInteger(math.MaxInt32),
		llsd.NewReal(3.5),
		llsd.NewReal(0.0),
		llsd.NewString("hello"),
	}
	for _, v := range values {
		out, err := Serialize(v, nil)
		require.NoError(t, err)
		got, err := Parse(out, nil)
		require.NoError(t, err)
		require.True(t, llsd.Equal(v, got, -1), "kind %v", v.Kind())
	}
}

func TestIntegerVsRealEmission(t *testing.T) {
	out, err := Serialize(llsd.NewInteger(7), nil)
	require.NoError(t, err)
	require.Equal(t, "7", string(out))

	out, err = Serialize(llsd.NewReal(7), nil)
	require.NoError(t, err)
	require.Equal(t, "7.0", string(out))
}

func TestNonFiniteDefaultSentinel(t *testing.T) {
	out, err := Serialize(llsd.NewReal(math.NaN()), nil)
	require.NoError(t, err)
	require.Equal(t, `"NaN"`, string(out))

	out, err = Serialize(llsd.NewReal(math.Inf(1)), nil)
	require.NoError(t, err)
	require.Equal(t, `"Infinity"`, string(out))

	out, err = Serialize(llsd.NewReal(math.Inf(-1)), nil)
	require.NoError(t, err)
	require.Equal(t, `"-Infinity"`, string(out))
}

func TestNonFiniteNonStrictMode(t *testing.T) {
	out, err := Serialize(llsd.NewReal(math.NaN()), &Config{NonStrict: true})
	require.NoError(t, err)
	require.Equal(t, "NaN", string(out))

	v, err := Parse(out, nil)
	require.NoError(t, err)
	r, err := v.AsReal()
	require.NoError(t, err)
	require.True(t, math.IsNaN(r))
}

func TestUndefinedIsNull(t *testing.T) {
	out, err := Serialize(llsd.NewUndefined(), nil)
	require.NoError(t, err)
	require.Equal(t, "null", string(out))

	v, err := Parse(out, nil)
	require.NoError(t, err)
	require.True(t, v.IsUndefined())
}

func TestUUIDAlwaysPromotedOnParse(t *testing.T) {
	id := uuid.New()
	v, err := Parse([]byte(`"`+id.String()+`"`), nil)
	require.NoError(t, err)
	got, err := v.AsUUID()
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestURIDetectionOptIn(t *testing.T) {
	v, err := Parse([]byte(`"http://example.org/x"`), nil)
	require.NoError(t, err)
	require.Equal(t, llsd.String, v.Kind(), "URI detection off by default")

	v, err = Parse([]byte(`"http://example.org/x"`), &Config{URIDetection: true})
	require.NoError(t, err)
	require.Equal(t, llsd.URI, v.Kind())
}

func TestDateDetectionOptIn(t *testing.T) {
	v, err := Parse([]byte(`"2023-01-01T00:00:00Z"`), nil)
	require.NoError(t, err)
	require.Equal(t, llsd.String, v.Kind())

	v, err = Parse([]byte(`"2023-01-01T00:00:00Z"`), &Config{DateDetection: true})
	require.NoError(t, err)
	require.Equal(t, llsd.Date, v.Kind())
}

func TestBinaryWrapRoundTrip(t *testing.T) {
	v := llsd.NewBinary([]byte{1, 2, 3, 255})
	out, err := Serialize(v, &Config{BinaryWrap: true})
	require.NoError(t, err)
	require.Contains(t, string(out), binaryWrapKey)

	got, err := Parse(out, &Config{BinaryWrap: true})
	require.NoError(t, err)
	require.True(t, llsd.Equal(v, got, -1))

	without, err := Parse(out, nil)
	require.NoError(t, err)
	require.Equal(t, llsd.Map, without.Kind(), "without BinaryWrap the wrapper object parses as a plain map")
}

func TestNestedStructureRoundTrip(t *testing.T) {
	inner, err := llsd.NewMap(llsd.Pair{Key: "a", Value: llsd.NewInteger(1)})
	require.NoError(t, err)
	v := llsd.NewArray(inner, llsd.NewString("x"), llsd.NewUndefined())

	out, err := Serialize(v, &Config{Indent: 2})
	require.NoError(t, err)
	got, err := Parse(out, nil)
	require.NoError(t, err)
	require.True(t, llsd.Equal(v, got, -1))
}

func TestDuplicateKeyRejected(t *testing.T) {
	_, err := Parse([]byte(`{"a":1,"a":2}`), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrDuplicateKey)
}

func TestStringEscapes(t *testing.T) {
	v := llsd.NewString("line\nbreak\ttab\"quote")
	out, err := Serialize(v, nil)
	require.NoError(t, err)
	got, err := Parse(out, nil)
	require.NoError(t, err)
	s, err := got.AsString()
	require.NoError(t, err)
	require.Equal(t, "line\nbreak\ttab\"quote", s)
}

func TestUnicodeEscapeSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	v, err := Parse([]byte("\"\\uD83D\\uDE00\""), nil)
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	require.Equal(t, "😀", s)
}

func TestCompactHasNoWhitespace(t *testing.T) {
	v := llsd.NewArray(llsd.NewInteger(1), llsd.NewInteger(2))
	out, err := Serialize(v, nil)
	require.NoError(t, err)
	require.Equal(t, "[1,2]", string(out))
}

func TestMaxDepthLimit(t *testing.T) {
	input := []byte("[[[[1]]]]")
	_, err := Parse(input, &Config{Config: llsd.Config{MaxDepth: 2}})
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrLimit)

	_, err = Parse(input, &Config{Config: llsd.Config{MaxDepth: 4}})
	require.NoError(t, err)
}

func TestIntegerOutOfRangeIsRangeError(t *testing.T) {
	_, err := Parse([]byte("99999999999"), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrRange)
}
