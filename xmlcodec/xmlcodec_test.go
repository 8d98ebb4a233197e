package xmlcodec

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
	"github.com/stretchr/testify/require"
)

func TestScenarioA_MinimalMapRoundTrip(t *testing.T) {
	input := `<?xml version="1.0"?><llsd><map><key>region_id</key><uuid>67153d5b-3659-afb4-8510-adda2c034649</uuid><key>scale</key><string>one minute</string></map></llsd>`

	v, err := Parse([]byte(input), nil)
	require.NoError(t, err)

	m, err := v.AsMap()
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
	require.Equal(t, []string{"region_id", "scale"}, m.Keys())

	id, ok := m.Get("region_id")
	require.True(t, ok)
	uu, err := id.AsUUID()
	require.NoError(t, err)
	require.Equal(t, uuid.MustParse("67153d5b-3659-afb4-8510-adda2c034649"), uu)

	scale, ok := m.Get("scale")
	require.True(t, ok)
	s, err := scale.AsString()
	require.NoError(t, err)
	require.Equal(t, "one minute", s)

	out, err := Serialize(v, nil)
	require.NoError(t, err)
	got, err := Parse(out, nil)
	require.NoError(t, err)
	require.True(t, llsd.Equal(v, got, -1))
}

func TestScenarioC_BinaryWithNaNSerialization(t *testing.T) {
	m, err := llsd.NewMap(llsd.Pair{Key: "x", Value: llsd.NewReal(math.NaN())})
	require.NoError(t, err)

	out, err := Serialize(m, nil)
	require.NoError(t, err)
	require.Equal(t,
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<llsd>\n  <map>\n    <key>x</key>\n    <real>nan</real>\n  </map>\n</llsd>\n",
		string(out),
	)
}

func TestUndefinedRoundTrip(t *testing.T) {
	out, err := Serialize(llsd.NewUndefined(), nil)
	require.NoError(t, err)
	require.Contains(t, string(out), "<undef/>")

	v, err := Parse(out, nil)
	require.NoError(t, err)
	require.True(t, v.IsUndefined())
}

func TestTypedUndefinedCollapse(t *testing.T) {
	input := `<llsd><binary><undef/></binary></llsd>`
	v, err := Parse([]byte(input), nil)
	require.NoError(t, err)
	require.True(t, v.IsUndefined())
}

func TestBooleanAcceptedForms(t *testing.T) {
	cases := map[string]bool{
		"<boolean>true</boolean>":  true,
		"<boolean>1</boolean>":     true,
		"<boolean>false</boolean>": false,
		"<boolean>0</boolean>":     false,
		"<boolean></boolean>":      false,
	}
	for body, want := range cases {
		v, err := Parse([]byte("<llsd>"+body+"</llsd>"), nil)
		require.NoError(t, err)
		b, err := v.AsBoolean()
		require.NoError(t, err)
		require.Equal(t, want, b, body)
	}
}

func TestEmptyUUIDIsNil(t *testing.T) {
	v, err := Parse([]byte("<llsd><uuid></uuid></llsd>"), nil)
	require.NoError(t, err)
	u, err := v.AsUUID()
	require.NoError(t, err)
	require.Equal(t, uuid.Nil, u)
}

func TestEmptyDateIsEpoch(t *testing.T) {
	v, err := Parse([]byte("<llsd><date></date></llsd>"), nil)
	require.NoError(t, err)
	d, err := v.AsDate()
	require.NoError(t, err)
	require.True(t, d.Equal(llsd.EpochDate))
}

func TestIntegerOutOfRangeIsRangeError(t *testing.T) {
	input := `<llsd><integer>99999999999</integer></llsd>`
	_, err := Parse([]byte(input), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrRange)
}

func TestDuplicateKeyRejected(t *testing.T) {
	input := `<llsd><map><key>a</key><integer>1</integer><key>a</key><integer>2</integer></map></llsd>`
	_, err := Parse([]byte(input), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrDuplicateKey)
}

func TestStringEscaping(t *testing.T) {
	v := llsd.NewString(`<tag> & "quote" 'apos'`)
	out, err := Serialize(v, &Config{Compact: true})
	require.NoError(t, err)
	require.Contains(t, string(out), "&lt;tag&gt; &amp; &quot;quote&quot; &apos;apos&apos;")

	got, err := Parse(out, nil)
	require.NoError(t, err)
	s, err := got.AsString()
	require.NoError(t, err)
	require.Equal(t, `<tag> & "quote" 'apos'`, s)
}

func TestBase16BinaryDecode(t *testing.T) {
	v, err := Parse([]byte(`<llsd><binary encoding="base16">48656C6C6F</binary></llsd>`), nil)
	require.NoError(t, err)
	b, err := v.AsBinary()
	require.NoError(t, err)
	require.Equal(t, []byte("Hello"), b)
}

func TestCompactModeHasNoWhitespace(t *testing.T) {
	v := llsd.NewArray(llsd.NewInteger(1), llsd.NewInteger(2))
	out, err := Serialize(v, &Config{Compact: true})
	require.NoError(t, err)
	require.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><llsd><array><integer>1</integer><integer>2</integer></array></llsd>`, string(out))
}

func TestMaxDepthLimit(t *testing.T) {
	open := ""
	for i := 0; i < 5; i++ {
		open += "<array>"
	}
	closeTags := ""
	for i := 0; i < 5; i++ {
		closeTags += "</array>"
	}
	input := "<llsd>" + open + "<integer>1</integer>" + closeTags + "</llsd>"

	_, err := Parse([]byte(input), &Config{Config: llsd.Config{MaxDepth: 3}})
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrLimit)

	_, err = Parse([]byte(input), &Config{Config: llsd.Config{MaxDepth: 5}})
	require.NoError(t, err)
}

func TestUnknownElementRejected(t *testing.T) {
	_, err := Parse([]byte(`<llsd><bogus/></llsd>`), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, llsd.ErrSyntax)
}
