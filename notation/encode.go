package notation

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/openmetaverse-tools/llsd"
)

// Serialize renders v as a single-line notation document. cfg may be nil.
func Serialize(v llsd.Value, cfg *llsd.Config) ([]byte, error) {
	var b strings.Builder
	if err := writeValue(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeValue(b *strings.Builder, v llsd.Value) error {
	switch v.Kind() {
	case llsd.Undefined:
		b.WriteByte('!')
	case llsd.Boolean:
		bv, _ := v.AsBoolean()
		if bv {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case llsd.Integer:
		iv, _ := v.AsInteger()
		b.WriteByte('i')
		b.WriteString(strconv.FormatInt(int64(iv), 10))
	case llsd.Real:
		rv, _ := v.AsReal()
		b.WriteByte('r')
		b.WriteString(llsd.FormatRealToken(rv))
	case llsd.String:
		sv, _ := v.AsString()
		b.WriteByte('s')
		writeQuoted(b, sv)
	case llsd.UUID:
		uv, _ := v.AsUUID()
		b.WriteByte('u')
		b.WriteString(uv.String())
	case llsd.Date:
		dv, _ := v.AsDate()
		b.WriteString("d")
		writeQuotedRaw(b, llsd.FormatDate(dv))
	case llsd.URI:
		sv, _ := v.AsURI()
		b.WriteByte('l')
		writeQuoted(b, sv)
	case llsd.Binary:
		bv, _ := v.AsBinary()
		b.WriteString("b64")
		writeQuotedRaw(b, base64.StdEncoding.EncodeToString(bv))
	case llsd.Array:
		arr, _ := v.AsArray()
		b.WriteByte('[')
		for i, e := range arr {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeValue(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case llsd.Map:
		m, _ := v.AsMap()
		b.WriteByte('{')
		first := true
		var rangeErr error
		m.Range(func(key string, val llsd.Value) bool {
			if !first {
				b.WriteByte(',')
			}
			first = false
			writeKey(b, key)
			b.WriteByte(':')
			if err := writeValue(b, val); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		b.WriteByte('}')
	default:
		return llsd.Newf(llsd.Syntax, "unknown value kind %v", v.Kind())
	}
	return nil
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
}

// writeQuotedRaw writes s quoted with no escape processing, for tokens
// (dates, base64 payloads) whose alphabets never contain the delimiter.
func writeQuotedRaw(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
}

var barewordOK = func(key string) bool {
	if len(key) == 0 {
		return false
	}
	if !isBarewordStart(key[0]) {
		return false
	}
	for i := 1; i < len(key); i++ {
		if !isBarewordRest(key[i]) {
			return false
		}
	}
	return true
}

func writeKey(b *strings.Builder, key string) {
	if barewordOK(key) {
		b.WriteString(key)
		return
	}
	b.WriteByte('s')
	writeQuoted(b, key)
}
