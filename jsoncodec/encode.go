package jsoncodec

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"strings"

	"github.com/openmetaverse-tools/llsd"
)

// Serialize renders v as a single JSON value. cfg may be nil for the
// spec's default behavior: compact output, UUID/URI/Date as plain
// strings, Binary as a base64 string, non-finite Reals as quoted
// sentinel strings.
func Serialize(v llsd.Value, cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	e := &encoder{w: w, indent: 0, cfg: cfg}
	if cfg != nil {
		e.indent = cfg.Indent
	}
	if err := e.writeValue(v, 0); err != nil {
		return nil, err
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	w      *bufio.Writer
	indent int
	cfg    *Config
}

func (e *encoder) newline(depth int) {
	if e.indent <= 0 {
		return
	}
	e.w.WriteByte('\n')
	e.w.WriteString(strings.Repeat(" ", depth*e.indent))
}

func (e *encoder) writeValue(v llsd.Value, depth int) error {
	switch v.Kind() {
	case llsd.Undefined:
		e.w.WriteString("null")
	case llsd.Boolean:
		b, _ := v.AsBoolean()
		if b {
			e.w.WriteString("true")
		} else {
			e.w.WriteString("false")
		}
	case llsd.Integer:
		n, _ := v.AsInteger()
		e.w.WriteString(strconv.FormatInt(int64(n), 10))
	case llsd.Real:
		r, _ := v.AsReal()
		e.writeReal(r)
	case llsd.String:
		s, _ := v.AsString()
		e.writeJSONString(s)
	case llsd.UUID:
		u, _ := v.AsUUID()
		e.writeJSONString(u.String())
	case llsd.Date:
		d, _ := v.AsDate()
		e.writeJSONString(llsd.FormatDate(d))
	case llsd.URI:
		s, _ := v.AsURI()
		e.writeJSONString(s)
	case llsd.Binary:
		b, _ := v.AsBinary()
		return e.writeBinary(b)
	case llsd.Array:
		return e.writeArray(v, depth)
	case llsd.Map:
		return e.writeMap(v, depth)
	default:
		return llsd.Newf(llsd.Syntax, "unknown value kind %v", v.Kind())
	}
	return nil
}

func (e *encoder) writeReal(r float64) {
	nonStrict := e.cfg != nil && e.cfg.NonStrict
	switch {
	case math.IsNaN(r):
		if nonStrict {
			e.w.WriteString("NaN")
		} else {
			e.w.WriteString(`"NaN"`)
		}
	case math.IsInf(r, 1):
		if nonStrict {
			e.w.WriteString("Infinity")
		} else {
			e.w.WriteString(`"Infinity"`)
		}
	case math.IsInf(r, -1):
		if nonStrict {
			e.w.WriteString("-Infinity")
		} else {
			e.w.WriteString(`"-Infinity"`)
		}
	default:
		text := strconv.FormatFloat(r, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		e.w.WriteString(text)
	}
}

func (e *encoder) writeBinary(b []byte) error {
	encoded := base64.StdEncoding.EncodeToString(b)
	if e.cfg != nil && e.cfg.BinaryWrap {
		e.w.WriteByte('{')
		e.writeJSONString(binaryWrapKey)
		e.w.WriteByte(':')
		e.writeJSONString(encoded)
		e.w.WriteByte('}')
		return nil
	}
	e.writeJSONString(encoded)
	return nil
}

func (e *encoder) writeArray(v llsd.Value, depth int) error {
	arr, _ := v.AsArray()
	e.w.WriteByte('[')
	if len(arr) == 0 {
		e.w.WriteByte(']')
		return nil
	}
	for i, elem := range arr {
		if i > 0 {
			e.w.WriteByte(',')
		}
		e.newline(depth + 1)
		if err := e.writeValue(elem, depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.w.WriteByte(']')
	return nil
}

func (e *encoder) writeMap(v llsd.Value, depth int) error {
	m, _ := v.AsMap()
	e.w.WriteByte('{')
	if m.Len() == 0 {
		e.w.WriteByte('}')
		return nil
	}
	first := true
	var rangeErr error
	m.Range(func(key string, val llsd.Value) bool {
		if !first {
			e.w.WriteByte(',')
		}
		first = false
		e.newline(depth + 1)
		e.writeJSONString(key)
		e.w.WriteByte(':')
		if e.indent > 0 {
			e.w.WriteByte(' ')
		}
		if err := e.writeValue(val, depth+1); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	e.newline(depth)
	e.w.WriteByte('}')
	return nil
}

func (e *encoder) writeJSONString(s string) {
	e.w.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.w.WriteString(`\"`)
		case '\\':
			e.w.WriteString(`\\`)
		case '\n':
			e.w.WriteString(`\n`)
		case '\r':
			e.w.WriteString(`\r`)
		case '\t':
			e.w.WriteString(`\t`)
		default:
			if r < 0x20 {
				e.w.WriteString(`\u00`)
				hex := strconv.FormatInt(int64(r), 16)
				if len(hex) < 2 {
					e.w.WriteByte('0')
				}
				e.w.WriteString(hex)
			} else {
				e.w.WriteRune(r)
			}
		}
	}
	e.w.WriteByte('"')
}
