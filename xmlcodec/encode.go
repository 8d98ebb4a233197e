package xmlcodec

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/openmetaverse-tools/llsd"
)

// Serialize renders v as a complete <llsd> document. cfg may be nil to
// get pretty-printed output with a 2-space indent.
func Serialize(v llsd.Value, cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	e := &encoder{w: w, indent: indentWidth(cfg), compact: isCompact(cfg)}

	w.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	e.newline()
	w.WriteString("<llsd>")
	e.depth++
	e.newline()
	if err := e.writeValue(v); err != nil {
		return nil, err
	}
	e.depth--
	e.newline()
	w.WriteString("</llsd>")
	if !e.compact {
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	w       *bufio.Writer
	depth   int
	indent  int
	compact bool
}

func (e *encoder) newline() {
	if e.compact {
		return
	}
	e.w.WriteByte('\n')
	e.w.WriteString(strings.Repeat(" ", e.depth*e.indent))
}

func (e *encoder) writeValue(v llsd.Value) error {
	switch v.Kind() {
	case llsd.Undefined:
		e.w.WriteString("<undef/>")
	case llsd.Boolean:
		b, _ := v.AsBoolean()
		if b {
			e.w.WriteString("<boolean>true</boolean>")
		} else {
			e.w.WriteString("<boolean>false</boolean>")
		}
	case llsd.Integer:
		n, _ := v.AsInteger()
		e.w.WriteString("<integer>")
		e.w.WriteString(strconv.FormatInt(int64(n), 10))
		e.w.WriteString("</integer>")
	case llsd.Real:
		r, _ := v.AsReal()
		e.w.WriteString("<real>")
		e.w.WriteString(llsd.FormatRealToken(r))
		e.w.WriteString("</real>")
	case llsd.String:
		s, _ := v.AsString()
		e.w.WriteString("<string>")
		writeEscaped(e.w, s)
		e.w.WriteString("</string>")
	case llsd.UUID:
		u, _ := v.AsUUID()
		e.w.WriteString("<uuid>")
		e.w.WriteString(u.String())
		e.w.WriteString("</uuid>")
	case llsd.Date:
		d, _ := v.AsDate()
		e.w.WriteString("<date>")
		e.w.WriteString(llsd.FormatDate(d))
		e.w.WriteString("</date>")
	case llsd.URI:
		s, _ := v.AsURI()
		e.w.WriteString("<uri>")
		writeEscaped(e.w, s)
		e.w.WriteString("</uri>")
	case llsd.Binary:
		b, _ := v.AsBinary()
		e.w.WriteString("<binary>")
		e.w.WriteString(base64.StdEncoding.EncodeToString(b))
		e.w.WriteString("</binary>")
	case llsd.Array:
		return e.writeArray(v)
	case llsd.Map:
		return e.writeMap(v)
	default:
		return llsd.Newf(llsd.Syntax, "unknown value kind %v", v.Kind())
	}
	return nil
}

func (e *encoder) writeArray(v llsd.Value) error {
	arr, _ := v.AsArray()
	e.w.WriteString("<array>")
	if len(arr) == 0 {
		e.w.WriteString("</array>")
		return nil
	}
	e.depth++
	for _, elem := range arr {
		e.newline()
		if err := e.writeValue(elem); err != nil {
			return err
		}
	}
	e.depth--
	e.newline()
	e.w.WriteString("</array>")
	return nil
}

func (e *encoder) writeMap(v llsd.Value) error {
	m, _ := v.AsMap()
	e.w.WriteString("<map>")
	if m.Len() == 0 {
		e.w.WriteString("</map>")
		return nil
	}
	e.depth++
	var rangeErr error
	m.Range(func(key string, val llsd.Value) bool {
		e.newline()
		e.w.WriteString("<key>")
		writeEscaped(e.w, key)
		e.w.WriteString("</key>")
		e.newline()
		if err := e.writeValue(val); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	e.depth--
	e.newline()
	e.w.WriteString("</map>")
	return nil
}

func writeEscaped(w *bufio.Writer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			w.WriteString("&amp;")
		case '<':
			w.WriteString("&lt;")
		case '>':
			w.WriteString("&gt;")
		case '"':
			w.WriteString("&quot;")
		case '\'':
			w.WriteString("&apos;")
		default:
			w.WriteRune(r)
		}
	}
}
