package xmlcodec

import (
	"bytes"
	"encoding/ascii85"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
)

// Parse decodes a complete <llsd>...</llsd> document. cfg may be nil to
// use default resource limits.
func Parse(data []byte, cfg *Config) (llsd.Value, error) {
	dec := &decoder{
		tok:    xml.NewDecoder(bytes.NewReader(data)),
		limits: llsd.NewLimits(toLLSDConfig(cfg)),
	}
	root, err := dec.next()
	if err != nil {
		return llsd.Value{}, err
	}
	se, ok := root.(xml.StartElement)
	if !ok || se.Name.Local != "llsd" {
		return llsd.Value{}, dec.errorf(llsd.Syntax, "document must start with <llsd>")
	}
	v, err := dec.parseValue()
	if err != nil {
		return llsd.Value{}, err
	}
	end, err := dec.next()
	if err != nil {
		return llsd.Value{}, err
	}
	if ee, ok := end.(xml.EndElement); !ok || ee.Name.Local != "llsd" {
		return llsd.Value{}, dec.errorf(llsd.Syntax, "expected closing </llsd>")
	}
	return v, nil
}

type decoder struct {
	tok    *xml.Decoder
	limits *llsd.Limits
}

func (d *decoder) errorf(kind llsd.Kind, format string, args ...any) error {
	e := llsd.Newf(kind, format, args...)
	if off := d.tok.InputOffset(); off >= 0 {
		e = e.WithPosition(llsd.Position{Offset: off})
	}
	return e
}

// next returns the next token that isn't whitespace-only CharData, a
// comment, a processing instruction, or a directive.
func (d *decoder) next() (xml.Token, error) {
	for {
		tok, err := d.tok.Token()
		if err != nil {
			if err == io.EOF {
				return nil, d.errorf(llsd.Syntax, "unexpected end of document")
			}
			return nil, d.errorf(llsd.Syntax, "xml tokenizer: %v", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			return tok, nil
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		default:
			return xml.CopyToken(tok), nil
		}
	}
}

// parseValue reads the next element and dispatches on it. It is used at
// the top level, where nothing has read ahead yet; parseValueFromStart
// is used inside array/map loops that already hold a StartElement.
func (d *decoder) parseValue() (llsd.Value, error) {
	tok, err := d.next()
	if err != nil {
		return llsd.Value{}, err
	}
	se, ok := tok.(xml.StartElement)
	if !ok {
		return llsd.Value{}, d.errorf(llsd.Syntax, "expected an element, found %T", tok)
	}
	return d.parseValueBody(se)
}

// readScalarBody consumes tokens up to and including the matching
// EndElement for name. It returns the concatenated character data, and
// isUndef=true if a nested <undef/> was found (a typed scalar shell
// collapsing to a plain Undefined value); character data beside the
// <undef/> does not clear isUndef.
func (d *decoder) readScalarBody(name string) (text string, isUndef bool, err error) {
	var b strings.Builder
	for {
		tok, terr := d.tok.Token()
		if terr != nil {
			return "", false, d.errorf(llsd.Syntax, "xml tokenizer: %v", terr)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			if t.Name.Local != "undef" {
				return "", false, d.errorf(llsd.Syntax, "unexpected nested element <%s> inside <%s>", t.Name.Local, name)
			}
			isUndef = true
			if err := d.skipElement("undef"); err != nil {
				return "", false, err
			}
		case xml.EndElement:
			if t.Name.Local != name {
				return "", false, d.errorf(llsd.Syntax, "mismatched closing tag </%s>, expected </%s>", t.Name.Local, name)
			}
			return b.String(), isUndef, nil
		case xml.Comment, xml.ProcInst, xml.Directive:
			continue
		}
	}
}

// skipElement consumes tokens until the EndElement matching name, assuming
// its StartElement has already been consumed.
func (d *decoder) skipElement(name string) error {
	depth := 0
	for {
		tok, err := d.tok.Token()
		if err != nil {
			return d.errorf(llsd.Syntax, "xml tokenizer: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == name {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == name {
				if depth == 0 {
					return nil
				}
				depth--
			}
		}
	}
}

func (d *decoder) parseArray() (llsd.Value, error) {
	if err := d.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer d.limits.Leave()
	var elems []llsd.Value
	for {
		tok, err := d.next()
		if err != nil {
			return llsd.Value{}, err
		}
		if ee, ok := tok.(xml.EndElement); ok {
			if ee.Name.Local != "array" {
				return llsd.Value{}, d.errorf(llsd.Syntax, "mismatched closing tag </%s> in <array>", ee.Name.Local)
			}
			return llsd.NewArray(elems...), nil
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			return llsd.Value{}, d.errorf(llsd.Syntax, "expected an element inside <array>")
		}
		v, err := d.parseValueFromStart(se)
		if err != nil {
			return llsd.Value{}, err
		}
		elems = append(elems, v)
	}
}

func (d *decoder) parseMap() (llsd.Value, error) {
	if err := d.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer d.limits.Leave()
	b := llsd.NewMapBuilder()
	for {
		tok, err := d.next()
		if err != nil {
			return llsd.Value{}, err
		}
		if ee, ok := tok.(xml.EndElement); ok {
			if ee.Name.Local != "map" {
				return llsd.Value{}, d.errorf(llsd.Syntax, "mismatched closing tag </%s> in <map>", ee.Name.Local)
			}
			return b.Build(), nil
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "key" {
			return llsd.Value{}, d.errorf(llsd.Syntax, "expected <key> inside <map>")
		}
		key, isUndef, err := d.readScalarBody("key")
		if err != nil {
			return llsd.Value{}, err
		}
		if isUndef {
			return llsd.Value{}, d.errorf(llsd.Syntax, "<key> may not contain <undef/>")
		}
		vtok, err := d.next()
		if err != nil {
			return llsd.Value{}, err
		}
		vse, ok := vtok.(xml.StartElement)
		if !ok {
			return llsd.Value{}, d.errorf(llsd.Syntax, "expected a value element after <key>")
		}
		v, err := d.parseValueFromStart(vse)
		if err != nil {
			return llsd.Value{}, err
		}
		if err := b.Put(key, v); err != nil {
			return llsd.Value{}, d.errorf(llsd.DuplicateKey, "duplicate map key %q", key)
		}
	}
}

// parseValueFromStart dispatches on a StartElement already consumed by a
// container's loop.
func (d *decoder) parseValueFromStart(se xml.StartElement) (llsd.Value, error) {
	return d.parseValueBody(se)
}

// parseValueBody is the shared element switch used by parseValue (which
// reads its own StartElement) and container loops (which already hold one).
func (d *decoder) parseValueBody(se xml.StartElement) (llsd.Value, error) {
	if err := d.limits.Count(); err != nil {
		return llsd.Value{}, err
	}
	switch se.Name.Local {
	case "undef":
		if err := d.skipElement("undef"); err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewUndefined(), nil
	case "boolean", "integer", "real", "string", "uuid", "date", "uri", "binary":
		return d.parseScalar(se)
	case "array":
		return d.parseArray()
	case "map":
		return d.parseMap()
	default:
		return llsd.Value{}, d.errorf(llsd.Syntax, "unknown element <%s>", se.Name.Local)
	}
}

func (d *decoder) parseScalar(se xml.StartElement) (llsd.Value, error) {
	name := se.Name.Local
	text, isUndef, err := d.readScalarBody(name)
	if err != nil {
		return llsd.Value{}, err
	}
	if isUndef {
		return llsd.NewUndefined(), nil
	}
	switch name {
	case "boolean":
		return llsd.NewBoolean(parseXMLBool(text)), nil
	case "integer":
		t := strings.TrimSpace(text)
		if t == "" {
			return llsd.NewInteger(0), nil
		}
		n, err := strconv.ParseInt(t, 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return llsd.Value{}, d.errorf(llsd.Range, "integer %q out of 32-bit signed range", t)
			}
			return llsd.Value{}, d.errorf(llsd.Syntax, "invalid integer %q", t)
		}
		return llsd.NewInteger(int32(n)), nil
	case "real":
		t := strings.TrimSpace(text)
		if t == "" {
			return llsd.NewReal(0), nil
		}
		f, err := llsd.ParseRealToken(t)
		if err != nil {
			return llsd.Value{}, d.errorf(llsd.Syntax, "invalid real %q", t)
		}
		return llsd.NewReal(f), nil
	case "string":
		if err := d.limits.CheckStringBytes(len(text)); err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewString(text), nil
	case "uuid":
		t := strings.TrimSpace(text)
		if t == "" {
			return llsd.NewUUID(uuid.Nil), nil
		}
		id, err := uuid.Parse(t)
		if err != nil {
			return llsd.Value{}, d.errorf(llsd.Syntax, "invalid uuid %q", t)
		}
		return llsd.NewUUID(id), nil
	case "date":
		t := strings.TrimSpace(text)
		if t == "" {
			return llsd.NewDate(llsd.EpochDate), nil
		}
		pt, err := llsd.ParseDate(t)
		if err != nil {
			return llsd.Value{}, d.errorf(llsd.Syntax, "invalid date %q: %v", t, err)
		}
		return llsd.NewDate(pt), nil
	case "uri":
		if err := d.limits.CheckStringBytes(len(text)); err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewURI(text), nil
	case "binary":
		raw, err := decodeBinaryText(attrValue(se, "encoding"), strings.TrimSpace(text))
		if err != nil {
			return llsd.Value{}, d.errorf(llsd.Encoding, "invalid binary content: %v", err)
		}
		if err := d.limits.CheckBinaryBytes(len(raw)); err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewBinary(raw), nil
	default:
		return llsd.Value{}, d.errorf(llsd.Syntax, "unknown scalar element <%s>", name)
	}
}

func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func parseXMLBool(text string) bool {
	switch strings.TrimSpace(text) {
	case "true", "1":
		return true
	default:
		return false
	}
}

func decodeBinaryText(encoding, text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}
	switch encoding {
	case "", "base64":
		return base64.StdEncoding.DecodeString(text)
	case "base16":
		return decodeHex(text)
	case "base85":
		return decodeBase85(text)
	default:
		return nil, llsd.Newf(llsd.Encoding, "unknown binary encoding %q", encoding)
	}
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, llsd.New(llsd.Syntax, "odd-length base16 data")
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok1 := hexVal(s[2*i])
		lo, ok2 := hexVal(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, llsd.New(llsd.Syntax, "invalid base16 digit")
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// decodeBase85 accepts the Ascii85 variant for parsing only, a
// supplemented feature: some historical LLSD producers emit base85
// binary blobs and this codec should still read them even though this
// implementation never emits base85 itself.
func decodeBase85(s string) ([]byte, error) {
	dst := make([]byte, len(s))
	ndst, _, err := ascii85.Decode(dst, []byte(s), true)
	if err != nil {
		return nil, err
	}
	return dst[:ndst], nil
}
