package notation

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
)

// Parse decodes a complete notation document. cfg may be nil to use
// default resource limits.
func Parse(data []byte, cfg *llsd.Config) (llsd.Value, error) {
	p := &parser{data: data, limits: llsd.NewLimits(cfg)}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return llsd.Value{}, err
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return llsd.Value{}, p.errorf("unexpected trailing data after value")
	}
	return v, nil
}

type parser struct {
	data   []byte
	pos    int
	limits *llsd.Limits
}

func (p *parser) position() llsd.Position {
	line := 1
	col := 1
	for i := 0; i < p.pos && i < len(p.data); i++ {
		if p.data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return llsd.Position{Offset: int64(p.pos), Line: line, Column: col}
}

func (p *parser) errorf(format string, args ...any) error {
	return llsd.Newf(llsd.Syntax, format, args...).WithPosition(p.position())
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}
	return p.data[p.pos], true
}

func (p *parser) parseValue() (llsd.Value, error) {
	if err := p.limits.Count(); err != nil {
		return llsd.Value{}, err
	}
	c, ok := p.peek()
	if !ok {
		return llsd.Value{}, p.errorf("unexpected end of input")
	}
	switch c {
	case '!':
		p.pos++
		return llsd.NewUndefined(), nil
	case '1', 't', 'T':
		p.pos++
		return llsd.NewBoolean(true), nil
	case '0', 'f', 'F':
		p.pos++
		return llsd.NewBoolean(false), nil
	case 'i':
		p.pos++
		return p.parseInteger()
	case 'r':
		p.pos++
		return p.parseReal()
	case 's':
		p.pos++
		s, err := p.parseQuotedWithEscapes()
		if err != nil {
			return llsd.Value{}, err
		}
		if err := p.limits.CheckStringBytes(len(s)); err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewString(s), nil
	case 'u':
		p.pos++
		return p.parseUUID()
	case 'd':
		p.pos++
		return p.parseDate()
	case 'l':
		p.pos++
		s, err := p.parseQuotedWithEscapes()
		if err != nil {
			return llsd.Value{}, err
		}
		if err := p.limits.CheckStringBytes(len(s)); err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewURI(s), nil
	case 'b':
		return p.parseBinary()
	case '[':
		return p.parseArray()
	case '{':
		return p.parseMap()
	default:
		return llsd.Value{}, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) parseInteger() (llsd.Value, error) {
	start := p.pos
	if p.pos < len(p.data) && (p.data[p.pos] == '-' || p.data[p.pos] == '+') {
		p.pos++
	}
	digitsStart := p.pos
	for p.pos < len(p.data) && p.data[p.pos] >= '0' && p.data[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == digitsStart {
		return llsd.Value{}, p.errorf("expected digits after 'i'")
	}
	n, err := strconv.ParseInt(string(p.data[start:p.pos]), 10, 64)
	if err != nil || n < -(1<<31) || n > (1<<31)-1 {
		return llsd.Value{}, llsd.Newf(llsd.Range, "integer %q out of 32-bit signed range", p.data[start:p.pos]).WithPosition(p.position())
	}
	return llsd.NewInteger(int32(n)), nil
}

func isRealTokenByte(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		return true
	case c == 'n' || c == 'N' || c == 'a' || c == 'A' || c == 'i' || c == 'I' || c == 'f' || c == 'F':
		return true
	}
	return false
}

func (p *parser) parseReal() (llsd.Value, error) {
	start := p.pos
	for p.pos < len(p.data) && isRealTokenByte(p.data[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return llsd.Value{}, p.errorf("expected real literal after 'r'")
	}
	tok := string(p.data[start:p.pos])
	f, err := llsd.ParseRealToken(tok)
	if err != nil {
		return llsd.Value{}, llsd.Newf(llsd.Syntax, "invalid real literal %q: %v", tok, err).WithPosition(p.position())
	}
	return llsd.NewReal(f), nil
}

func (p *parser) parseUUID() (llsd.Value, error) {
	if p.pos+36 > len(p.data) {
		return llsd.Value{}, p.errorf("truncated uuid literal")
	}
	tok := string(p.data[p.pos : p.pos+36])
	if !llsd.IsCanonicalUUID(tok) {
		return llsd.Value{}, p.errorf("invalid uuid literal %q", tok)
	}
	id, err := uuid.Parse(tok)
	if err != nil {
		return llsd.Value{}, p.errorf("invalid uuid literal %q: %v", tok, err)
	}
	p.pos += 36
	return llsd.NewUUID(id), nil
}

func (p *parser) parseDate() (llsd.Value, error) {
	s, err := p.parseQuotedWithEscapes()
	if err != nil {
		return llsd.Value{}, err
	}
	t, err := llsd.ParseDate(s)
	if err != nil {
		return llsd.Value{}, err
	}
	return llsd.NewDate(t), nil
}

func (p *parser) parseBinary() (llsd.Value, error) {
	// Already positioned at 'b'; dispatch on the following 2 digits.
	if p.pos+3 > len(p.data) {
		return llsd.Value{}, p.errorf("truncated binary prefix")
	}
	prefix := string(p.data[p.pos : p.pos+3])
	p.pos += 3
	raw, err := p.parseQuotedRaw()
	if err != nil {
		return llsd.Value{}, err
	}
	var decoded []byte
	switch prefix {
	case "b64":
		decoded, err = base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return llsd.Value{}, llsd.Newf(llsd.Encoding, "invalid base64 binary: %v", err).WithPosition(p.position())
		}
	case "b16":
		decoded, err = hex.DecodeString(raw)
		if err != nil {
			return llsd.Value{}, llsd.Newf(llsd.Encoding, "invalid base16 binary: %v", err).WithPosition(p.position())
		}
	default:
		return llsd.Value{}, p.errorf("unknown binary prefix %q", prefix)
	}
	if err := p.limits.CheckBinaryBytes(len(decoded)); err != nil {
		return llsd.Value{}, err
	}
	return llsd.NewBinary(decoded), nil
}

// parseQuotedRaw reads a '...' or "..." delimited token without escape
// processing, for binary payloads whose alphabets never need escaping.
func (p *parser) parseQuotedRaw() (string, error) {
	delim, ok := p.peek()
	if !ok || (delim != '\'' && delim != '"') {
		return "", p.errorf("expected quoted string")
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.data) && p.data[p.pos] != delim {
		p.pos++
	}
	if p.pos >= len(p.data) {
		return "", p.errorf("unterminated quoted string")
	}
	s := string(p.data[start:p.pos])
	p.pos++
	return s, nil
}

// parseQuotedWithEscapes reads a '...' or "..." delimited token,
// processing \' \" \\ \n \t \r escapes.
func (p *parser) parseQuotedWithEscapes() (string, error) {
	delim, ok := p.peek()
	if !ok || (delim != '\'' && delim != '"') {
		return "", p.errorf("expected quoted string")
	}
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.data) {
			return "", p.errorf("unterminated quoted string")
		}
		c := p.data[p.pos]
		if c == delim {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.data) {
				return "", p.errorf("unterminated escape sequence")
			}
			e := p.data[p.pos]
			switch e {
			case '\'':
				b.WriteByte('\'')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return "", p.errorf("invalid escape sequence \\%c", e)
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
}

func isBarewordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isBarewordRest(c byte) bool {
	return isBarewordStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) parseKey() (string, error) {
	c, ok := p.peek()
	if !ok {
		return "", p.errorf("expected map key")
	}
	if c == 's' && p.pos+1 < len(p.data) && (p.data[p.pos+1] == '\'' || p.data[p.pos+1] == '"') {
		p.pos++
		return p.parseQuotedWithEscapes()
	}
	if !isBarewordStart(c) {
		return "", p.errorf("expected bareword or quoted key, got %q", c)
	}
	start := p.pos
	for p.pos < len(p.data) && isBarewordRest(p.data[p.pos]) {
		p.pos++
	}
	return string(p.data[start:p.pos]), nil
}

func (p *parser) parseArray() (llsd.Value, error) {
	p.pos++ // consume '['
	if err := p.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer p.limits.Leave()

	var elems []llsd.Value
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return llsd.NewArray(elems...), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return llsd.Value{}, err
		}
		elems = append(elems, v)
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return llsd.Value{}, p.errorf("unterminated array")
		}
		if c == ',' {
			p.pos++
			p.skipSpace()
			if c2, ok2 := p.peek(); ok2 && c2 == ']' {
				return llsd.Value{}, p.errorf("trailing comma not permitted in array")
			}
			continue
		}
		if c == ']' {
			p.pos++
			return llsd.NewArray(elems...), nil
		}
		return llsd.Value{}, p.errorf("expected ',' or ']' in array, got %q", c)
	}
}

func (p *parser) parseMap() (llsd.Value, error) {
	p.pos++ // consume '{'
	if err := p.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer p.limits.Leave()

	b := llsd.NewMapBuilder()
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return b.Build(), nil
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return llsd.Value{}, err
		}
		p.skipSpace()
		c, ok := p.peek()
		if !ok || c != ':' {
			return llsd.Value{}, p.errorf("expected ':' after map key %q", key)
		}
		p.pos++
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return llsd.Value{}, err
		}
		if err := b.Put(key, v); err != nil {
			return llsd.Value{}, err.(*llsd.Error).WithPosition(p.position())
		}
		p.skipSpace()
		c, ok = p.peek()
		if !ok {
			return llsd.Value{}, p.errorf("unterminated map")
		}
		if c == ',' {
			p.pos++
			p.skipSpace()
			if c2, ok2 := p.peek(); ok2 && c2 == '}' {
				return llsd.Value{}, p.errorf("trailing comma not permitted in map")
			}
			continue
		}
		if c == '}' {
			p.pos++
			return b.Build(), nil
		}
		return llsd.Value{}, p.errorf("expected ',' or '}' in map, got %q", c)
	}
}
