package jsoncodec

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
)

// Parse decodes a single JSON value into an LLSD Value. cfg may be nil
// to use default resource limits and the default (off) detection modes.
func Parse(data []byte, cfg *Config) (llsd.Value, error) {
	p := &parser{data: data, cfg: cfg, limits: llsd.NewLimits(toLLSDConfig(cfg))}
	p.skipSpace()
	v, err := p.parseValue()
	if err != nil {
		return llsd.Value{}, err
	}
	p.skipSpace()
	if p.pos != len(p.data) {
		return llsd.Value{}, p.errorf(llsd.Syntax, "unexpected trailing data")
	}
	return v, nil
}

type parser struct {
	data   []byte
	pos    int
	cfg    *Config
	limits *llsd.Limits
}

func (p *parser) position() llsd.Position {
	return llsd.Position{Offset: int64(p.pos)}
}

func (p *parser) errorf(kind llsd.Kind, format string, args ...any) error {
	return llsd.Newf(kind, format, args...).WithPosition(p.position())
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

func (p *parser) literal(s string) bool {
	if p.pos+len(s) > len(p.data) {
		return false
	}
	if string(p.data[p.pos:p.pos+len(s)]) != s {
		return false
	}
	p.pos += len(s)
	return true
}

func (p *parser) parseValue() (llsd.Value, error) {
	if err := p.limits.Count(); err != nil {
		return llsd.Value{}, err
	}
	c, ok := p.peek()
	if !ok {
		return llsd.Value{}, p.errorf(llsd.Syntax, "unexpected end of input")
	}
	switch {
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return llsd.Value{}, err
		}
		return classifyString(s, p.cfg), nil
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == 't':
		if p.literal("true") {
			return llsd.NewBoolean(true), nil
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "invalid literal")
	case c == 'f':
		if p.literal("false") {
			return llsd.NewBoolean(false), nil
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "invalid literal")
	case c == 'n':
		if p.literal("null") {
			return llsd.NewUndefined(), nil
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "invalid literal")
	case c == 'N':
		if p.literal("NaN") {
			return llsd.NewReal(math.NaN()), nil
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "invalid literal")
	case c == 'I':
		if p.literal("Infinity") {
			return llsd.NewReal(math.Inf(1)), nil
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "invalid literal")
	case c == '-' && p.literalAt(p.pos+1, "Infinity"):
		p.pos += 1 + len("Infinity")
		return llsd.NewReal(math.Inf(-1)), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return llsd.Value{}, p.errorf(llsd.Syntax, "unexpected character %q", c)
	}
}

func (p *parser) literalAt(pos int, s string) bool {
	if pos+len(s) > len(p.data) {
		return false
	}
	return string(p.data[pos:pos+len(s)]) == s
}

func (p *parser) parseNumber() (llsd.Value, error) {
	start := p.pos
	if c, ok := p.peek(); ok && c == '-' {
		p.pos++
	}
	digitsStart := p.pos
	for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
		p.pos++
	}
	if p.pos == digitsStart {
		return llsd.Value{}, p.errorf(llsd.Syntax, "expected digits in number")
	}
	isReal := false
	if c, ok := p.peek(); ok && c == '.' {
		isReal = true
		p.pos++
		fracStart := p.pos
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
		if p.pos == fracStart {
			return llsd.Value{}, p.errorf(llsd.Syntax, "expected digits after decimal point")
		}
	}
	if c, ok := p.peek(); ok && (c == 'e' || c == 'E') {
		isReal = true
		p.pos++
		if c, ok := p.peek(); ok && (c == '+' || c == '-') {
			p.pos++
		}
		expStart := p.pos
		for p.pos < len(p.data) && isDigit(p.data[p.pos]) {
			p.pos++
		}
		if p.pos == expStart {
			return llsd.Value{}, p.errorf(llsd.Syntax, "expected digits in exponent")
		}
	}
	text := string(p.data[start:p.pos])
	if isReal {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return llsd.Value{}, p.errorf(llsd.Syntax, "invalid number %q", text)
		}
		return llsd.NewReal(f), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n < -(1<<31) || n > (1<<31)-1 {
		return llsd.Value{}, p.errorf(llsd.Range, "integer %q out of 32-bit signed range", text)
	}
	return llsd.NewInteger(int32(n)), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) parseString() (string, error) {
	if c, ok := p.peek(); !ok || c != '"' {
		return "", p.errorf(llsd.Syntax, "expected string")
	}
	p.pos++
	var b strings.Builder
	for {
		if p.pos >= len(p.data) {
			return "", p.errorf(llsd.Syntax, "unterminated string")
		}
		c := p.data[p.pos]
		switch {
		case c == '"':
			p.pos++
			if err := p.limits.CheckStringBytes(b.Len()); err != nil {
				return "", err
			}
			return b.String(), nil
		case c == '\\':
			p.pos++
			if p.pos >= len(p.data) {
				return "", p.errorf(llsd.Syntax, "unterminated escape")
			}
			esc := p.data[p.pos]
			switch esc {
			case '"':
				b.WriteByte('"')
				p.pos++
			case '\\':
				b.WriteByte('\\')
				p.pos++
			case '/':
				b.WriteByte('/')
				p.pos++
			case 'b':
				b.WriteByte('\b')
				p.pos++
			case 'f':
				b.WriteByte('\f')
				p.pos++
			case 'n':
				b.WriteByte('\n')
				p.pos++
			case 'r':
				b.WriteByte('\r')
				p.pos++
			case 't':
				b.WriteByte('\t')
				p.pos++
			case 'u':
				r, err := p.readUnicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", p.errorf(llsd.Syntax, "invalid escape \\%c", esc)
			}
		default:
			r, size := utf8.DecodeRune(p.data[p.pos:])
			if r == utf8.RuneError && size <= 1 {
				return "", p.errorf(llsd.Encoding, "invalid UTF-8 in string")
			}
			b.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *parser) readUnicodeEscape() (rune, error) {
	// p.pos is at 'u'
	p.pos++
	hi, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) {
		if p.literal(`\u`) {
			lo, err := p.readHex4()
			if err != nil {
				return 0, err
			}
			r := utf16.DecodeRune(rune(hi), rune(lo))
			if r != utf8.RuneError {
				return r, nil
			}
		}
		return utf8.RuneError, nil
	}
	return rune(hi), nil
}

func (p *parser) readHex4() (uint16, error) {
	if p.pos+4 > len(p.data) {
		return 0, p.errorf(llsd.Syntax, "truncated \\u escape")
	}
	n, err := strconv.ParseUint(string(p.data[p.pos:p.pos+4]), 16, 16)
	if err != nil {
		return 0, p.errorf(llsd.Syntax, "invalid \\u escape")
	}
	p.pos += 4
	return uint16(n), nil
}

func (p *parser) parseArray() (llsd.Value, error) {
	p.pos++ // '['
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
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return llsd.Value{}, err
		}
		elems = append(elems, v)
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return llsd.Value{}, p.errorf(llsd.Syntax, "unterminated array")
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c == ']' {
			p.pos++
			return llsd.NewArray(elems...), nil
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "expected ',' or ']' in array")
	}
}

func (p *parser) parseObject() (llsd.Value, error) {
	p.pos++ // '{'
	if err := p.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer p.limits.Leave()
	b := llsd.NewMapBuilder()
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return finishObject(b, p.cfg, p.limits)
	}
	for {
		p.skipSpace()
		key, err := p.parseString()
		if err != nil {
			return llsd.Value{}, err
		}
		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ':' {
			return llsd.Value{}, p.errorf(llsd.Syntax, "expected ':' after object key")
		}
		p.pos++
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return llsd.Value{}, err
		}
		if err := b.Put(key, v); err != nil {
			return llsd.Value{}, p.errorf(llsd.DuplicateKey, "duplicate object key %q", key)
		}
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return llsd.Value{}, p.errorf(llsd.Syntax, "unterminated object")
		}
		if c == ',' {
			p.pos++
			continue
		}
		if c == '}' {
			p.pos++
			return finishObject(b, p.cfg, p.limits)
		}
		return llsd.Value{}, p.errorf(llsd.Syntax, "expected ',' or '}' in object")
	}
}

const binaryWrapKey = "__llsd_binary"

// finishObject recognizes the binary-wrap shape when enabled, otherwise
// returns the plain Map.
func finishObject(b *llsd.MapBuilder, cfg *Config, limits *llsd.Limits) (llsd.Value, error) {
	m := b.Build()
	if cfg == nil || !cfg.BinaryWrap {
		return m, nil
	}
	mv, err := m.AsMap()
	if err != nil {
		return m, nil
	}
	if mv.Len() != 1 {
		return m, nil
	}
	enc, ok := mv.Get(binaryWrapKey)
	if !ok {
		return m, nil
	}
	s, err := enc.AsString()
	if err != nil {
		return m, nil
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return m, nil
	}
	if err := limits.CheckBinaryBytes(len(raw)); err != nil {
		return llsd.Value{}, err
	}
	return llsd.NewBinary(raw), nil
}

// classifyString promotes a JSON string to a richer Value per the
// configured detection modes. UUID promotion and the non-finite
// sentinels are unconditional; URI and Date promotion are opt-in.
func classifyString(s string, cfg *Config) llsd.Value {
	switch s {
	case "NaN":
		return llsd.NewReal(math.NaN())
	case "Infinity":
		return llsd.NewReal(math.Inf(1))
	case "-Infinity":
		return llsd.NewReal(math.Inf(-1))
	}
	if llsd.IsCanonicalUUID(s) {
		if id, err := uuid.Parse(s); err == nil {
			return llsd.NewUUID(id)
		}
	}
	if cfg != nil && cfg.DateDetection && llsd.LooksLikeISO8601(s) {
		if t, err := llsd.ParseDate(s); err == nil {
			return llsd.NewDate(t)
		}
	}
	if cfg != nil && cfg.URIDetection && looksLikeURI(s) {
		return llsd.NewURI(s)
	}
	return llsd.NewString(s)
}

// looksLikeURI requires a scheme prefix (letters followed by a colon) as
// the minimal syntactic signal for URI detection.
func looksLikeURI(s string) bool {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return false
	}
	for j := 0; j < i; j++ {
		c := s[j]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isSchemeChar := isAlpha || c == '+' || c == '-' || c == '.' || (j > 0 && c >= '0' && c <= '9')
		if !isSchemeChar {
			return false
		}
	}
	return true
}
