package binarycodec

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
)

const (
	tagUndefined = 0x00
	tagBoolean   = 0x01
	tagInteger   = 0x02
	tagReal      = 0x03
	tagString    = 0x04
	tagUUID      = 0x05
	tagDate      = 0x06
	tagURI       = 0x07
	tagBinary    = 0x08
	tagArray     = 0x09
	tagMap       = 0x0A
)

// Parse decodes a complete binary-encoded LLSD document, including its
// 6-byte magic frame. cfg may be nil to use default resource limits; set
// cfg.Legacy to accept the unframed 5-byte "llsd-" prefix some historical
// documents use.
func Parse(data []byte, cfg *Config) (llsd.Value, error) {
	d := &decoder{data: data, limits: llsd.NewLimits(toLLSDConfig(cfg))}
	if err := d.readFrame(legacy(cfg)); err != nil {
		return llsd.Value{}, err
	}
	v, err := d.readValue()
	if err != nil {
		return llsd.Value{}, err
	}
	if d.pos != len(d.data) {
		return llsd.Value{}, llsd.Newf(llsd.Syntax, "unexpected trailing data after value").WithPosition(d.position())
	}
	return v, nil
}

type decoder struct {
	data   []byte
	pos    int
	limits *llsd.Limits
}

func (d *decoder) position() llsd.Position {
	return llsd.Position{Offset: int64(d.pos)}
}

func (d *decoder) errorf(kind llsd.Kind, format string, args ...any) error {
	return llsd.Newf(kind, format, args...).WithPosition(d.position())
}

func legacy(cfg *Config) bool {
	return cfg != nil && cfg.Legacy
}

func (d *decoder) readFrame(allowLegacy bool) error {
	if allowLegacy {
		if len(d.data) >= 5 && string(d.data[:5]) == "llsd-" {
			d.pos = 5
			return nil
		}
		return d.errorf(llsd.Syntax, "missing \"llsd-\" legacy binary frame header")
	}
	if len(d.data) >= 6 && string(d.data[:5]) == "llsd-" {
		if d.data[5] != 1 {
			return d.errorf(llsd.Syntax, "unsupported binary version byte 0x%02x", d.data[5])
		}
		d.pos = 6
		return nil
	}
	return d.errorf(llsd.Syntax, "missing or malformed \"llsd-\\x01\" binary frame header")
}

func (d *decoder) need(n int) error {
	if len(d.data)-d.pos < n {
		return d.errorf(llsd.Syntax, "truncated input: need %d more bytes, have %d", n, len(d.data)-d.pos)
	}
	return nil
}

func (d *decoder) readByte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

func (d *decoder) readUint32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	n := binary.BigEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return n, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, d.errorf(llsd.Syntax, "negative length prefix")
	}
	if err := d.need(n); err != nil {
		return nil, err
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readValue() (llsd.Value, error) {
	if err := d.limits.Count(); err != nil {
		return llsd.Value{}, err
	}
	tag, err := d.readByte()
	if err != nil {
		return llsd.Value{}, err
	}
	switch tag {
	case tagUndefined:
		return llsd.NewUndefined(), nil
	case tagBoolean:
		b, err := d.readByte()
		if err != nil {
			return llsd.Value{}, err
		}
		if b != 0 && b != 1 {
			return llsd.Value{}, d.errorf(llsd.Syntax, "invalid boolean byte 0x%02x", b)
		}
		return llsd.NewBoolean(b == 1), nil
	case tagInteger:
		if err := d.need(4); err != nil {
			return llsd.Value{}, err
		}
		n := int32(binary.BigEndian.Uint32(d.data[d.pos:]))
		d.pos += 4
		return llsd.NewInteger(n), nil
	case tagReal:
		if err := d.need(8); err != nil {
			return llsd.Value{}, err
		}
		bits := binary.BigEndian.Uint64(d.data[d.pos:])
		d.pos += 8
		return llsd.NewReal(math.Float64frombits(bits)), nil
	case tagString:
		s, err := d.readString()
		if err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewString(s), nil
	case tagUUID:
		raw, err := d.readBytes(16)
		if err != nil {
			return llsd.Value{}, err
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return llsd.Value{}, d.errorf(llsd.Syntax, "invalid uuid bytes: %v", err)
		}
		return llsd.NewUUID(id), nil
	case tagDate:
		if err := d.need(8); err != nil {
			return llsd.Value{}, err
		}
		bits := binary.BigEndian.Uint64(d.data[d.pos:])
		d.pos += 8
		secs := math.Float64frombits(bits)
		t := llsd.EpochDate.Add(durationFromSeconds(secs))
		return llsd.NewDate(t), nil
	case tagURI:
		s, err := d.readString()
		if err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewURI(s), nil
	case tagBinary:
		n, err := d.readUint32()
		if err != nil {
			return llsd.Value{}, err
		}
		if err := d.limits.CheckBinaryBytes(int(n)); err != nil {
			return llsd.Value{}, err
		}
		raw, err := d.readBytes(int(n))
		if err != nil {
			return llsd.Value{}, err
		}
		return llsd.NewBinary(raw), nil
	case tagArray:
		return d.readArray()
	case tagMap:
		return d.readMap()
	default:
		return llsd.Value{}, d.errorf(llsd.Syntax, "unknown type tag 0x%02x", tag)
	}
}

func (d *decoder) readString() (string, error) {
	n, err := d.readUint32()
	if err != nil {
		return "", err
	}
	if err := d.limits.CheckStringBytes(int(n)); err != nil {
		return "", err
	}
	raw, err := d.readBytes(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", d.errorf(llsd.Encoding, "string is not valid UTF-8")
	}
	return string(raw), nil
}

func (d *decoder) readArray() (llsd.Value, error) {
	n, err := d.readUint32()
	if err != nil {
		return llsd.Value{}, err
	}
	if err := d.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer d.limits.Leave()
	elems := make([]llsd.Value, 0, clampCap(n))
	for i := uint32(0); i < n; i++ {
		v, err := d.readValue()
		if err != nil {
			return llsd.Value{}, err
		}
		elems = append(elems, v)
	}
	return llsd.NewArray(elems...), nil
}

func (d *decoder) readMap() (llsd.Value, error) {
	n, err := d.readUint32()
	if err != nil {
		return llsd.Value{}, err
	}
	if err := d.limits.Enter(); err != nil {
		return llsd.Value{}, err
	}
	defer d.limits.Leave()
	b := llsd.NewMapBuilder()
	for i := uint32(0); i < n; i++ {
		key, err := d.readString()
		if err != nil {
			return llsd.Value{}, err
		}
		v, err := d.readValue()
		if err != nil {
			return llsd.Value{}, err
		}
		if err := b.Put(key, v); err != nil {
			return llsd.Value{}, err.(*llsd.Error).WithPosition(d.position())
		}
	}
	return b.Build(), nil
}

// clampCap bounds a pre-allocation hint so a hostile length prefix can't
// force a huge up-front allocation before element-count limits bite.
func clampCap(n uint32) int {
	const maxPrealloc = 4096
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
