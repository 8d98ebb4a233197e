package binarycodec

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/openmetaverse-tools/llsd"
)

// Serialize renders v as a complete binary-encoded LLSD document: the
// 6-byte magic frame followed by the tagged value. cfg may be nil.
func Serialize(v llsd.Value, cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(llsd.BinaryMagic)
	if err := writeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v llsd.Value) error {
	switch v.Kind() {
	case llsd.Undefined:
		buf.WriteByte(tagUndefined)
	case llsd.Boolean:
		b, _ := v.AsBoolean()
		buf.WriteByte(tagBoolean)
		if b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case llsd.Integer:
		n, _ := v.AsInteger()
		buf.WriteByte(tagInteger)
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(n))
		buf.Write(tmp[:])
	case llsd.Real:
		r, _ := v.AsReal()
		buf.WriteByte(tagReal)
		writeFloat64(buf, r)
	case llsd.String:
		s, _ := v.AsString()
		buf.WriteByte(tagString)
		writeLengthPrefixed(buf, []byte(s))
	case llsd.UUID:
		u, _ := v.AsUUID()
		buf.WriteByte(tagUUID)
		buf.Write(u[:])
	case llsd.Date:
		d, _ := v.AsDate()
		buf.WriteByte(tagDate)
		writeFloat64(buf, secondsFromDuration(d.Sub(llsd.EpochDate)))
	case llsd.URI:
		s, _ := v.AsURI()
		buf.WriteByte(tagURI)
		writeLengthPrefixed(buf, []byte(s))
	case llsd.Binary:
		b, _ := v.AsBinary()
		buf.WriteByte(tagBinary)
		writeLengthPrefixed(buf, b)
	case llsd.Array:
		arr, _ := v.AsArray()
		buf.WriteByte(tagArray)
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(len(arr)))
		buf.Write(tmp[:])
		for _, e := range arr {
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
	case llsd.Map:
		m, _ := v.AsMap()
		buf.WriteByte(tagMap)
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(m.Len()))
		buf.Write(tmp[:])
		var rangeErr error
		m.Range(func(key string, val llsd.Value) bool {
			writeLengthPrefixed(buf, []byte(key))
			if err := writeValue(buf, val); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
	default:
		return llsd.Newf(llsd.Syntax, "unknown value kind %v", v.Kind())
	}
	return nil
}

func writeFloat64(buf *bytes.Buffer, f float64) {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(f))
	buf.Write(tmp[:])
}

func writeLengthPrefixed(buf *bytes.Buffer, b []byte) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(b)))
	buf.Write(tmp[:])
	buf.Write(b)
}
