package llsd

import (
	"bytes"
	"encoding/json"
)

// Format identifies one of the four LLSD wire encodings.
type Format int

const (
	FormatUnknown Format = iota
	FormatXML
	FormatNotation
	FormatBinary
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "XML"
	case FormatNotation:
		return "Notation"
	case FormatBinary:
		return "Binary"
	case FormatJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// BinaryMagic is the 6-byte frame every binary-encoded LLSD document
// begins with: the ASCII string "llsd-" followed by the version byte.
var BinaryMagic = []byte("llsd-\x01")

// DetectFormat peeks at the head of data and returns the wire format it
// most likely holds:
//
//  1. starts with "llsd-"  → Binary
//  2. first non-whitespace byte is '<'  → XML
//  3. first non-whitespace byte is '{' or '[' and the content parses as
//     JSON → JSON
//  4. otherwise → Notation
//
// Notation's map/array syntax also begins with '{'/'[', so a '{'/'['
// prefix alone does not distinguish the two formats: DetectFormat
// validates the body as JSON before committing to FormatJSON, falling
// through to FormatNotation when the parse fails (a plain notation map
// like {name:s'Alice',...} is not valid JSON).
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, []byte("llsd-")) {
		return FormatBinary
	}
	i := firstNonSpace(data)
	if i < 0 {
		return FormatUnknown
	}
	switch data[i] {
	case '<':
		return FormatXML
	case '{', '[':
		if json.Valid(data[i:]) {
			return FormatJSON
		}
		return FormatNotation
	default:
		return FormatNotation
	}
}

func firstNonSpace(data []byte) int {
	for i, c := range data {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return i
		}
	}
	return -1
}
