package llsdpath

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openmetaverse-tools/llsd"
)

// Get walks a dot-separated key path into nested Maps, returning the
// value found and true, or the zero Value and false if any key is
// missing or an intermediate value isn't a Map. An empty path returns
// root itself.
func Get(root llsd.Value, path string) (llsd.Value, bool) {
	if path == "" {
		return root, true
	}
	cur := root
	for _, part := range strings.Split(path, ".") {
		m, err := cur.AsMap()
		if err != nil {
			return llsd.Value{}, false
		}
		v, ok := m.Get(part)
		if !ok {
			return llsd.Value{}, false
		}
		cur = v
	}
	return cur, true
}

// GetString returns the value at path stringified, if it is any scalar
// kind. Missing path, a mismatch, or a container value all yield def.
func GetString(root llsd.Value, path, def string) string {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	s, ok := stringify(v)
	if !ok {
		return def
	}
	return s
}

// GetInteger returns the value at path if it is exactly an Integer,
// otherwise def. Unlike GetString/GetBoolean/GetUUID, no coercion is
// attempted here: only those three accept narrow coercions.
func GetInteger(root llsd.Value, path string, def int32) int32 {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	n, err := v.AsInteger()
	if err != nil {
		return def
	}
	return n
}

// GetReal returns the value at path if it is exactly a Real, otherwise def.
func GetReal(root llsd.Value, path string, def float64) float64 {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	r, err := v.AsReal()
	if err != nil {
		return def
	}
	return r
}

// GetBoolean returns the value at path, accepting Boolean directly,
// Integer (0 → false, nonzero → true), or String ("true"/"1"
// case-insensitive → true). Anything else yields def.
func GetBoolean(root llsd.Value, path string, def bool) bool {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	switch v.Kind() {
	case llsd.Boolean:
		b, _ := v.AsBoolean()
		return b
	case llsd.Integer:
		n, _ := v.AsInteger()
		return n != 0
	case llsd.String:
		s, _ := v.AsString()
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return true
		}
	}
	return def
}

// GetUUID returns the value at path, accepting UUID directly or a String
// matching the canonical 8-4-4-4-12 pattern. Anything else yields def.
func GetUUID(root llsd.Value, path string, def uuid.UUID) uuid.UUID {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	if v.Kind() == llsd.UUID {
		u, _ := v.AsUUID()
		return u
	}
	if v.Kind() == llsd.String {
		s, _ := v.AsString()
		if llsd.IsCanonicalUUID(s) {
			if id, err := uuid.Parse(s); err == nil {
				return id
			}
		}
	}
	return def
}

// GetDate returns the value at path if it is exactly a Date, otherwise def.
func GetDate(root llsd.Value, path string, def time.Time) time.Time {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	d, err := v.AsDate()
	if err != nil {
		return def
	}
	return d
}

// GetBinary returns the value at path if it is exactly Binary, otherwise def.
func GetBinary(root llsd.Value, path string, def []byte) []byte {
	v, ok := Get(root, path)
	if !ok {
		return def
	}
	b, err := v.AsBinary()
	if err != nil {
		return def
	}
	return b
}

// stringify implements GetString's "any scalar stringifies" rule.
func stringify(v llsd.Value) (string, bool) {
	switch v.Kind() {
	case llsd.String:
		s, _ := v.AsString()
		return s, true
	case llsd.Boolean:
		b, _ := v.AsBoolean()
		if b {
			return "true", true
		}
		return "false", true
	case llsd.Integer:
		n, _ := v.AsInteger()
		return strconv.FormatInt(int64(n), 10), true
	case llsd.Real:
		r, _ := v.AsReal()
		return llsd.FormatRealToken(r), true
	case llsd.UUID:
		u, _ := v.AsUUID()
		return u.String(), true
	case llsd.Date:
		d, _ := v.AsDate()
		return llsd.FormatDate(d), true
	case llsd.URI:
		s, _ := v.AsURI()
		return s, true
	default:
		return "", false
	}
}
