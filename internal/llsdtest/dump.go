// Package llsdtest holds small test-only helpers for this module's test
// suites: go-spew for dumping a failing Value tree,
// and go-cmp for structural diffs where a boolean require.Equal failure
// is too terse to debug.
package llsdtest

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/openmetaverse-tools/llsd"
)

// Dump renders v as a deeply-expanded Go representation, the same role
// spew plays implicitly inside testify's assert.Equal diffs, but usable
// directly in a custom failure message.
func Dump(v llsd.Value) string {
	return spew.Sdump(Snapshot(v))
}

// Snapshot converts a Value into plain Go data (maps, slices, scalars) so
// spew's dump and go-cmp's diff don't get lost in Value's unexported
// fields.
func Snapshot(v llsd.Value) any {
	switch v.Kind() {
	case llsd.Undefined:
		return nil
	case llsd.Boolean:
		b, _ := v.AsBoolean()
		return b
	case llsd.Integer:
		n, _ := v.AsInteger()
		return n
	case llsd.Real:
		r, _ := v.AsReal()
		return r
	case llsd.String:
		s, _ := v.AsString()
		return s
	case llsd.UUID:
		u, _ := v.AsUUID()
		return u.String()
	case llsd.Date:
		d, _ := v.AsDate()
		return d
	case llsd.URI:
		s, _ := v.AsURI()
		return "uri:" + s
	case llsd.Binary:
		b, _ := v.AsBinary()
		return b
	case llsd.Array:
		arr, _ := v.AsArray()
		out := make([]any, len(arr))
		for i, e := range arr {
			out[i] = Snapshot(e)
		}
		return out
	case llsd.Map:
		m, _ := v.AsMap()
		out := make(map[string]any, m.Len())
		m.Range(func(k string, val llsd.Value) bool {
			out[k] = Snapshot(val)
			return true
		})
		return out
	default:
		return nil
	}
}
