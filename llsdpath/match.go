package llsdpath

import (
	"strconv"
	"strings"

	"github.com/openmetaverse-tools/llsd"
)

// Matches reports whether data conforms to the shape template describes:
// Maps require every template key to exist in data and recursively match
// (extra data keys are ignored); Arrays require data to be at least as
// long as template, matching elementwise; scalars accept the kinds
// listed in the template/data compatibility table.
func Matches(template, data llsd.Value) bool {
	switch template.Kind() {
	case llsd.Map:
		tm, err := template.AsMap()
		if err != nil {
			return false
		}
		dm, err := data.AsMap()
		if err != nil {
			return false
		}
		for _, k := range tm.Keys() {
			tv, _ := tm.Get(k)
			dv, ok := dm.Get(k)
			if !ok || !Matches(tv, dv) {
				return false
			}
		}
		return true
	case llsd.Array:
		ta, err := template.AsArray()
		if err != nil {
			return false
		}
		da, err := data.AsArray()
		if err != nil || len(da) < len(ta) {
			return false
		}
		for i, tv := range ta {
			if !Matches(tv, da[i]) {
				return false
			}
		}
		return true
	default:
		return matchesScalarKind(template.Kind(), data)
	}
}

// matchesScalarKind implements the scalar compatibility table used by
// Matches. It is intentionally distinct from the getter coercions in
// get.go: a narrow set of safe coercions governs the typed Get*
// accessors, while this wider table governs Matches, and the two do not
// agree on every kind (e.g. Boolean from String).
func matchesScalarKind(want llsd.Tag, data llsd.Value) bool {
	if data.Kind() == want {
		return true
	}
	switch want {
	case llsd.String:
		return data.Kind() != llsd.Binary && isScalarKind(data.Kind())
	case llsd.Integer:
		switch data.Kind() {
		case llsd.Real, llsd.Boolean:
			return true
		case llsd.String:
			s, _ := data.AsString()
			_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
			return err == nil
		}
	case llsd.Real:
		switch data.Kind() {
		case llsd.Integer, llsd.Boolean:
			return true
		}
	case llsd.Boolean:
		switch data.Kind() {
		case llsd.Integer, llsd.Real:
			return true
		case llsd.String:
			s, _ := data.AsString()
			switch s {
			case "true", "false":
				return true
			}
		}
	case llsd.UUID:
		if data.Kind() == llsd.String {
			s, _ := data.AsString()
			return llsd.IsCanonicalUUID(s)
		}
	case llsd.Date:
		if data.Kind() == llsd.String {
			s, _ := data.AsString()
			_, err := llsd.ParseDate(s)
			return err == nil
		}
	case llsd.URI:
		return data.Kind() == llsd.String
	}
	return false
}

func isScalarKind(k llsd.Tag) bool {
	switch k {
	case llsd.Undefined, llsd.Boolean, llsd.Integer, llsd.Real, llsd.String, llsd.UUID, llsd.Date, llsd.URI:
		return true
	default:
		return false
	}
}

// Filter returns a new Value retaining only the keys data shares with
// template, recursively. A wildcard key "*" present in a template Map
// admits any unmatched data key through unchanged. Non-Map templates
// (including Array) return data unchanged: there is no normative rule
// for filtering an Array by a prototype element.
func Filter(data, template llsd.Value) llsd.Value {
	if template.Kind() != llsd.Map {
		return data
	}
	tm, err := template.AsMap()
	if err != nil {
		return data
	}
	dm, err := data.AsMap()
	if err != nil {
		return llsd.NewUndefined()
	}
	_, wildcard := tm.Get("*")
	b := llsd.NewMapBuilder()
	dm.Range(func(k string, v llsd.Value) bool {
		if tv, ok := tm.Get(k); ok {
			_ = b.Put(k, Filter(v, tv))
		} else if wildcard {
			_ = b.Put(k, v)
		}
		return true
	})
	return b.Build()
}
