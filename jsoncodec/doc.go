// Package jsoncodec implements LLSD's JSON projection: a lossy-by-default
// mapping onto plain JSON for JavaScript-ecosystem interop. It is
// deliberately not the canonical format, and several
// type distinctions the core Value model makes (URI vs String, Date
// vs String, Binary vs String) only round-trip when the caller opts
// into the relevant detection or wrapping mode. UUIDs are always
// restored from any string matching the canonical 8-4-4-4-12 pattern.
//
// The scanner and writer are hand-rolled rather than built on
// encoding/json: json.Marshal has no hook for LLSD's Integer-vs-Real
// emission distinction or its NaN/Infinity sentinel convention short of
// a custom MarshalJSON per Value variant, at which point a direct
// recursive-descent writer is simpler and matches this codebase's other
// codecs better than reflection-driven marshaling.
package jsoncodec
