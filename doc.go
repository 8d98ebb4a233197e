// Package llsd implements the Linden Lab Structured Data model: a
// self-describing, dynamically typed value with eleven variants
// (Undefined, Boolean, Integer, Real, String, UUID, Date, URI, Binary,
// Array, Map) and four interoperable wire encodings.
//
// This package holds the core: the Value tagged union, the error
// taxonomy shared by every codec, resource limits, and the equality,
// clone, and merge primitives the codecs and utilities build on. The
// codecs themselves live in the xmlcodec, notation, binarycodec, and
// jsoncodec subpackages; path lookup, template matching, and filtered
// clone live in llsdpath.
//
// The package is reentrant and holds no shared state: every function
// operates only on its arguments, and a single caller-owned Value may be
// read from multiple goroutines so long as no goroutine is still
// constructing it through a Builder.
package llsd
