// Package llsdpath implements Value utilities with no wire-format
// knowledge of their own: dotted-path lookup with a narrow set of typed
// coercions, template match/filter, and a filter-map-driven deep clone.
// Bit-precision equality, plain deep/shallow clone, and structural merge
// live on the root llsd package since they operate on Values without any
// path or template concept.
//
// The typed accessors favor a permissive, set-or-default style: a
// missing or wrong-kind path returns the caller's default rather than an
// error. Matches and Filter favor a recursive-descent walk that
// accumulates a result Value instead of an error list.
package llsdpath
