// Package binarycodec implements LLSD's length-prefixed, big-endian
// binary encoding: a 6-byte magic frame ("llsd-" + version byte 1)
// followed by one tagged value.
package binarycodec
