package llsd

import "math"

// Equal reports whether a and b are structurally equal. Real values are
// compared with RealEqual(bitsPrecision); Binary is byte-equal; Map
// equality considers only the key set and per-key value equality. Order
// is irrelevant here: it only matters for serialized output, not for
// equality.
func Equal(a, b Value, bitsPrecision int) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case Undefined:
		return true
	case Boolean:
		return a.b == b.b
	case Integer:
		return a.i == b.i
	case Real:
		return RealEqual(a.r, b.r, bitsPrecision)
	case String, URI:
		return a.s == b.s
	case UUID:
		return a.u == b.u
	case Date:
		return a.t.Equal(b.t)
	case Binary:
		return bytesEqual(a.bin, b.bin)
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i], bitsPrecision) {
				return false
			}
		}
		return true
	case Map:
		if a.m.Len() != b.m.Len() {
			return false
		}
		equal := true
		a.m.Range(func(key string, av Value) bool {
			bv, ok := b.m.Get(key)
			if !ok || !Equal(av, bv, bitsPrecision) {
				equal = false
				return false
			}
			return true
		})
		return equal
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RealEqual implements bit-precision-aware Real equality: equality holds
// iff the sign, exponent, and the first bitsPrecision mantissa bits
// agree. bitsPrecision must be in [-1, 52].
//
// bitsPrecision == -1 requests bit-exact equality: the full 64-bit IEEE
// representations must match exactly, so -0.0 and +0.0 compare unequal
// and a NaN compares equal to another value with the identical bit
// pattern. This is the comparison round-trip tests use.
//
// For bitsPrecision in [0, 52], any NaN operand makes the comparison
// false regardless of bit pattern, per the testable property that NaN
// never compares equal to itself once a finite precision is requested.
func RealEqual(a, b float64, bitsPrecision int) bool {
	ab := math.Float64bits(a)
	bb := math.Float64bits(b)

	if bitsPrecision == -1 {
		return ab == bb
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if bitsPrecision < 0 {
		bitsPrecision = 0
	}
	if bitsPrecision > 52 {
		bitsPrecision = 52
	}
	shift := uint(52 - bitsPrecision)
	return (ab >> shift) == (bb >> shift)
}
