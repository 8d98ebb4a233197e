package llsd

// IsCanonicalUUID reports whether s matches the canonical 8-4-4-4-12
// hyphenated hex UUID pattern. It does not allocate and is used by the
// JSON projection's syntactic auto-promotion and by llsdpath's UUID
// coercions.
func IsCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range []byte(s) {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHexDigit(c) {
				return false
			}
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
