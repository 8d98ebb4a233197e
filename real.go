package llsd

import (
	"math"
	"strconv"
	"strings"
)

// ParseRealToken parses the textual form every codec uses for Real:
// a decimal/scientific literal, or the case-insensitive sentinels "nan",
// "inf", "-inf".
func ParseRealToken(tok string) (float64, error) {
	switch strings.ToLower(tok) {
	case "nan":
		return math.NaN(), nil
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	return f, nil
}

// FormatRealToken renders f using the shortest round-trip decimal
// representation for finite values, or the lowercase sentinels "nan",
// "inf", "-inf" for non-finite ones.
func FormatRealToken(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
