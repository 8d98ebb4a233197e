package llsd

import (
	"strings"
	"time"
)

// iso8601Layout is the parse layout used across all codecs: time.Parse
// with a ".999999999" fractional reference accepts any number of
// fractional digits (including none), so one layout suffices for
// "YYYY-MM-DDTHH:MM:SSZ" and "YYYY-MM-DDTHH:MM:SS.fffZ" alike.
const iso8601Layout = "2006-01-02T15:04:05.999999999Z07:00"

// FormatDate renders t as ISO-8601 UTC text: milliseconds are included
// only when non-zero, and the result always ends in "Z". Every codec in
// this module formats dates through this function so the XML, notation,
// and JSON encodings agree on text.
func FormatDate(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	ms := t.Round(time.Millisecond)
	if ms.Nanosecond() == 0 {
		return ms.Format("2006-01-02T15:04:05Z")
	}
	return ms.Format("2006-01-02T15:04:05.000Z")
}

// ParseDate parses the ISO-8601 UTC text produced by FormatDate (or any
// compatible RFC 3339 variant with zero or more fractional digits).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(iso8601Layout, s)
	if err != nil {
		return time.Time{}, Newf(Syntax, "invalid ISO-8601 date %q: %v", s, err)
	}
	return t.UTC(), nil
}

// EpochDate is the Date value an empty date string decodes to in the XML
// encoding: empty means epoch zero.
var EpochDate = time.Unix(0, 0).UTC()

// LooksLikeISO8601 is a cheap structural pre-check for callers that must
// decide whether a String is plausibly a Date before attempting a full
// parse (e.g. jsoncodec's opt-in Date detection). It does not replace
// ParseDate's validation.
func LooksLikeISO8601(s string) bool {
	if len(s) < len("2006-01-02T15:04:05Z") {
		return false
	}
	return s[4] == '-' && s[7] == '-' && s[10] == 'T' &&
		(strings.HasSuffix(s, "Z") || strings.Contains(s, "+") || strings.LastIndex(s, "-") > 10)
}
