package jsoncodec

import "github.com/openmetaverse-tools/llsd"

// Config extends llsd.Config with the JSON projection's detection and
// emission options. The zero value is the conservative round-trip
// default: URIs and Dates decode as plain Strings, Binary decodes as a
// base64 String, and non-finite Reals are emitted as sentinel strings.
type Config struct {
	llsd.Config

	// URIDetection promotes JSON strings shaped like a URI (containing a
	// "scheme:" prefix) to the URI variant on parse. Off by default.
	URIDetection bool
	// DateDetection promotes JSON strings parseable as ISO-8601 to the
	// Date variant on parse. Off by default.
	DateDetection bool
	// BinaryWrap, on parse, recognizes the single-key object
	// {"__llsd_binary":"<base64>"} as a Binary value; on serialize, it
	// emits Binary values in that wrapped form instead of a bare base64
	// string.
	BinaryWrap bool
	// NonStrict emits non-finite Reals as bare NaN/Infinity/-Infinity
	// tokens instead of the default quoted sentinel strings. The parser
	// always accepts both forms regardless of this flag.
	NonStrict bool

	// Indent is the number of spaces per nesting level when pretty
	// printing. Zero means compact (no inter-element whitespace).
	Indent int
}

func toLLSDConfig(cfg *Config) *llsd.Config {
	if cfg == nil {
		return nil
	}
	c := cfg.Config
	return &c
}
