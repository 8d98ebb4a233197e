package xmlcodec

import "github.com/openmetaverse-tools/llsd"

// Config extends llsd.Config with the XML codec's serialization options.
// Decoding never consults Indent or Compact; they only affect Serialize.
type Config struct {
	llsd.Config
	// Indent is the number of spaces per nesting level when pretty
	// printing. Zero selects the default of 2.
	Indent int
	// Compact disables pretty printing: no inter-element whitespace and
	// no trailing newline.
	Compact bool
}

func toLLSDConfig(cfg *Config) *llsd.Config {
	if cfg == nil {
		return nil
	}
	c := cfg.Config
	return &c
}

func indentWidth(cfg *Config) int {
	if cfg == nil || cfg.Indent <= 0 {
		return 2
	}
	return cfg.Indent
}

func isCompact(cfg *Config) bool {
	return cfg != nil && cfg.Compact
}
