package binarycodec

import (
	"time"

	"github.com/openmetaverse-tools/llsd"
)

// Config extends llsd.Config with the binary codec's one format-specific
// option, resolving the historical ambiguity over the magic frame's
// length.
type Config struct {
	llsd.Config
	// Legacy accepts the historical unframed 5-byte "llsd-" prefix (no
	// version byte) on parse. Never required, never emitted.
	Legacy bool
}

func toLLSDConfig(cfg *Config) *llsd.Config {
	if cfg == nil {
		return nil
	}
	c := cfg.Config
	return &c
}

func durationFromSeconds(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}

func secondsFromDuration(d time.Duration) float64 {
	return d.Seconds()
}
