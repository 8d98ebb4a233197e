package llsd

// Config carries the resource-limit and per-format options every codec
// accepts. The zero value is ready to use and applies sensible defaults;
// callers that need different budgets set the fields they care about
// before passing the Config to a codec's Parse/Serialize.
//
// A Limits value built from a Config is threaded through a recursive
// descent the same way a validation context would be, except it fails
// fast the instant a budget is exceeded rather than accumulating errors
// to report later.
type Config struct {
	// MaxDepth bounds nesting depth of Array/Map. Zero means "use the
	// default" (1000); use a negative value for "unlimited" (not
	// recommended outside of trusted input).
	MaxDepth int
	// MaxElements bounds the cumulative number of Values produced by a
	// single parse. Zero means "use the default" (100000).
	MaxElements int
	// MaxStringBytes bounds the UTF-8 byte length of any single String
	// or URI. Zero means "use the default" (16 MiB).
	MaxStringBytes int64
	// MaxBinaryBytes bounds the byte length of any single Binary. Zero
	// means "use the default" (256 MiB).
	MaxBinaryBytes int64
}

const (
	defaultMaxDepth       = 1000
	defaultMaxElements    = 100000
	defaultMaxStringBytes = 16 << 20
	defaultMaxBinaryBytes = 256 << 20
)

func (c *Config) maxDepth() int {
	if c == nil || c.MaxDepth == 0 {
		return defaultMaxDepth
	}
	return c.MaxDepth
}

func (c *Config) maxElements() int {
	if c == nil || c.MaxElements == 0 {
		return defaultMaxElements
	}
	return c.MaxElements
}

func (c *Config) maxStringBytes() int64 {
	if c == nil || c.MaxStringBytes == 0 {
		return defaultMaxStringBytes
	}
	return c.MaxStringBytes
}

func (c *Config) maxBinaryBytes() int64 {
	if c == nil || c.MaxBinaryBytes == 0 {
		return defaultMaxBinaryBytes
	}
	return c.MaxBinaryBytes
}

// Limits tracks the running depth and element count for one parse call.
// A codec constructs one Limits at the start of Parse and threads it
// through every recursive call via Enter/Leave and Count.
type Limits struct {
	maxDepth    int
	maxElements int
	maxString   int64
	maxBinary   int64

	depth    int
	elements int
}

// NewLimits builds a Limits tracker from a Config (nil means defaults).
func NewLimits(cfg *Config) *Limits {
	return &Limits{
		maxDepth:    cfg.maxDepth(),
		maxElements: cfg.maxElements(),
		maxString:   cfg.maxStringBytes(),
		maxBinary:   cfg.maxBinaryBytes(),
	}
}

// Enter records descent into a nested Array/Map, failing with Limit if
// MaxDepth would be exceeded. Every Enter must be paired with a Leave.
func (l *Limits) Enter() error {
	l.depth++
	if l.maxDepth >= 0 && l.depth > l.maxDepth {
		return Newf(Limit, "max depth %d exceeded at depth %d", l.maxDepth, l.depth)
	}
	return nil
}

// Leave undoes the bookkeeping from a matching Enter.
func (l *Limits) Leave() {
	l.depth--
}

// Count records production of one more Value, failing with Limit if
// MaxElements would be exceeded.
func (l *Limits) Count() error {
	l.elements++
	if l.maxElements >= 0 && l.elements > l.maxElements {
		return Newf(Limit, "max element count %d exceeded", l.maxElements)
	}
	return nil
}

// CheckStringBytes fails with Limit if n exceeds MaxStringBytes.
func (l *Limits) CheckStringBytes(n int) error {
	if l.maxString >= 0 && int64(n) > l.maxString {
		return Newf(Limit, "string of %d bytes exceeds max string bytes %d", n, l.maxString)
	}
	return nil
}

// CheckBinaryBytes fails with Limit if n exceeds MaxBinaryBytes.
func (l *Limits) CheckBinaryBytes(n int) error {
	if l.maxBinary >= 0 && int64(n) > l.maxBinary {
		return Newf(Limit, "binary of %d bytes exceeds max binary bytes %d", n, l.maxBinary)
	}
	return nil
}

// Depth returns the current nesting depth.
func (l *Limits) Depth() int { return l.depth }
