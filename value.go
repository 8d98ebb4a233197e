package llsd

import (
	"time"

	"github.com/google/uuid"
)

// Tag identifies which of the eleven LLSD variants a Value holds.
type Tag int

const (
	Undefined Tag = iota
	Boolean
	Integer
	Real
	String
	UUID
	Date
	URI
	Binary
	Array
	Map
)

func (t Tag) String() string {
	switch t {
	case Undefined:
		return "Undefined"
	case Boolean:
		return "Boolean"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case String:
		return "String"
	case UUID:
		return "UUID"
	case Date:
		return "Date"
	case URI:
		return "URI"
	case Binary:
		return "Binary"
	case Array:
		return "Array"
	case Map:
		return "Map"
	default:
		return "Unknown"
	}
}

// Value is the tagged union at the center of the LLSD data model. The
// zero Value is Undefined. Values are immutable once constructed; the
// only way to build a Map incrementally is through MapBuilder, which is
// not itself a Value until Build is called.
type Value struct {
	tag Tag

	b   bool
	i   int32
	r   float64
	s   string // used for both String and URI payloads
	u   uuid.UUID
	t   time.Time
	bin []byte
	arr []Value
	m   ValueMap
}

// Pair is one (key, Value) entry of a Map, in the order it was inserted.
type Pair struct {
	Key   string
	Value Value
}

// ValueMap is an ordered, unique-keyed association from string keys to
// Values. It preserves insertion order for iteration and serialization
// while offering O(1) lookup through a side index: an array-backed
// container with a side hash index.
type ValueMap struct {
	pairs []Pair
	index map[string]int
}

// Len returns the number of entries.
func (m ValueMap) Len() int { return len(m.pairs) }

// Get returns the value for key and whether it was present.
func (m ValueMap) Get(key string) (Value, bool) {
	if m.index == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.pairs[i].Value, true
}

// Keys returns the keys in insertion order. The returned slice is a copy
// and safe for the caller to mutate.
func (m ValueMap) Keys() []string {
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the (key, value) entries in insertion order. The
// returned slice is a copy of the header but shares Value payloads.
func (m ValueMap) Pairs() []Pair {
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (m ValueMap) Range(fn func(key string, v Value) bool) {
	for _, p := range m.pairs {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// MapBuilder incrementally constructs a Map, rejecting duplicate keys the
// instant they're encountered so a parser can report the position of the
// *second* occurrence. Not safe for concurrent use.
type MapBuilder struct {
	pairs []Pair
	index map[string]int
}

// NewMapBuilder returns an empty builder.
func NewMapBuilder() *MapBuilder {
	return &MapBuilder{index: make(map[string]int)}
}

// Put adds key/v. It returns ErrDuplicateKey if key was already present.
func (b *MapBuilder) Put(key string, v Value) error {
	if _, exists := b.index[key]; exists {
		return Newf(DuplicateKey, "duplicate map key %q", key)
	}
	b.index[key] = len(b.pairs)
	b.pairs = append(b.pairs, Pair{Key: key, Value: v})
	return nil
}

// Has reports whether key has already been added.
func (b *MapBuilder) Has(key string) bool {
	_, ok := b.index[key]
	return ok
}

// Len returns the number of entries added so far.
func (b *MapBuilder) Len() int { return len(b.pairs) }

// Build finalizes the builder into a Map Value. The builder must not be
// reused after Build.
func (b *MapBuilder) Build() Value {
	m := ValueMap{pairs: b.pairs, index: b.index}
	return Value{tag: Map, m: m}
}

// NewMap constructs a Map Value from pairs already known to have unique
// keys (e.g. produced programmatically rather than parsed). It returns
// ErrDuplicateKey if pairs contains a repeated key.
func NewMap(pairs ...Pair) (Value, error) {
	b := NewMapBuilder()
	for _, p := range pairs {
		if err := b.Put(p.Key, p.Value); err != nil {
			return Value{}, err
		}
	}
	return b.Build(), nil
}

// --- Constructors ---

func NewUndefined() Value { return Value{tag: Undefined} }

func NewBoolean(v bool) Value { return Value{tag: Boolean, b: v} }

func NewInteger(v int32) Value { return Value{tag: Integer, i: v} }

func NewReal(v float64) Value { return Value{tag: Real, r: v} }

func NewString(v string) Value { return Value{tag: String, s: v} }

func NewUUID(v uuid.UUID) Value { return Value{tag: UUID, u: v} }

func NewDate(v time.Time) Value { return Value{tag: Date, t: v.UTC()} }

func NewURI(v string) Value { return Value{tag: URI, s: v} }

// NewBinary constructs a Binary Value. The payload is copied so the
// caller's slice may be reused or mutated afterward.
func NewBinary(v []byte) Value {
	cp := make([]byte, len(v))
	copy(cp, v)
	return Value{tag: Binary, bin: cp}
}

// NewArray constructs an Array Value from elements. The slice header is
// copied but elements, being immutable Values, are shared.
func NewArray(elements ...Value) Value {
	cp := make([]Value, len(elements))
	copy(cp, elements)
	return Value{tag: Array, arr: cp}
}

// --- Inspection ---

// Kind returns the variant tag of v.
func (v Value) Kind() Tag { return v.tag }

// IsUndefined reports whether v is the Undefined variant.
func (v Value) IsUndefined() bool { return v.tag == Undefined }

// --- Typed accessors: return ErrWrongType on a mismatched variant ---

func (v Value) AsBoolean() (bool, error) {
	if v.tag != Boolean {
		return false, wrongType(Boolean, v.tag)
	}
	return v.b, nil
}

func (v Value) AsInteger() (int32, error) {
	if v.tag != Integer {
		return 0, wrongType(Integer, v.tag)
	}
	return v.i, nil
}

func (v Value) AsReal() (float64, error) {
	if v.tag != Real {
		return 0, wrongType(Real, v.tag)
	}
	return v.r, nil
}

func (v Value) AsString() (string, error) {
	if v.tag != String {
		return "", wrongType(String, v.tag)
	}
	return v.s, nil
}

func (v Value) AsUUID() (uuid.UUID, error) {
	if v.tag != UUID {
		return uuid.Nil, wrongType(UUID, v.tag)
	}
	return v.u, nil
}

func (v Value) AsDate() (time.Time, error) {
	if v.tag != Date {
		return time.Time{}, wrongType(Date, v.tag)
	}
	return v.t, nil
}

func (v Value) AsURI() (string, error) {
	if v.tag != URI {
		return "", wrongType(URI, v.tag)
	}
	return v.s, nil
}

func (v Value) AsBinary() ([]byte, error) {
	if v.tag != Binary {
		return nil, wrongType(Binary, v.tag)
	}
	cp := make([]byte, len(v.bin))
	copy(cp, v.bin)
	return cp, nil
}

func (v Value) AsArray() ([]Value, error) {
	if v.tag != Array {
		return nil, wrongType(Array, v.tag)
	}
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp, nil
}

func (v Value) AsMap() (ValueMap, error) {
	if v.tag != Map {
		return ValueMap{}, wrongType(Map, v.tag)
	}
	return v.m, nil
}

func wrongType(want, got Tag) *Error {
	return Newf(WrongType, "expected %s, got %s", want, got)
}

// CountElements returns the total number of Values in v's subtree,
// including v itself (a scalar counts as 1).
func CountElements(v Value) uint64 {
	var n uint64 = 1
	switch v.tag {
	case Array:
		for _, e := range v.arr {
			n += CountElements(e)
		}
	case Map:
		v.m.Range(func(_ string, e Value) bool {
			n += CountElements(e)
			return true
		})
	}
	return n
}

// MaxDepth returns the maximum nesting depth of v's subtree; a scalar
// has depth 1.
func MaxDepth(v Value) uint64 {
	switch v.tag {
	case Array:
		var max uint64
		for _, e := range v.arr {
			if d := MaxDepth(e); d > max {
				max = d
			}
		}
		return max + 1
	case Map:
		var max uint64
		v.m.Range(func(_ string, e Value) bool {
			if d := MaxDepth(e); d > max {
				max = d
			}
			return true
		})
		return max + 1
	default:
		return 1
	}
}
