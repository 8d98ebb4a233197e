package llsd

// DeepClone duplicates v's entire subtree; no Array, Map, or Binary
// backing storage is shared with v. Scalars are copied by value, which
// for Go is already a duplication (strings, ints, floats, uuid.UUID,
// time.Time carry no mutable shared state).
func DeepClone(v Value) Value {
	switch v.tag {
	case Binary:
		return NewBinary(v.bin)
	case Array:
		elems := make([]Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = DeepClone(e)
		}
		return Value{tag: Array, arr: elems}
	case Map:
		b := NewMapBuilder()
		v.m.Range(func(key string, e Value) bool {
			// Range only ever visits unique keys drawn from the source
			// map, so Put cannot fail here.
			_ = b.Put(key, DeepClone(e))
			return true
		})
		return b.Build()
	default:
		return v
	}
}

// ShallowClone duplicates only v's top-level container: a new Array or
// Map header is returned, but its elements are the same immutable Value
// instances as v's (aliased, not copied). For non-container tags this is
// identical to returning v itself, since scalars have no nested
// storage to alias.
func ShallowClone(v Value) Value {
	switch v.tag {
	case Array:
		elems := make([]Value, len(v.arr))
		copy(elems, v.arr)
		return Value{tag: Array, arr: elems}
	case Map:
		pairs := make([]Pair, len(v.m.pairs))
		copy(pairs, v.m.pairs)
		index := make(map[string]int, len(v.m.index))
		for k, i := range v.m.index {
			index[k] = i
		}
		return Value{tag: Map, m: ValueMap{pairs: pairs, index: index}}
	default:
		return v
	}
}
