package llsd

// Merge performs a structural merge: when base and overlay are both
// Maps, Merge recurses key by key; overlay's scalar values win over
// base's; Arrays are replaced atomically (never element-wise merged);
// and for any other combination of kinds, overlay wins outright.
func Merge(base, overlay Value) Value {
	if base.tag != Map || overlay.tag != Map {
		return overlay
	}

	b := NewMapBuilder()
	base.m.Range(func(key string, v Value) bool {
		if ov, ok := overlay.m.Get(key); ok {
			_ = b.Put(key, Merge(v, ov))
		} else {
			_ = b.Put(key, v)
		}
		return true
	})
	overlay.m.Range(func(key string, ov Value) bool {
		if !b.Has(key) {
			_ = b.Put(key, ov)
		}
		return true
	})
	return b.Build()
}
