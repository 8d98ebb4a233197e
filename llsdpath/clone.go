package llsdpath

import "github.com/openmetaverse-tools/llsd"

// FilteredClone deep-clones v, optionally dropping Map keys per filterMap:
// a Boolean leaf of false drops the key, true (or the wildcard key "*"
// mapped to true) retains it, and a nested Map in filterMap recurses the
// same filtering into the corresponding nested value. A Undefined
// filterMap (the zero Value) behaves exactly like llsd.DeepClone.
func FilteredClone(v llsd.Value, filterMap llsd.Value) llsd.Value {
	if filterMap.IsUndefined() {
		return llsd.DeepClone(v)
	}
	if v.Kind() != llsd.Map {
		return llsd.DeepClone(v)
	}
	fm, err := filterMap.AsMap()
	if err != nil {
		return llsd.DeepClone(v)
	}
	vm, _ := v.AsMap()
	wildcardEntry, hasWildcard := fm.Get("*")

	b := llsd.NewMapBuilder()
	vm.Range(func(k string, child llsd.Value) bool {
		entry, found := fm.Get(k)
		if !found {
			if hasWildcard && wildcardAdmits(wildcardEntry) {
				_ = b.Put(k, llsd.DeepClone(child))
			}
			return true
		}
		switch entry.Kind() {
		case llsd.Boolean:
			if admit, _ := entry.AsBoolean(); admit {
				_ = b.Put(k, llsd.DeepClone(child))
			}
		case llsd.Map:
			_ = b.Put(k, FilteredClone(child, entry))
		default:
			_ = b.Put(k, llsd.DeepClone(child))
		}
		return true
	})
	return b.Build()
}

func wildcardAdmits(entry llsd.Value) bool {
	if entry.Kind() != llsd.Boolean {
		return true
	}
	admit, _ := entry.AsBoolean()
	return admit
}
