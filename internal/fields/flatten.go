package fields

// Flatten returns the dotted path of every leaf field in value, in key
// order. Arrays are treated as homogeneous: only their first element is
// walked, and array indices never appear in a path. Intermediate objects
// are not emitted, so an empty object contributes nothing. A field holding
// an empty array is a leaf.
//
// prefix is prepended to every path; a scalar value yields [prefix] when
// prefix is non-empty.
func Flatten(value any, prefix string) []string {
	switch v := value.(type) {
	case Object:
		var paths []string
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			child := Join(prefix, pair.Key)
			if descends(pair.Value) {
				paths = append(paths, Flatten(pair.Value, child)...)
			} else {
				paths = append(paths, child)
			}
		}
		return paths

	case []any:
		if len(v) == 0 {
			return nil
		}
		return Flatten(v[0], prefix)
	}

	if prefix == "" {
		return nil
	}
	return []string{prefix}
}

// descends reports whether Flatten recurses into v rather than emitting it.
func descends(v any) bool {
	switch c := v.(type) {
	case Object:
		return true
	case []any:
		return len(c) > 0
	}
	return false
}
