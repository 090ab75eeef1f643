package fields

import "strings"

// Separator joins the segments of a field path.
const Separator = "."

// Join appends key to prefix, omitting the separator when prefix is empty.
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + Separator + key
}

// Segments splits a field path into its object keys.
func Segments(path string) []string {
	return strings.Split(path, Separator)
}

// Last returns the final segment of path.
func Last(path string) string {
	if i := strings.LastIndex(path, Separator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Parent returns the second-to-last segment of path. The boolean is false
// for single-segment paths.
func Parent(path string) (string, bool) {
	segs := Segments(path)
	if len(segs) < 2 {
		return "", false
	}
	return segs[len(segs)-2], true
}

// IsNested reports whether path is nested below the top-level field.
func IsNested(path, field string) bool {
	return strings.HasPrefix(path, field+Separator)
}
