package fields

import "encoding/json"

// Field is one entry of a document summary handed to the mapping proposer.
type Field struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
}

// Describe lists every path in document together with its runtime kind.
// Unlike Flatten it includes object and array paths and walks every array
// element; repeated (path, kind) pairs are reported once.
func Describe(document any) []Field {
	var out []Field
	seen := make(map[Field]bool)
	describe(document, "", &out, seen)
	return out
}

func describe(value any, prefix string, out *[]Field, seen map[Field]bool) {
	switch v := value.(type) {
	case Object:
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			f := Field{Path: Join(prefix, pair.Key), Kind: Kind(pair.Value)}
			if !seen[f] {
				seen[f] = true
				*out = append(*out, f)
			}
			describe(pair.Value, f.Path, out, seen)
		}
	case []any:
		for _, item := range v {
			describe(item, prefix, out, seen)
		}
	}
}

// Kind names the JSON kind of a decoded value.
func Kind(v any) string {
	switch n := v.(type) {
	case Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case json.Number:
		if isFloatLiteral(string(n)) {
			return "float"
		}
		return "integer"
	default:
		return string(TypeOf(v))
	}
}
