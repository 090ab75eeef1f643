package fields

import (
	"encoding/json"
	"strings"
)

// TypeTag is the primitive type of a field, derived from a sample value.
type TypeTag string

const (
	TypeString  TypeTag = "str"
	TypeFloat   TypeTag = "float"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeNull    TypeTag = "null"
	TypeList    TypeTag = "list"
	TypeUnknown TypeTag = "unknown"
)

// TypeTags lists every tag TypeOf can produce.
var TypeTags = []TypeTag{TypeString, TypeFloat, TypeNumber, TypeBoolean, TypeNull, TypeList, TypeUnknown}

// Known reports whether t is one of TypeTags. Stored documents may carry
// other strings (for example from a proposal); those classify as unknown.
func (t TypeTag) Known() bool {
	for _, known := range TypeTags {
		if t == known {
			return true
		}
	}
	return false
}

// Resolve walks document along path. Objects are descended by key; an
// array is replaced by its first element before the key is applied. Only
// one level of array is unwrapped. The walk stops at the first missing key
// or non-object, returning nil.
func Resolve(document any, path string) any {
	value := document
	for _, key := range Segments(path) {
		if list, ok := value.([]any); ok && len(list) > 0 {
			value = list[0]
		}

		obj, ok := value.(Object)
		if !ok {
			return nil
		}
		value, ok = obj.Get(key)
		if !ok || value == nil {
			return nil
		}
	}
	return value
}

// InferType resolves path against a sample document and classifies the
// value found there.
func InferType(document any, path string) TypeTag {
	return TypeOf(Resolve(document, path))
}

// TypeOf classifies a decoded JSON value.
func TypeOf(v any) TypeTag {
	switch n := v.(type) {
	case bool:
		return TypeBoolean
	case string:
		return TypeString
	case json.Number:
		if isFloatLiteral(string(n)) {
			return TypeFloat
		}
		return TypeNumber
	case float32, float64:
		return TypeFloat
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeNumber
	case nil:
		return TypeNull
	case []any:
		return TypeList
	default:
		return TypeUnknown
	}
}

func isFloatLiteral(s string) bool {
	return strings.ContainsAny(s, ".eE")
}
