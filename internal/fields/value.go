package fields

import (
	"encoding/json"
	"fmt"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a decoded JSON object. Keys iterate in document order, which
// keeps flattened paths and transformed records stable.
type Object = *orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object.
func NewObject() Object {
	return orderedmap.New[string, any]()
}

// Decode parses a JSON document. Objects decode to Object, arrays to []any,
// numbers to json.Number (so integers and floats stay distinguishable and
// re-encode verbatim), strings to string, booleans to bool and null to nil.
func Decode(data []byte) (any, error) {
	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("decoding json: %w", err)
	}
	return decodeValue(raw, dataType)
}

// DecodeObject parses a JSON document whose root must be an object.
func DecodeObject(data []byte) (Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("decoding json: root is %s, not an object", Kind(v))
	}
	return obj, nil
}

func decodeValue(raw []byte, dataType jsonparser.ValueType) (any, error) {
	switch dataType {
	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(raw, func(key, value []byte, vt jsonparser.ValueType, _ int) error {
			k, err := jsonparser.ParseString(key)
			if err != nil {
				return fmt.Errorf("object key %q: %w", key, err)
			}
			v, err := decodeValue(value, vt)
			if err != nil {
				return fmt.Errorf("field %q: %w", k, err)
			}
			obj.Set(k, v)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil

	case jsonparser.Array:
		items := []any{}
		var itemErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, vt jsonparser.ValueType, _ int, err error) {
			if itemErr != nil {
				return
			}
			if err != nil {
				itemErr = err
				return
			}
			v, err := decodeValue(value, vt)
			if err != nil {
				itemErr = err
				return
			}
			items = append(items, v)
		})
		if err != nil {
			return nil, err
		}
		if itemErr != nil {
			return nil, itemErr
		}
		return items, nil

	case jsonparser.String:
		return jsonparser.ParseString(raw)

	case jsonparser.Number:
		return json.Number(string(raw)), nil

	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(raw)

	case jsonparser.Null:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported json value %q", raw)
	}
}

// Encode renders v as indented JSON, preserving Object key order.
func Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return data, nil
}
