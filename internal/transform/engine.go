package transform

import (
	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// Engine applies a mapping document to source records. The exact-match
// lookup is built once and reused for every record.
type Engine struct {
	mappings []mapping.Record
	exact    map[string]mapping.Record
}

// New builds an Engine for doc. When several mappings share a source
// field, the first one wins for exact lookups.
func New(doc *mapping.Document) *Engine {
	e := &Engine{exact: make(map[string]mapping.Record)}
	if doc == nil {
		return e
	}
	e.mappings = doc.Clone().Mappings
	for _, m := range e.mappings {
		if _, ok := e.exact[m.SourceField]; !ok {
			e.exact[m.SourceField] = m
		}
	}
	return e
}

// Record produces the target-shaped record for one source record.
//
// A top-level source field with an exact mapping is copied, unconverted,
// under the last segment of its target field. An object-valued field
// without one is matched against nested mappings (source fields below it):
// each child present in the object lands either at the top level or under
// the target's parent segment. Everything else is dropped.
func (e *Engine) Record(source fields.Object) fields.Object {
	out := fields.NewObject()
	for pair := source.Oldest(); pair != nil; pair = pair.Next() {
		field, value := pair.Key, pair.Value

		if m, ok := e.exact[field]; ok {
			out.Set(fields.Last(m.TargetField), value)
			continue
		}

		nested, ok := value.(fields.Object)
		if !ok {
			continue
		}
		for _, m := range e.mappings {
			if !fields.IsNested(m.SourceField, field) {
				continue
			}
			v, ok := nested.Get(fields.Last(m.SourceField))
			if !ok {
				continue
			}
			key := fields.Last(m.TargetField)
			parentKey, ok := fields.Parent(m.TargetField)
			if !ok {
				out.Set(key, v)
				continue
			}
			parentObject(out, parentKey).Set(key, v)
		}
	}
	return out
}

// Batch transforms every record in order.
func (e *Engine) Batch(records []fields.Object) []fields.Object {
	out := make([]fields.Object, 0, len(records))
	for _, r := range records {
		out = append(out, e.Record(r))
	}
	return out
}

// Transform is a convenience wrapper around New(doc).Batch(records).
func Transform(doc *mapping.Document, records []fields.Object) []fields.Object {
	return New(doc).Batch(records)
}

// parentObject returns the object stored under key in out, creating it
// (and replacing any non-object value) when needed.
func parentObject(out fields.Object, key string) fields.Object {
	if existing, ok := out.Get(key); ok {
		if obj, ok := existing.(fields.Object); ok {
			return obj
		}
	}
	obj := fields.NewObject()
	out.Set(key, obj)
	return obj
}
