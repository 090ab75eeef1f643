package mapping

import (
	"slices"

	"github.com/ziadkadry99/json-mapper/internal/confidence"
	"github.com/ziadkadry99/json-mapper/internal/fields"
)

// Record is one accepted correspondence between a source and a target field.
type Record struct {
	SourceField string         `json:"j1_field"`
	TargetField string         `json:"j2_field"`
	Type        fields.TypeTag `json:"type"`
	Confidence  confidence.Tag `json:"color"`
}

// NewRecord builds a Record whose confidence is derived from typ.
func NewRecord(sourceField, targetField string, typ fields.TypeTag) Record {
	return Record{
		SourceField: sourceField,
		TargetField: targetField,
		Type:        typ,
		Confidence:  confidence.Classify(typ),
	}
}

// Mismatch is a source field without an accepted correspondence.
type Mismatch struct {
	SourceField string         `json:"j1_field"`
	SourceType  fields.TypeTag `json:"j1_type"`
	Confidence  confidence.Tag `json:"color"`
}

// Document is the unit of persistence, editing and undo.
type Document struct {
	Mappings   []Record   `json:"mappings"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		Mappings:   slices.Clone(d.Mappings),
		Mismatches: slices.Clone(d.Mismatches),
	}
}

// Find returns the first mapping for sourceField.
func (d *Document) Find(sourceField string) (Record, bool) {
	for _, m := range d.Mappings {
		if m.SourceField == sourceField {
			return m, true
		}
	}
	return Record{}, false
}

// removeMismatches drops every mismatch for sourceField and returns how
// many were removed.
func (d *Document) removeMismatches(sourceField string) int {
	before := len(d.Mismatches)
	d.Mismatches = slices.DeleteFunc(d.Mismatches, func(m Mismatch) bool {
		return m.SourceField == sourceField
	})
	return before - len(d.Mismatches)
}
