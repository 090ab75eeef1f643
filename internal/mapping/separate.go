package mapping

import (
	"slices"

	"github.com/ziadkadry99/json-mapper/internal/confidence"
)

// Separate splits proposal candidates into a document. Green and yellow
// candidates (case-insensitive) become mappings as-is. Red candidates
// become mismatches unless their source field is mapped elsewhere in the
// proposal. Other colors are dropped. A nil proposal yields an empty
// document.
func Separate(candidates []Record) *Document {
	doc := &Document{}
	doc.normalize()

	mapped := make(map[string]bool)
	for _, c := range candidates {
		tag, _ := confidence.Parse(string(c.Confidence))
		switch {
		case tag.Accepted():
			doc.Mappings = append(doc.Mappings, c)
			mapped[c.SourceField] = true
		case tag == confidence.Red && !mapped[c.SourceField]:
			doc.Mismatches = append(doc.Mismatches, Mismatch{
				SourceField: c.SourceField,
				SourceType:  c.Type,
				Confidence:  c.Confidence,
			})
		}
	}

	// A red candidate may precede the accepted one for the same field.
	doc.Mismatches = slices.DeleteFunc(doc.Mismatches, func(m Mismatch) bool {
		return mapped[m.SourceField]
	})
	return doc
}
