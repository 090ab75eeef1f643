package confidence

import (
	"strings"

	"github.com/ziadkadry99/json-mapper/internal/fields"
)

// Tag is the coarse confidence color attached to a mapping or mismatch.
type Tag string

const (
	Green  Tag = "Green"
	Yellow Tag = "Yellow"
	Purple Tag = "Purple"
	Red    Tag = "Red"
)

// Tags lists every tag in descending order of confidence.
var Tags = []Tag{Green, Yellow, Purple, Red}

// Classify derives the confidence tag from a field type. It is a pure
// function of the tag; any type outside the known set is Red.
func Classify(t fields.TypeTag) Tag {
	switch t {
	case fields.TypeString, fields.TypeFloat, fields.TypeNumber:
		return Green
	case fields.TypeBoolean:
		return Yellow
	case fields.TypeNull:
		return Purple
	default:
		return Red
	}
}

// Parse matches s against the known tags, ignoring case and surrounding
// space. Proposals frequently return lower-case colors.
func Parse(s string) (Tag, bool) {
	s = strings.TrimSpace(s)
	for _, t := range Tags {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Accepted reports whether a proposal carrying this tag becomes a mapping
// rather than a mismatch.
func (t Tag) Accepted() bool {
	return t == Green || t == Yellow
}
