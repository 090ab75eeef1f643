package mapping

import "github.com/ziadkadry99/json-mapper/internal/confidence"

// Stats summarizes a document for dashboards and reports.
type Stats struct {
	Mappings     int                    `json:"mappings"`
	Mismatches   int                    `json:"mismatches"`
	ByConfidence map[confidence.Tag]int `json:"by_confidence"`
}

// Stats counts mappings per confidence tag. Tags are normalized, so a
// stored "green" counts as Green; unrecognized colors count as Red.
func (d *Document) Stats() Stats {
	st := Stats{
		Mappings:     len(d.Mappings),
		Mismatches:   len(d.Mismatches),
		ByConfidence: make(map[confidence.Tag]int, len(confidence.Tags)),
	}
	for _, t := range confidence.Tags {
		st.ByConfidence[t] = 0
	}
	for _, m := range d.Mappings {
		tag, ok := confidence.Parse(string(m.Confidence))
		if !ok {
			tag = confidence.Red
		}
		st.ByConfidence[tag]++
	}
	return st
}
