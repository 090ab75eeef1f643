package audit

import (
	"time"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// ActorType identifies who performed an action.
type ActorType string

const (
	// ActorUser marks changes made through the HTTP entry points.
	ActorUser ActorType = "user"
	// ActorSystem marks changes made by CLI runs such as propose and transform.
	ActorSystem ActorType = "system"
)

// Entry is a single audit trail record. PreviousValue and NewValue hold
// the JSON encoding of the change's snapshots.
type Entry struct {
	ID            string     `json:"id"`
	Timestamp     time.Time  `json:"timestamp"`
	Actor         ActorType  `json:"actor"`
	Action        mapping.Op `json:"action"`
	SourceField   string     `json:"j1_field,omitempty"`
	Summary       string     `json:"summary"`
	PreviousValue string     `json:"previous_value,omitempty"`
	NewValue      string     `json:"new_value,omitempty"`
}

// Revision is a saved copy of a mapping document.
type Revision struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Path       string    `json:"path"`
	Mappings   int       `json:"mappings"`
	Mismatches int       `json:"mismatches"`
	Body       string    `json:"-"`
}

// Document decodes the saved body.
func (r *Revision) Document() (*mapping.Document, error) {
	return mapping.Decode([]byte(r.Body))
}
