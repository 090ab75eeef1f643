package mapping

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ziadkadry99/json-mapper/internal/fields"
)

var (
	// ErrMappingNotFound is returned by Edit when no mapping has the given
	// source field.
	ErrMappingNotFound = errors.New("mapping not found")
	// ErrNoBaseline is returned by Undo when no document was ever loaded.
	ErrNoBaseline = errors.New("no baseline document to restore")
)

// Store owns the live mapping document and the baseline captured when it
// was loaded. All operations are serialized by a single mutex so Save and
// Undo never observe a document mid-mutation.
type Store struct {
	mu       sync.Mutex
	live     *Document
	baseline *Document
}

// NewStore returns a Store holding an empty document and no baseline.
func NewStore() *Store {
	live := &Document{}
	live.normalize()
	return &Store{live: live}
}

// Load reads the document at path and makes it both the live document and
// the undo baseline. On error the store is left untouched.
func (s *Store) Load(path string) error {
	doc, err := LoadFile(path)
	if err != nil {
		return err
	}
	s.Reset(doc)
	return nil
}

// Reset installs doc as the live document and captures a deep copy of it
// as the undo baseline.
func (s *Store) Reset(doc *Document) {
	live := doc.Clone()
	if live == nil {
		live = &Document{}
	}
	live.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = live
	s.baseline = live.Clone()
}

// Document returns a deep copy of the live document.
func (s *Store) Document() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live.Clone()
}

// HasBaseline reports whether Undo can succeed.
func (s *Store) HasBaseline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline != nil
}

// Edit replaces the first mapping whose source field is oldSourceField,
// recomputing its confidence from typ. It returns the mapping as it was
// before the edit. Mismatches for the new source field are dropped.
func (s *Store) Edit(oldSourceField, sourceField, targetField string, typ fields.TypeTag) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.live.Mappings {
		if m.SourceField != oldSourceField {
			continue
		}
		s.live.Mappings[i] = NewRecord(sourceField, targetField, typ)
		s.live.removeMismatches(sourceField)
		return m, nil
	}
	return Record{}, fmt.Errorf("edit %q: %w", oldSourceField, ErrMappingNotFound)
}

// AddMapping appends a new mapping. Duplicate source fields are allowed;
// any mismatch for the same source field is dropped so a field is never
// both mapped and mismatched.
func (s *Store) AddMapping(sourceField, targetField string, typ fields.TypeTag) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := NewRecord(sourceField, targetField, typ)
	s.live.Mappings = append(s.live.Mappings, r)
	s.live.removeMismatches(sourceField)
	return r
}

// ResolveMismatch appends a mapping for sourceField and removes every
// mismatch for it. It returns the new mapping and the number of mismatches
// removed.
func (s *Store) ResolveMismatch(sourceField, targetField string, typ fields.TypeTag) (Record, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := NewRecord(sourceField, targetField, typ)
	s.live.Mappings = append(s.live.Mappings, r)
	return r, s.live.removeMismatches(sourceField)
}

// Undo discards every mutation by restoring a fresh copy of the baseline.
func (s *Store) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.baseline == nil {
		return ErrNoBaseline
	}
	s.live = s.baseline.Clone()
	return nil
}

// Save writes the live document to path. The baseline is not touched, so
// Undo after Save still reverts to the loaded document.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return WriteFile(path, s.live)
}
