package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Decode parses a persisted mapping document. Absent sections decode as
// empty lists.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding mapping document: %w", err)
	}
	doc.normalize()
	return &doc, nil
}

// Encode renders d in the persisted shape with two-space indentation.
func (d *Document) Encode() ([]byte, error) {
	out := d.Clone()
	out.normalize()
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding mapping document: %w", err)
	}
	return data, nil
}

// normalize replaces nil sections with empty ones so they encode as [].
func (d *Document) normalize() {
	if d.Mappings == nil {
		d.Mappings = []Record{}
	}
	if d.Mismatches == nil {
		d.Mismatches = []Mismatch{}
	}
}

// LoadFile reads a mapping document from path. A missing file yields an
// error wrapping os.ErrNotExist.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping document %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// WriteFile persists d to path, creating parent directories as needed.
func WriteFile(path string, d *Document) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing mapping document %s: %w", path, err)
	}
	return nil
}
