package transform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/json-mapper/internal/fields"
)

// DefaultContainerKey holds the record list in both input and output batches.
const DefaultContainerKey = "transactions"

// ErrMissingContainer is returned when a batch has no record list under
// the container key.
var ErrMissingContainer = errors.New("batch has no record list under the container key")

// DecodeBatch extracts the records listed under containerKey.
func DecodeBatch(data []byte, containerKey string) ([]fields.Object, error) {
	root, err := fields.DecodeObject(data)
	if err != nil {
		return nil, err
	}
	raw, ok := root.Get(containerKey)
	if !ok {
		return nil, fmt.Errorf("%q: %w", containerKey, ErrMissingContainer)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%q is %s: %w", containerKey, fields.Kind(raw), ErrMissingContainer)
	}

	records := make([]fields.Object, 0, len(items))
	for i, item := range items {
		obj, ok := item.(fields.Object)
		if !ok {
			return nil, fmt.Errorf("record %d is %s, not an object", i, fields.Kind(item))
		}
		records = append(records, obj)
	}
	return records, nil
}

// ReadBatch loads the records of the batch file at path.
func ReadBatch(path, containerKey string) ([]fields.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch %s: %w", path, err)
	}
	records, err := DecodeBatch(data, containerKey)
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", path, err)
	}
	return records, nil
}

// EncodeBatch renders records as {containerKey: [...]} with two-space
// indentation.
func EncodeBatch(records []fields.Object, containerKey string) ([]byte, error) {
	items := make([]any, 0, len(records))
	for _, r := range records {
		items = append(items, r)
	}
	root := fields.NewObject()
	root.Set(containerKey, items)
	return fields.Encode(root)
}

// WriteBatch writes records to path as a single batch.
func WriteBatch(path, containerKey string, records []fields.Object) error {
	data, err := EncodeBatch(records, containerKey)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing batch %s: %w", path, err)
	}
	return nil
}
