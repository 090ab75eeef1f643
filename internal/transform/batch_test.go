package transform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "j1.json")
	out := filepath.Join(dir, "out", "j2_output.json")
	input := `{"transactions": [{"amount": 12.5, "payer": {"name": "Ada", "iban": "X"}}, {"amount": 3}]}`
	if err := os.WriteFile(in, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	d := doc(
		mapping.NewRecord("amount", "total", fields.TypeFloat),
		mapping.NewRecord("payer.name", "customer.name", fields.TypeString),
	)
	n, err := New(d).RunFile(in, out, DefaultContainerKey)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if n != 2 {
		t.Errorf("records = %d, want 2", n)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := `{
  "transactions": [
    {
      "total": 12.5,
      "customer": {
        "name": "Ada"
      }
    },
    {
      "total": 3
    }
  ]
}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBatchErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"missing container", `{"records": []}`},
		{"container not a list", `{"transactions": {"a": 1}}`},
		{"record not an object", `{"transactions": [1]}`},
		{"root not an object", `[]`},
	}
	for _, tt := range tests {
		if _, err := DecodeBatch([]byte(tt.json), DefaultContainerKey); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	_, err := DecodeBatch([]byte(`{"records": []}`), DefaultContainerKey)
	if !errors.Is(err, ErrMissingContainer) {
		t.Errorf("error = %v, want ErrMissingContainer", err)
	}
}

func TestEncodeEmptyBatch(t *testing.T) {
	data, err := EncodeBatch(nil, "rows")
	if err != nil {
		t.Fatalf("EncodeBatch: %v", err)
	}
	if got := string(data); got != "{\n  \"rows\": []\n}" {
		t.Errorf("EncodeBatch = %s", got)
	}
}

func TestReadBatchMissingFile(t *testing.T) {
	_, err := ReadBatch(filepath.Join(t.TempDir(), "absent.json"), DefaultContainerKey)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
