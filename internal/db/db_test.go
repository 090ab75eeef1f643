package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	for _, table := range []string{"audit_entries", "mapping_revisions"} {
		var count int
		err := d.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenDirCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	d, err := OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir() error: %v", err)
	}
	defer d.Close()

	if want := filepath.Join(dir, FileName); d.Path() != want {
		t.Errorf("Path() = %q, want %q", d.Path(), want)
	}
	if _, err := d.Exec(`INSERT INTO audit_entries (id, action) VALUES ('a', 'edit')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
}
