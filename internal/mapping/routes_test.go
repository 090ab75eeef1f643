package mapping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

type recordingRecorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *recordingRecorder) RecordChange(_ context.Context, c Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
	return nil
}

func setupRouter(t *testing.T) (chi.Router, *Store, *recordingRecorder, string) {
	t.Helper()
	s, _ := loadedStore(t)
	rec := &recordingRecorder{}
	savePath := filepath.Join(t.TempDir(), "mapping_document_revised.json")
	r := chi.NewRouter()
	RegisterRoutes(r, s, RouteOptions{SavePath: savePath, Recorder: rec})
	return r, s, rec, savePath
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, result) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var res result
	if strings.HasPrefix(path, "/api/") {
		return rr, res
	}
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decoding %s response: %v", path, err)
	}
	return rr, res
}

func TestHTTPEditMapping(t *testing.T) {
	r, s, rec, _ := setupRouter(t)

	rr, res := do(t, r, http.MethodPost, "/edit_mapping",
		`{"old_j1_field": "amount", "j1_field": "amount", "j2_field": "sum", "type": "number"}`)
	if rr.Code != http.StatusOK || !res.Success {
		t.Fatalf("status = %d, result = %+v", rr.Code, res)
	}
	if got, _ := s.Document().Find("amount"); got.TargetField != "sum" {
		t.Errorf("target = %q, want sum", got.TargetField)
	}
	if len(rec.changes) != 1 || rec.changes[0].Op != OpEdit {
		t.Errorf("recorded changes = %+v", rec.changes)
	}
}

func TestHTTPEditMappingNotFound(t *testing.T) {
	r, _, rec, _ := setupRouter(t)

	rr, res := do(t, r, http.MethodPost, "/edit_mapping",
		`{"old_j1_field": "missing", "j1_field": "a", "j2_field": "b", "type": "str"}`)
	if rr.Code != http.StatusNotFound || res.Success {
		t.Fatalf("status = %d, result = %+v", rr.Code, res)
	}
	if len(rec.changes) != 0 {
		t.Errorf("failed edit should not be recorded")
	}
}

func TestHTTPAddAndResolve(t *testing.T) {
	r, s, rec, _ := setupRouter(t)

	if rr, res := do(t, r, http.MethodPost, "/add_mapping",
		`{"j1_field": "fee", "j2_field": "charges.fee", "type": "float"}`); !res.Success {
		t.Fatalf("add: status %d", rr.Code)
	}
	if rr, res := do(t, r, http.MethodPost, "/resolve_mismatch",
		`{"j1_field": "memo", "j2_field": "note", "type": "str"}`); !res.Success {
		t.Fatalf("resolve: status %d", rr.Code)
	}

	doc := s.Document()
	if len(doc.Mappings) != 4 {
		t.Errorf("mappings = %d, want 4", len(doc.Mappings))
	}
	if len(doc.Mismatches) != 1 {
		t.Errorf("mismatches = %d, want 1", len(doc.Mismatches))
	}
	if len(rec.changes) != 2 || rec.changes[1].Op != OpResolve {
		t.Errorf("recorded changes = %+v", rec.changes)
	}
}

func TestHTTPBadRequests(t *testing.T) {
	r, _, _, _ := setupRouter(t)

	tests := []struct {
		path string
		body string
	}{
		{"/add_mapping", `not json`},
		{"/add_mapping", `{"j2_field": "x", "type": "str"}`},
		{"/edit_mapping", `{"j1_field": "a", "j2_field": "b", "type": "str"}`},
		{"/resolve_mismatch", `{}`},
	}
	for _, tt := range tests {
		rr, res := do(t, r, http.MethodPost, tt.path, tt.body)
		if rr.Code != http.StatusBadRequest || res.Success {
			t.Errorf("%s %s: status = %d, result = %+v", tt.path, tt.body, rr.Code, res)
		}
	}
}

func TestHTTPSaveThenUndo(t *testing.T) {
	r, s, _, savePath := setupRouter(t)

	do(t, r, http.MethodPost, "/add_mapping", `{"j1_field": "fee", "j2_field": "fee", "type": "float"}`)
	if rr, res := do(t, r, http.MethodPost, "/save_mapping", ``); !res.Success {
		t.Fatalf("save: status %d", rr.Code)
	}
	saved, err := LoadFile(savePath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(saved.Mappings) != 3 {
		t.Errorf("saved mappings = %d, want 3", len(saved.Mappings))
	}

	if rr, res := do(t, r, http.MethodPost, "/undo_changes", ``); !res.Success {
		t.Fatalf("undo: status %d", rr.Code)
	}
	if got := len(s.Document().Mappings); got != 2 {
		t.Errorf("mappings after undo = %d, want 2", got)
	}
}

func TestHTTPUndoWithoutBaseline(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewStore(), RouteOptions{SavePath: filepath.Join(t.TempDir(), "out.json")})

	rr, res := do(t, r, http.MethodPost, "/undo_changes", ``)
	if rr.Code != http.StatusConflict || res.Success {
		t.Fatalf("status = %d, result = %+v", rr.Code, res)
	}
}

func TestHTTPDocumentAndStats(t *testing.T) {
	r, _, _, _ := setupRouter(t)

	rr, _ := do(t, r, http.MethodGet, "/api/mapping", ``)
	var doc Document
	if err := json.NewDecoder(rr.Body).Decode(&doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if len(doc.Mappings) != 2 || len(doc.Mismatches) != 3 {
		t.Errorf("document = %+v", doc)
	}

	rr, _ = do(t, r, http.MethodGet, "/api/mapping/stats", ``)
	var st Stats
	if err := json.NewDecoder(rr.Body).Decode(&st); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if st.Mappings != 2 || st.Mismatches != 3 {
		t.Errorf("stats = %+v", st)
	}
}
