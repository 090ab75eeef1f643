package transform

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

func setupRoutes(t *testing.T, input string) (chi.Router, RouteOptions) {
	t.Helper()
	dir := t.TempDir()
	opts := RouteOptions{
		InputPath:  filepath.Join(dir, "j1.json"),
		OutputPath: filepath.Join(dir, "j2_output.json"),
	}
	if input != "" {
		if err := os.WriteFile(opts.InputPath, []byte(input), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store := mapping.NewStore()
	store.Reset(doc(mapping.NewRecord("amount", "total", fields.TypeFloat)))

	r := chi.NewRouter()
	RegisterRoutes(r, store, opts)
	return r, opts
}

func TestHTTPGenerateAndDownload(t *testing.T) {
	r, _ := setupRoutes(t, `{"transactions": [{"amount": 1.5}]}`)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate_output", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("generate status = %d: %s", rr.Code, rr.Body.String())
	}
	var res result
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Records != 1 {
		t.Errorf("result = %+v", res)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download_output", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("download status = %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, "j2_output.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.Contains(rr.Body.String(), `"total": 1.5`) {
		t.Errorf("download body = %s", rr.Body.String())
	}
}

func TestHTTPGenerateMissingInput(t *testing.T) {
	r, _ := setupRoutes(t, "")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/generate_output", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestHTTPDownloadBeforeGenerate(t *testing.T) {
	r, _ := setupRoutes(t, `{"transactions": []}`)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/download_output", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
