package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// RouteOptions configures the output generation endpoints.
type RouteOptions struct {
	InputPath    string
	OutputPath   string
	ContainerKey string
	Recorder     mapping.Recorder
}

// RegisterRoutes mounts generate_output, which transforms the input batch
// with the live mapping document, and download_output, which serves the
// result as an attachment.
func RegisterRoutes(r chi.Router, store *mapping.Store, opts RouteOptions) {
	if opts.ContainerKey == "" {
		opts.ContainerKey = DefaultContainerKey
	}
	r.Post("/generate_output", handleGenerate(store, opts))
	r.Get("/download_output", handleDownload(opts))
}

type result struct {
	Success bool   `json:"success"`
	Records int    `json:"records,omitempty"`
	Error   string `json:"error,omitempty"`
}

func handleGenerate(store *mapping.Store, opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := New(store.Document()).RunFile(opts.InputPath, opts.OutputPath, opts.ContainerKey)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, os.ErrNotExist) {
				status = http.StatusNotFound
			} else if errors.Is(err, ErrMissingContainer) {
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, result{Error: err.Error()})
			return
		}

		if opts.Recorder != nil {
			c := mapping.Change{
				Op:      mapping.OpTransform,
				Path:    opts.OutputPath,
				Summary: fmt.Sprintf("transformed %d records from %s into %s", n, opts.InputPath, opts.OutputPath),
				After:   map[string]any{"records": n, "output": opts.OutputPath},
			}
			if err := opts.Recorder.RecordChange(r.Context(), c); err != nil {
				log.Printf("Warning: recording transform: %v", err)
			}
		}
		writeJSON(w, http.StatusOK, result{Success: true, Records: n})
	}
}

func handleDownload(opts RouteOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(opts.OutputPath); err != nil {
			writeJSON(w, http.StatusNotFound, result{Error: "output not generated yet"})
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(opts.OutputPath)))
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, opts.OutputPath)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
