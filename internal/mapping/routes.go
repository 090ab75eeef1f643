package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/json-mapper/internal/fields"
)

// RouteOptions configures the mapping entry points.
type RouteOptions struct {
	// SavePath is where save_mapping writes the live document. It must
	// differ from the path the document was loaded from.
	SavePath string
	// Recorder, when set, is notified of every successful mutation.
	Recorder Recorder
}

// RegisterRoutes mounts the edit, add, resolve, save and undo entry points
// plus read-only views of the live document.
func RegisterRoutes(r chi.Router, store *Store, opts RouteOptions) {
	h := &handlers{store: store, opts: opts}
	r.Post("/edit_mapping", h.edit)
	r.Post("/add_mapping", h.add)
	r.Post("/resolve_mismatch", h.resolve)
	r.Post("/save_mapping", h.save)
	r.Post("/undo_changes", h.undo)
	r.Get("/api/mapping", h.document)
	r.Get("/api/mapping/stats", h.stats)
}

// mutationRequest is the flat body accepted by edit, add and resolve.
type mutationRequest struct {
	OldSourceField string         `json:"old_j1_field"`
	SourceField    string         `json:"j1_field"`
	TargetField    string         `json:"j2_field"`
	Type           fields.TypeTag `json:"type"`
}

type result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type handlers struct {
	store *Store
	opts  RouteOptions
}

func (h *handlers) edit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	if req.OldSourceField == "" {
		fail(w, http.StatusBadRequest, "old_j1_field is required")
		return
	}

	before, err := h.store.Edit(req.OldSourceField, req.SourceField, req.TargetField, req.Type)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrMappingNotFound) {
			status = http.StatusNotFound
		}
		fail(w, status, err.Error())
		return
	}
	after := NewRecord(req.SourceField, req.TargetField, req.Type)
	h.record(r, Change{
		Op:          OpEdit,
		SourceField: req.OldSourceField,
		Summary:     fmt.Sprintf("edited mapping %s -> %s", after.SourceField, after.TargetField),
		Before:      before,
		After:       after,
	})
	writeJSON(w, http.StatusOK, result{Success: true})
}

func (h *handlers) add(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	rec := h.store.AddMapping(req.SourceField, req.TargetField, req.Type)
	h.record(r, Change{
		Op:          OpAdd,
		SourceField: rec.SourceField,
		Summary:     fmt.Sprintf("added mapping %s -> %s", rec.SourceField, rec.TargetField),
		After:       rec,
	})
	writeJSON(w, http.StatusOK, result{Success: true})
}

func (h *handlers) resolve(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	rec, removed := h.store.ResolveMismatch(req.SourceField, req.TargetField, req.Type)
	h.record(r, Change{
		Op:          OpResolve,
		SourceField: rec.SourceField,
		Summary:     fmt.Sprintf("resolved %s -> %s (%d mismatches removed)", rec.SourceField, rec.TargetField, removed),
		After:       rec,
	})
	writeJSON(w, http.StatusOK, result{Success: true})
}

func (h *handlers) save(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Save(h.opts.SavePath); err != nil {
		fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	doc := h.store.Document()
	st := doc.Stats()
	h.record(r, Change{
		Op:      OpSave,
		Path:    h.opts.SavePath,
		Summary: fmt.Sprintf("saved %d mappings and %d mismatches to %s", st.Mappings, st.Mismatches, h.opts.SavePath),
		After:   doc,
	})
	writeJSON(w, http.StatusOK, result{Success: true})
}

func (h *handlers) undo(w http.ResponseWriter, r *http.Request) {
	before := h.store.Document().Stats()
	if err := h.store.Undo(); err != nil {
		fail(w, http.StatusConflict, err.Error())
		return
	}
	h.record(r, Change{
		Op:      OpUndo,
		Summary: "reverted to the loaded mapping document",
		Before:  before,
		After:   h.store.Document().Stats(),
	})
	writeJSON(w, http.StatusOK, result{Success: true})
}

func (h *handlers) document(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Document())
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Document().Stats())
}

func (h *handlers) record(r *http.Request, c Change) {
	if h.opts.Recorder == nil {
		return
	}
	if err := h.opts.Recorder.RecordChange(r.Context(), c); err != nil {
		log.Printf("Warning: recording %s change: %v", c.Op, err)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (mutationRequest, bool) {
	var req mutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return req, false
	}
	if req.SourceField == "" {
		fail(w, http.StatusBadRequest, "j1_field is required")
		return req, false
	}
	return req, true
}

func fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, result{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
