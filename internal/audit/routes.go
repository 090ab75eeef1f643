package audit

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// RegisterRoutes mounts the audit trail under /api/audit and saved
// revisions under /api/revisions.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/audit", func(r chi.Router) {
		r.Get("/", handleQuery(store))
		r.Get("/{id}", handleGetByID(store))
	})
	r.Route("/api/revisions", func(r chi.Router) {
		r.Get("/", handleRevisions(store))
		r.Get("/{id}", handleRevision(store))
	})
}

func handleQuery(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := QueryFilter{
			Actor:       ActorType(q.Get("actor")),
			Action:      mapping.Op(q.Get("action")),
			SourceField: q.Get("j1_field"),
			Limit:       intParam(q.Get("limit")),
			Offset:      intParam(q.Get("offset")),
		}
		if v := q.Get("since"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.Since = &t
			}
		}
		if v := q.Get("until"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.Until = &t
			}
		}

		entries, err := store.Query(r.Context(), filter)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []Entry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)
	}
}

func handleRevisions(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		revs, err := store.Revisions(r.Context(), intParam(r.URL.Query().Get("limit")))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if revs == nil {
			revs = []Revision{}
		}
		writeJSON(w, http.StatusOK, revs)
	}
}

// handleRevision returns the saved document itself.
func handleRevision(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rev, err := store.Revision(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		doc, err := rev.Document()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func intParam(v string) int {
	n, _ := strconv.Atoi(v)
	return n
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
