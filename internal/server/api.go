package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// mountAPI registers the manifest inspection endpoints.
func (s *Server) mountAPI(r chi.Router) {
	r.Get("/manifest", s.handleListEntries)
	r.Get("/manifest/*", s.handleGetEntry)
}

func (s *Server) handleListEntries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"entries": s.lookup.resolver.Keys()})
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	chunk, ok := s.lookup.Lookup(key)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no manifest entry %q", key))
		return
	}
	writeJSON(w, http.StatusOK, chunk)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
