package web

// handlers_data.go serves the read-side API: vessel registry, import-run
// history, audit log and health.

import (
	"net/http"
	"strconv"

	"github.com/harborline/crewimport/internal/importer"
	"github.com/harborline/crewimport/internal/store"
	mw "github.com/harborline/crewimport/internal/web/middleware"
)

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// handleListVessels returns the caller's organization vessel registry.
func (s *Server) handleListVessels(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Unauthorized")
		return
	}

	vessels, err := s.directory.Vessels(r.Context(), caller.OrgID)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load vessels")
		return
	}
	if vessels == nil {
		vessels = []importer.Vessel{}
	}

	writeJSON(w, map[string]any{"vessels": vessels})
}

// handleImportRuns returns the organization's recent import runs.
func (s *Server) handleImportRuns(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Unauthorized")
		return
	}

	limit := parseIntParam(r, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	runs, err := s.directory.ListRuns(r.Context(), caller.OrgID, limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load import history")
		return
	}
	if runs == nil {
		runs = []store.ImportRun{}
	}

	writeJSON(w, map[string]any{"imports": runs})
}

// handleAuditLog returns a page of the organization's audit entries.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Unauthorized")
		return
	}

	limit := parseIntParam(r, "limit", 50)
	if limit > 500 {
		limit = 500
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			offset = i
		}
	}

	entries, err := s.directory.ListAudit(r.Context(), caller.OrgID, limit, offset)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load audit log")
		return
	}
	if entries == nil {
		entries = []store.AuditRecord{}
	}

	writeJSON(w, map[string]any{"entries": entries})
}

// handleHealth reports liveness and datastore connectivity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.Ping(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "datastore unavailable")
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}
