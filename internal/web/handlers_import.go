package web

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harborline/crewimport/internal/importer"
	"github.com/harborline/crewimport/internal/logging"
	mw "github.com/harborline/crewimport/internal/web/middleware"
)

// importRequest is the POST body for /api/crew/import.
type importRequest struct {
	CSVContent string `json:"csvContent"`
	Action     string `json:"action"`
}

type validateResponse struct {
	Success bool `json:"success"`
	*importer.BatchOutcome
}

type importResponse struct {
	Success bool `json:"success"`
	*importer.ImportOutcome
}

// handleCrewImport runs the crew import pipeline in validate or import mode.
func (s *Server) handleCrewImport(w http.ResponseWriter, r *http.Request) {
	caller, ok := mw.CallerFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusBadRequest, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxCSVBytes)

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CSVContent == "" {
		writeError(w, r, http.StatusBadRequest, "CSV content is required")
		return
	}

	action := req.Action
	if action == "" {
		action = string(importer.ModeValidate)
	}

	logger := logging.FromContext(r.Context())

	switch importer.Mode(action) {
	case importer.ModeValidate:
		out, err := s.imports.Validate(r.Context(), caller, req.CSVContent)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, validationErrorMessage(err))
			return
		}
		logger.Info("crew import validated",
			"caller", caller.ID,
			"total", out.TotalRows,
			"valid", out.ValidRows,
			"errors", out.ErrorRows,
		)
		writeJSON(w, validateResponse{Success: true, BatchOutcome: out})

	case importer.ModeImport:
		out, err := s.imports.Import(r.Context(), caller, req.CSVContent)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, validationErrorMessage(err))
			return
		}
		logger.Info("crew import completed",
			"caller", caller.ID,
			"created", out.Created,
			"skipped", out.Skipped,
		)
		writeJSON(w, importResponse{Success: true, ImportOutcome: out})

	default:
		writeError(w, r, http.StatusBadRequest, "Invalid action: must be \"validate\" or \"import\"")
	}
}

func validationErrorMessage(err error) string {
	if errors.Is(err, importer.ErrNoRows) {
		return importer.ErrNoRows.Error()
	}
	return err.Error()
}

// importTemplateColumns is the downloadable template header plus one example
// row, matching the columns the validator understands.
var importTemplateColumns = [][]string{
	{"first_name", "last_name", "email", "phone_number", "rank", "position",
		"nationality", "vessel_assignment", "join_date", "status"},
	{"Anna", "Berg", "anna.berg@example.com", "+47 900 00 000", "Chief Officer",
		"Chief Officer", "Norwegian", "MV Example", "2026-01-15", "Active"},
}

// handleImportTemplate returns a CSV template for crew imports.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="crew_import_template.csv"`)

	csvWriter := csv.NewWriter(w)
	csvWriter.WriteAll(importTemplateColumns)
}
