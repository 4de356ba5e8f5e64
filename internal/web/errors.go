package web

// errors.go provides the JSON response helpers shared by all handlers.
// Every top-level failure surfaces as a single {"error": "..."} body; row
// level failures never reach this path, they are reported inside the
// pipeline's own result payloads.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// writeError writes a JSON error response and logs it with the request ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Warn("request failed",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", message,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
