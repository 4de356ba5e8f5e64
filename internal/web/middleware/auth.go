// Package middleware provides authentication and authorization middleware
// for the API routes.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harborline/crewimport/internal/identity"
)

type contextKey string

const callerKey contextKey = "caller"

// CallerFromContext returns the authenticated caller attached by Authenticate.
func CallerFromContext(ctx context.Context) (identity.Caller, bool) {
	c, ok := ctx.Value(callerKey).(identity.Caller)
	return c, ok
}

// Authenticate resolves the Authorization bearer token to a caller and
// attaches it to the request context. Requests without a resolvable caller
// are rejected before any processing happens.
func Authenticate(resolver identity.CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				deny(w, r, "Missing authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				deny(w, r, "Unauthorized")
				return
			}

			caller, err := resolver.ResolveCaller(r.Context(), parts[1])
			if err != nil {
				deny(w, r, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCrewManager rejects callers whose role may not manage crew.
// Must be used after Authenticate.
func RequireCrewManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerFromContext(r.Context())
		if !ok {
			deny(w, r, "Unauthorized")
			return
		}
		if !caller.Role.CanManageCrew() {
			slog.Warn("auth: insufficient role",
				"path", r.URL.Path,
				"caller", caller.ID,
				"role", caller.Role,
			)
			deny(w, r, "Insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// deny writes the single top-level error body used for every request-level
// failure.
func deny(w http.ResponseWriter, r *http.Request, message string) {
	slog.Warn("auth: request denied",
		"path", r.URL.Path,
		"method", r.Method,
		"reason", message,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `{"error":%q}`, message)
}
