package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"visitscribe/internal/auth"

	"log/slog"
)

// RequireAuth rejects requests without a valid bearer credential before any
// downstream work happens. The verified subject only gates access, so it is
// discarded here rather than propagated or logged.
func RequireAuth(verifier auth.Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			if _, err := verifier.Verify(r.Context(), token); err != nil {
				if errors.Is(err, auth.ErrUnauthorized) {
					WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
					return
				}
				logger.Error("identity verification unavailable", slog.String("error", err.Error()))
				WriteJSONError(w, http.StatusServiceUnavailable, "auth_unavailable", "identity verification unavailable")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
