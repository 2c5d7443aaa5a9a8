package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dsmirnovs/notekeeper/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the authenticated user id placed on the request
// context by requireAuth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// requireAuth verifies the Authorization header before the wrapped handler
// runs. Every token problem gets the same 401 so callers cannot probe token
// internals.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			s.error(w, r, "Missing or invalid Authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.error(w, r, "Missing or invalid Authorization header", http.StatusUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(parts[1], s.jwtSecret)
		if err != nil {
			s.error(w, r, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}
