package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/akosarev/notekeeper/internal/server/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the trusted requester identity resolved from a verified
// bearer token. It lives in the request context for the remainder of the
// request; no further DB lookup backs it.
type Identity struct {
	UserID   string
	Username string
}

// requireAuth extracts and verifies the Authorization: Bearer token and puts
// the resolved Identity into the request context. Any failure short-circuits
// with 401 before the handler runs.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, username, err := auth.ParseToken(tokenString, s.jwtSecret)
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{UserID: userID, Username: username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
