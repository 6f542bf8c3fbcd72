package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Authenticate returns middleware that validates the shared API token and
// resolves the acting principal. Credential management lives outside this
// service: the middleware hands the handlers an opaque principal id and
// nothing else.
// The token arrives as "Authorization: Bearer <token>", the principal as
// "X-User-ID" (a UUID issued by the identity collaborator).
func Authenticate(validToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token != validToken {
				http.Error(w, "invalid or missing token", http.StatusUnauthorized)
				return
			}

			principal, err := uuid.Parse(r.Header.Get("X-User-ID"))
			if err != nil {
				http.Error(w, "invalid or missing principal id", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFrom extracts the authenticated principal id from the request
// context. The auth middleware guarantees it is present on every route.
func principalFrom(ctx context.Context) uuid.UUID {
	principal, _ := ctx.Value(principalKey).(uuid.UUID)
	return principal
}
