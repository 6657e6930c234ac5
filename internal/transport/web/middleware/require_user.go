package middleware

import (
	"context"
	"net/http"

	"school-portal/internal/domain"
	"school-portal/internal/infrastructure/security"
)

// IdentityResolver is the minimal surface the gate needs from the auth service.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) (domain.User, error)
}

// RequireUser resolves the session cookie to a user and injects it into the
// request context. Any failure (missing cookie, expired session, deleted
// user) redirects to the login view; protected pages never answer 401.
func RequireUser(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := security.ReadSessionToken(r)
			if err != nil || tok == "" {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			u, err := resolver.CurrentIdentity(r.Context(), tok)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
