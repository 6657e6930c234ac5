package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-portal/internal/domain"
	"school-portal/internal/infrastructure/security"
)

type fakeResolver struct {
	user domain.User
	err  error
}

func (f fakeResolver) CurrentIdentity(ctx context.Context, token string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	return f.user, nil
}

func gatedHandler(t *testing.T, resolver IdentityResolver, sawUser *domain.User) http.Handler {
	t.Helper()
	return RequireUser(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatalf("expected user in context")
		}
		*sawUser = u
		w.WriteHeader(http.StatusOK)
	}))
}

func TestRequireUser_NoCookie_RedirectsToLogin(t *testing.T) {
	t.Parallel()

	var saw domain.User
	h := gatedHandler(t, fakeResolver{}, &saw)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 302 /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRequireUser_InvalidSession_RedirectsToLogin(t *testing.T) {
	t.Parallel()

	var saw domain.User
	h := gatedHandler(t, fakeResolver{err: domain.ErrSessionInvalid()}, &saw)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 302 /login, got %d", rec.Code)
	}
}

func TestRequireUser_ValidSession_InjectsUser(t *testing.T) {
	t.Parallel()

	want := domain.User{ID: 7, Username: "bob", Role: "Teacher"}
	var saw domain.User
	h := gatedHandler(t, fakeResolver{user: want}, &saw)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: "tok"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if saw != want {
		t.Fatalf("unexpected user: %+v", saw)
	}
}
