package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"school-portal/internal/application/auth"
	"school-portal/internal/domain"
	"school-portal/internal/infrastructure/memory"
	"school-portal/internal/infrastructure/security"
	"school-portal/internal/transport/web/middleware"
	"school-portal/internal/transport/web/render"
	"school-portal/internal/transport/web/router"
)

// -------------------------
// Test wiring (pure unit)
// -------------------------

type fakeUserRepo struct {
	mu sync.Mutex

	byID       map[int64]domain.User
	byUsername map[string]int64
	nextID     int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[int64]domain.User),
		byUsername: make(map[string]int64),
		nextID:     1,
	}
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[u.Username]; exists {
		return domain.User{}, domain.ErrUsernameTaken()
	}
	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return u, nil
}

type testApp struct {
	srv    *httptest.Server
	client *http.Client
	users  *fakeUserRepo
}

// newTestApp wires the real service, renderer, memory session store, and
// router behind an httptest server. The client carries cookies and does not
// follow redirects, so each response can be asserted as-is.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	users := newFakeUserRepo()
	sessions := memory.NewSessionStore()
	hasher := security.NewBcryptHasher(4) // min cost keeps the suite fast
	svc := auth.NewService(users, hasher, sessions, auth.Config{SessionTTL: time.Hour})

	views, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	mux, err := router.New(router.Deps{
		Health:      NewHealthHandler(nil),
		Auth:        NewAuthHandler(svc, views, false),
		RequestIDMW: middleware.RequestID,
		AuthMW:      middleware.RequireUser(svc),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{srv: srv, client: client, users: users}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := a.client.Get(a.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (a *testApp) postForm(t *testing.T, path string, values url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.srv.URL+path, values)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (a *testApp) register(t *testing.T, username, password, role string) *http.Response {
	t.Helper()
	return a.postForm(t, "/register", url.Values{
		"username": {username},
		"password": {password},
		"role":     {role},
	})
}

func (a *testApp) login(t *testing.T, username, password string) *http.Response {
	t.Helper()
	return a.postForm(t, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func requireRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

// pendingFlash returns the flash cookie value the client currently holds.
func (a *testApp) pendingFlash(t *testing.T) string {
	t.Helper()
	u, _ := url.Parse(a.srv.URL)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == security.FlashCookieName {
			msg, err := url.QueryUnescape(c.Value)
			if err != nil {
				t.Fatalf("unescape flash: %v", err)
			}
			return msg
		}
	}
	return ""
}

func (a *testApp) hasSessionCookie() bool {
	u, _ := url.Parse(a.srv.URL)
	for _, c := range a.client.Jar.Cookies(u) {
		if c.Name == security.SessionCookieName && c.Value != "" {
			return true
		}
	}
	return false
}
