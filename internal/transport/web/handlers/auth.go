package handlers

import (
	"net/http"

	"school-portal/internal/application/auth"
	"school-portal/internal/domain"
	"school-portal/internal/infrastructure/security"
	"school-portal/internal/logger"
	appCtx "school-portal/internal/pkg/context"
	"school-portal/internal/transport/web/forms"
	"school-portal/internal/transport/web/render"
)

// Flash strings are part of the UI contract; change them deliberately.
const (
	flashUsernameTaken  = "Username already exists!"
	flashRegistered     = "User registered successfully!"
	flashBadCredentials = "Invalid credentials!"
	flashLoggedOut      = "Logged out successfully!"
	flashLoggedInPrefix = "Logged in as "
	unknownRoleBody     = "Unknown role"
)

type AuthHandler struct {
	svc           *auth.Service
	views         *render.Renderer
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, views *render.Renderer, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		views:         views,
		secureCookies: secureCookies,
	}
}

// Home handles GET /.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.views.Page(w, http.StatusOK, "register.html", render.Data{
		Title: "Register",
		Flash: security.PopFlash(w, r, h.secureCookies),
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseRegister(r)
	if msg := form.Validate(); msg != "" {
		security.SetFlash(w, msg, h.secureCookies)
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	u, err := h.svc.Register(r.Context(), form.Username, form.Password, form.Role)
	if err != nil {
		if domain.Is(err, "username_taken") {
			security.SetFlash(w, flashUsernameTaken, h.secureCookies)
			http.Redirect(w, r, "/register", http.StatusFound)
			return
		}
		h.serverError(w, r, err)
		return
	}

	logger.Logger.Info().
		Str("request_id", appCtx.GetRequestID(r.Context())).
		Int64("user_id", u.ID).
		Str("username", u.Username).
		Str("role", u.Role).
		Msg("user registered")

	security.SetFlash(w, flashRegistered, h.secureCookies)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.views.Page(w, http.StatusOK, "login.html", render.Data{
		Title: "Login",
		Flash: security.PopFlash(w, r, h.secureCookies),
	})
}

// Login handles POST /login. A failed attempt re-renders the form at 200
// with the flash inline, matching the GET view; a success redirects to the
// dashboard with the session cookie set.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	form := forms.ParseLogin(r)

	res, err := h.svc.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if domain.Is(err, "invalid_credentials") {
			h.views.Page(w, http.StatusOK, "login.html", render.Data{
				Title: "Login",
				Flash: flashBadCredentials,
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	logger.Logger.Info().
		Str("request_id", appCtx.GetRequestID(r.Context())).
		Int64("user_id", res.User.ID).
		Msg("user logged in")

	security.SetSessionToken(w, res.Token, h.svc.SessionTTL(), h.secureCookies)
	security.SetFlash(w, flashLoggedInPrefix+res.User.Role, h.secureCookies)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout handles GET /logout; RequireUser has already vouched for the caller.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if tok, err := security.ReadSessionToken(r); err == nil && tok != "" {
		_ = h.svc.Logout(r.Context(), tok) // keep idempotent
	}

	security.ClearSessionToken(w, h.secureCookies)
	security.SetFlash(w, flashLoggedOut, h.secureCookies)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Logger.Error().
		Str("request_id", appCtx.GetRequestID(r.Context())).
		Err(err).
		Msg("request failed")
	h.views.Page(w, http.StatusInternalServerError, "error.html", render.Data{Title: "Error"})
}
