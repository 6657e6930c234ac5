package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Home(w http.ResponseWriter, r *http.Request)
	RegisterPage(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	LoginPage(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	RequestIDMW func(http.Handler) http.Handler
	AuthMW      func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}

	r.Get("/healthz", deps.Health.Healthz)

	r.Get("/", deps.Auth.Home)

	r.Get("/register", deps.Auth.RegisterPage)
	r.Post("/register", deps.Auth.Register)

	r.Get("/login", deps.Auth.LoginPage)
	r.Post("/login", deps.Auth.Login)

	// Protected views; unauthenticated callers are redirected to /login.
	r.With(deps.AuthMW).Get("/dashboard", deps.Auth.Dashboard)
	r.With(deps.AuthMW).Get("/logout", deps.Auth.Logout)

	return r, nil
}
