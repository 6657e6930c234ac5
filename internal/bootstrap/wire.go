package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"school-portal/internal/application/auth"
	"school-portal/internal/config"
	"school-portal/internal/infrastructure/db/sqlite"
	"school-portal/internal/infrastructure/memory"
	"school-portal/internal/infrastructure/redis"
	"school-portal/internal/infrastructure/security"
	"school-portal/internal/logger"
	"school-portal/internal/transport/web/handlers"
	"school-portal/internal/transport/web/middleware"
	"school-portal/internal/transport/web/render"
	"school-portal/internal/transport/web/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(path string) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) user repo
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	userRepo := sqlite.NewUserRepo(sqlDB)

	// 3) redis (best-effort)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory sessions")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) session store
	var sessionStore auth.SessionStore
	if redisCli != nil {
		sessionStore = redis.NewSessionStore(redisCli.(*redis.Client))
	} else {
		sessionStore = memory.NewSessionStore()
	}

	// 5) security
	hasher := security.NewBcryptHasher(12)

	// 6) service
	authSvc := auth.NewService(
		userRepo,
		hasher,
		sessionStore,
		auth.Config{
			SessionTTL: cfg.SessionTTL,
		},
	)

	// 7) views
	views, err := render.New()
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) handlers + middleware
	secureCookies := cfg.Env != "dev"

	authH := handlers.NewAuthHandler(authSvc, views, secureCookies)
	healthH := handlers.NewHealthHandler(sqlDB)

	// 9) router
	mux, err := deps.NewRouter(router.Deps{
		Health:      healthH,
		Auth:        authH,
		RequestIDMW: middleware.RequestID,
		AuthMW:      middleware.RequireUser(authSvc),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 10) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(path string) (DBCloser, error) {
			return sqlite.Open(path)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
