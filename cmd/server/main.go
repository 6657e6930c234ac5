package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"school-portal/internal/bootstrap"
	"school-portal/internal/logger"
)

// drainTimeout bounds how long in-flight dashboard and form requests may
// hold up shutdown before the listener is closed outright.
const drainTimeout = 15 * time.Second

// httpServer is the surface Run needs; an interface keeps Run testable
// with a stub instead of a bound socket.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (r realServer) Addr() string { return r.Server.Addr }

// serverBuilder produces the portal server plus its cleanup function.
// Production wraps bootstrap.NewServer; tests inject a stub.
type serverBuilder func() (httpServer, func(), error)

func Run(build serverBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutting down")

	case err := <-errCh:
		// Exit non-zero so a supervisor restarts the process.
		lg.Error().Err(err).Msg("server failed")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("drain timed out; closing")
		_ = srv.Close()
	}

	lg.Info().Msg("stopped")
	return 0
}

func buildServer() (httpServer, func(), error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, nil, err
	}
	return realServer{srv}, cleanup, nil
}

func main() {
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(Run(buildServer, sigCh, zlog.Logger))
}
