package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"screenboard/internal/app"
	"screenboard/internal/platform/config"
	"screenboard/internal/platform/httpserver"
	"screenboard/internal/platform/logger"
	httptransport "screenboard/internal/transport/http"
	authmw "screenboard/pkg/platform/middleware/auth"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to release resources", "error", err)
		}
	}()

	deps := httptransport.Deps{
		Auth:      a.Auth,
		Workspace: a.Workspace,
		Cookie: authmw.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Domain: cfg.Auth.CookieDomain,
			Path:   cfg.Auth.CookiePath,
			Secure: cfg.Auth.CookieSecure,
		},
		Logger:  log,
		Metrics: a.HTTPMetrics,
		Health:  a.Health,
	}
	if cfg.Metrics.Enabled {
		deps.Gatherer = a.Registry
		deps.MetricsPath = cfg.Metrics.Path
	}
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting screenboard", "addr", cfg.Addr, "store", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
