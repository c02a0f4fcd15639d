// Package main is the entry point for the access review server. It serves
// the upload UI at / and the JSON API at /v1.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"access-diff/internal/api"
	"access-diff/internal/config"
	"access-diff/internal/export"
	"access-diff/internal/ingest"
	"access-diff/internal/middleware"
	"access-diff/internal/service/review"
	"access-diff/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn("config", "warning", w)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	store := export.NewStore(cfg.ExportTTL)
	go store.Reap(ctx, cfg.ExportReapInterval)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(ctx, cfg, store, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening",
		"addr", cfg.ListenAddr,
		"env", cfg.Env,
		"export_ttl", cfg.ExportTTL.String(),
	)
	logger.Info("example request",
		"curl", "curl -F old_file=@old.xlsx -F new_file=@new.xlsx http://"+curlHostForListenAddr(cfg.ListenAddr)+"/v1/compare")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// newRouter wires the middleware chain, the UI at / and the JSON API at /v1.
func newRouter(ctx context.Context, cfg *config.Config, store *export.Store, logger *slog.Logger) http.Handler {
	reviewSvc := review.NewService(ingest.NewIngestor(logger), store, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.RateLimiter(ctx, middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	r.Get("/healthz", api.Health)
	r.Mount("/v1", api.NewHandler(reviewSvc, cfg.MaxUploadBytes, logger).Routes(cfg.CORSAllowedOrigins))
	ui.MountRoutes(r, ui.NewHandler(reviewSvc, cfg.IsProduction(), cfg.MaxUploadBytes, logger))

	return r
}

// curlHostForListenAddr turns a listen address into a host:port usable in an
// example curl command.
func curlHostForListenAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
