// Package main is the entry point for the idea board server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"ideaboard/internal/board"
	"ideaboard/internal/config"
	"ideaboard/internal/handlers"
	"ideaboard/internal/router"
)

func main() {
	migrateOnly := pflag.Bool("migrate-only", false, "apply database migrations and exit")
	env := pflag.String("env", "", "override APP_ENV (development, production, testing)")
	pflag.Parse()

	if *env != "" {
		os.Setenv("APP_ENV", *env)
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.StoreBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage backend", "error", err)
		os.Exit(1)
	}
	defer be.Close()

	if *migrateOnly {
		slog.Info("storage ready, exiting", "migrate_only", true)
		return
	}

	// Build the board and seed the default categories (no-op when present).
	svc := board.New(be.ideas, be.votes, be.comments, be.categories)
	if err := svc.Init(ctx); err != nil {
		slog.Error("failed to initialize board", "error", err)
		os.Exit(1)
	}

	r := router.New(router.Options{
		IdentityHeader:     cfg.IdentityHeader,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, handlers.NewBoard(svc))

	// Create the HTTP server with sensible timeouts. Every store call is
	// bounded by STORE_TIMEOUT, so WriteTimeout only needs headroom above it.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.StoreTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	<-ctx.Done()
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
