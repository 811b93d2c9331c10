// Package main is the entry point for the Genzet frontend server.
// It loads configuration, wires the API client and query cache, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genzet/internal/api"
	"genzet/internal/config"
	"genzet/internal/handlers"
	"genzet/internal/query"
	"genzet/internal/render"
	"genzet/internal/router"
	"genzet/web"
)

func main() {
	// Structured logger — text output, debug level in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"api", cfg.APIBaseURL,
	)

	// Pick the query cache backend. A configured Valkey instance lets
	// replicated frontends share one cache; otherwise the cache is
	// in-process.
	var store query.Store
	if cfg.UseValkey() {
		valkeyClient, err := query.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		store = query.NewValkeyStore(valkeyClient, cfg.QueryTTL)
	} else {
		slog.Info("valkey not configured, using in-process query cache")
		store = query.NewMemoryStore(0)
	}
	cache := query.NewCache(store, cfg.QueryTTL)

	// The API client. Handlers bind it to each request's session.
	client := api.New(cfg.APIBaseURL, nil)

	// HTML template renderer. In dev mode, templates load assets from
	// CDN; in production they use local files embedded in the binary.
	renderer, err := render.New(cfg.IsDev())
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	static, err := fs.Sub(web.Assets, "static")
	if err != nil {
		slog.Error("failed to mount static assets", "error", err)
		os.Exit(1)
	}

	// In non-development environments, mark cookies Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()

	r := router.New(router.Options{
		Auth:       handlers.NewAuth(renderer, client),
		Articles:   handlers.NewArticles(renderer, client, cache),
		Categories: handlers.NewCategories(renderer, client, cache),
		Public:     handlers.NewPublic(renderer, client, cache),
		Static:     static,
		Secure:     secureCookies,
	})

	// WriteTimeout accommodates multipart uploads proxied to the API.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
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
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
