// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Genzet frontend. It organizes routes into public, auth, and admin
// groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"genzet/internal/handlers"
	"genzet/internal/middleware"
)

// loginRateLimit bounds login and register submissions per client IP.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Options carries the router's dependencies.
type Options struct {
	Auth       *handlers.Auth
	Articles   *handlers.Articles
	Categories *handlers.Categories
	Public     *handlers.Public
	Static     fs.FS // static assets, served under /static/
	Secure     bool  // mark cookies HTTPS-only
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Secure))

	csrf := middleware.NewCSRF(opts.Secure)
	limiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Static assets.
	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static))))
	}

	// Auth pages. Submissions are rate limited per client IP.
	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Get("/login", opts.Auth.LoginPage)
		r.Get("/register", opts.Auth.RegisterPage)
		r.Post("/logout", opts.Auth.Logout)
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)
			r.Post("/login", opts.Auth.LoginSubmit)
			r.Post("/register", opts.Auth.RegisterSubmit)
		})
	})

	// Profile — any signed-in user.
	r.Group(func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.RequireAuth)
		r.Get("/profile", opts.Public.ProfilePage)
	})

	// Admin routes — require authentication and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)
		r.Use(middleware.RequireAuth)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", opts.Articles.List)
			r.Get("/new", opts.Articles.NewForm)
			r.Post("/", opts.Articles.Create)
			r.Post("/preview", opts.Articles.Preview)
			r.Get("/{id}/edit", opts.Articles.EditForm)
			r.Post("/{id}", opts.Articles.Update)
			r.Delete("/{id}", opts.Articles.Delete)
		})

		// Category management — admin role only.
		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/", opts.Categories.List)
			r.Get("/new", opts.Categories.NewForm)
			r.Post("/", opts.Categories.Create)
			r.Get("/{id}/edit", opts.Categories.EditForm)
			r.Post("/{id}", opts.Categories.Update)
			r.Delete("/{id}", opts.Categories.Delete)
		})
	})

	// Public routes.
	r.Get("/", opts.Public.Home)
	r.Get("/articles/{slug}", opts.Public.Show)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
