// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"genzet/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// sessionKey is the context key for the request's session provider.
	sessionKey contextKey = "session"

	// requestIDKey is the context key for the request ID.
	requestIDKey contextKey = "request_id"
)

// LoadSession binds a cookie-backed session provider to every request
// and stores it in the context. It does NOT enforce authentication —
// downstream guards and handlers read the provider via SessionFromCtx.
func LoadSession(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provider := session.NewCookieProvider(w, r, secure)
			ctx := context.WithValue(r.Context(), sessionKey, provider)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects requests without a session token to the login
// page. The token is not verified here — the API rejects a bad token
// with a 401 on the first data fetch, which handlers turn into the same
// redirect.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil || sess.Token() == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns 403 unless the session's role cookie says Admin.
// Must be applied after RequireAuth. The API enforces the real
// authorization; this guard only keeps non-admin users out of admin
// pages they could not use anyway.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromCtx(r.Context())
		if sess == nil || sess.Role() != "Admin" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// SessionFromCtx extracts the session provider from the request context.
// Returns nil when LoadSession did not run.
func SessionFromCtx(ctx context.Context) session.Provider {
	provider, _ := ctx.Value(sessionKey).(session.Provider)
	return provider
}
