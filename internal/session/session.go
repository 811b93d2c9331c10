// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session manages the two cookies that make up a Genzet session:
// the API bearer token and the user's role. The API owns the session's
// validity; these cookies are the only state this frontend persists.
package session

import (
	"net/http"
	"time"

	"genzet/internal/models"
)

const (
	// TokenCookie holds the bearer token issued by the API on login or
	// registration.
	TokenCookie = "token"

	// RoleCookie holds the role string from the same response. Route
	// guards read it without another /profile round trip.
	RoleCookie = "role"

	// TTL is the lifetime of both cookies. Login and registration use
	// the same policy.
	TTL = 7 * 24 * time.Hour
)

// Provider gives explicit access to the session slots. The HTTP client
// and the route guards depend on this interface rather than on ambient
// cookie state, so tests can substitute a Fake.
type Provider interface {
	// Token returns the bearer token, empty when unauthenticated.
	Token() string

	// Role returns the stored role string, empty when unauthenticated.
	Role() string

	// Set stores both slots. Called only after a 2xx auth response.
	Set(token, role string)

	// Clear removes both slots. Called on logout and on a 401 from the API.
	Clear()
}

// CookieProvider binds a Provider to one request/response pair. Reads
// come from the request cookies; writes go out as Set-Cookie headers and
// are mirrored locally so later reads within the same request see them.
type CookieProvider struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	// local overrides set during this request; nil pointer = untouched.
	token *string
	role  *string
}

// NewCookieProvider creates a provider for a single request. secure
// marks the cookies HTTPS-only; disable it only in development.
func NewCookieProvider(w http.ResponseWriter, r *http.Request, secure bool) *CookieProvider {
	return &CookieProvider{w: w, r: r, secure: secure}
}

// Token returns the bearer token for this request.
func (p *CookieProvider) Token() string {
	if p.token != nil {
		return *p.token
	}
	return p.readCookie(TokenCookie)
}

// Role returns the stored role for this request.
func (p *CookieProvider) Role() string {
	if p.role != nil {
		return *p.role
	}
	return p.readCookie(RoleCookie)
}

// Set writes both session cookies with the standard 7-day lifetime.
func (p *CookieProvider) Set(token, role string) {
	p.writeCookie(TokenCookie, token, int(TTL.Seconds()))
	p.writeCookie(RoleCookie, role, int(TTL.Seconds()))
	p.token = &token
	p.role = &role
}

// Clear expires both session cookies immediately.
func (p *CookieProvider) Clear() {
	p.writeCookie(TokenCookie, "", -1)
	p.writeCookie(RoleCookie, "", -1)
	empty := ""
	p.token = &empty
	p.role = &empty
}

// IsAdmin reports whether the stored role is Admin.
func (p *CookieProvider) IsAdmin() bool {
	return models.Role(p.Role()) == models.RoleAdmin
}

func (p *CookieProvider) readCookie(name string) string {
	cookie, err := p.r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (p *CookieProvider) writeCookie(name, value string, maxAge int) {
	http.SetCookie(p.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
