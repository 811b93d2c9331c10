// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public site and
// the admin interface. Handlers are thin: local validation first, then
// one API call through the session-bound client, then a render or
// redirect. The API is the authority on all data.
package handlers

import (
	"net/http"

	"genzet/internal/api"
	"genzet/internal/middleware"
	"genzet/internal/render"
)

// bind returns the API client bound to the request's session so the
// bearer token rides along automatically.
func bind(client *api.Client, r *http.Request) *api.Client {
	return client.WithSession(middleware.SessionFromCtx(r.Context()))
}

// redirect sends the browser to target. HTMX requests get an
// HX-Redirect header instead of a 303, since HTMX swaps rather than
// follows Location headers.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleUnauthorized clears a session the API has rejected and sends
// the user back to login. Returns true when err was a 401.
func handleUnauthorized(w http.ResponseWriter, r *http.Request, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		sess.Clear()
	}
	render.SetFlash(w, render.Flash{Type: "warning", Message: "Your session has expired. Please sign in again."})
	redirect(w, r, "/login")
	return true
}
