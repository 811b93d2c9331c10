// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"genzet/internal/api"
	"genzet/internal/middleware"
	"genzet/internal/render"
)

// Auth groups the authentication handlers.
type Auth struct {
	renderer *render.Renderer
	client   *api.Client
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, client *api.Client) *Auth {
	return &Auth{renderer: renderer, client: client}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.Token() != "" {
		http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{"Error": "", "Username": ""},
	})
}

// LoginSubmit processes the login form. Validation failures render the
// form again without touching the API.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if msg := validateLogin(username, password); msg != "" {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": msg, "Username": username},
		})
		return
	}

	creds, err := bind(a.client, r).Login(r.Context(), username, password)
	if err != nil {
		slog.Warn("login failed", "username", username, "error", err)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": api.ErrorMessage(err), "Username": username},
		})
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	sess.Set(creds.Token, string(creds.User.Role))

	render.SetFlash(w, render.Flash{Type: "success", Message: "Signed in successfully."})
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.Token() != "" {
		http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data:  registerFormData("", "", nil, ""),
	})
}

// registerFormData assembles the template data for the register form.
func registerFormData(username, role string, errs map[string]string, topErr string) map[string]any {
	if errs == nil {
		errs = map[string]string{}
	}
	return map[string]any{
		"Username": username,
		"Role":     role,
		"Errors":   errs,
		"Error":    topErr,
	}
}

// RegisterSubmit creates an account and signs the new user in with the
// returned token. Server validation messages land on their form field;
// the top-level error is used only when no field matched.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")
	role := r.FormValue("role")

	if errs := validateRegister(username, password, role); len(errs) > 0 {
		a.renderer.Page(w, r, "register", &render.PageData{
			Title: "Register",
			Data:  registerFormData(username, role, errs, ""),
		})
		return
	}

	creds, err := bind(a.client, r).Register(r.Context(), username, password, role)
	if err != nil {
		slog.Warn("registration failed", "username", username, "error", err)
		errs := make(map[string]string)
		for _, field := range []string{"username", "password", "role"} {
			if msg := api.FieldError(err, field); msg != "" {
				errs[field] = msg
			}
		}
		topErr := ""
		if len(errs) == 0 {
			topErr = api.ErrorMessage(err)
		}
		a.renderer.Page(w, r, "register", &render.PageData{
			Title: "Register",
			Data:  registerFormData(username, role, errs, topErr),
		})
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	sess.Set(creds.Token, string(creds.User.Role))

	render.SetFlash(w, render.Flash{Type: "success", Message: "Account created. Welcome!"})
	http.Redirect(w, r, "/admin/articles", http.StatusSeeOther)
}

// Logout clears the session cookies and returns to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		sess.Clear()
	}
	render.SetFlash(w, render.Flash{Type: "info", Message: "Signed out."})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
