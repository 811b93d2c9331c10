// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site and
// the admin interface. It supports full-page and HTMX partial rendering,
// automatically detecting the request type via the HX-Request header.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"genzet/internal/middleware"
	"genzet/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active nav section (e.g., "articles", "categories")
	LoggedIn  bool           // Whether the visitor has a session token
	Role      string         // Session role cookie value ("Admin" or "User")
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// IsAdmin reports whether the current visitor holds the admin role.
func (d *PageData) IsAdmin() bool {
	return d.LoggedIn && d.Role == string(models.RoleAdmin)
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":    true,
	"register": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, templates use CDN-hosted assets (TailwindCSS,
// HTMX); when false, they reference compiled local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"activeClass": func(current, target string) string {
				if current == target {
					return "bg-gray-900 text-white"
				}
				return "text-gray-300 hover:bg-gray-700 hover:text-white"
			},
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// isDev returns true when the app runs in development mode.
			// Used by templates to conditionally load CDN vs local assets.
			"isDev": func() bool {
				return devMode
			},
			// safeHTML marks stored article markup as trusted. Article
			// bodies come from the platform's own editor, not anonymous input.
			"safeHTML": func(s string) template.HTML {
				return template.HTML(s)
			},
			// pageSeq returns the page numbers 1..n for pagination controls.
			"pageSeq": func(n int) []int {
				if n < 1 {
					return nil
				}
				seq := make([]int, n)
				for i := range seq {
					seq[i] = i + 1
				}
				return seq
			},
			// excerpt strips markup and truncates article content for list views.
			"excerpt": excerpt,
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := filepath.Base(e.Name())
		if name == "base.html" {
			continue
		}

		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent. For full
// page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	if data.CSRFToken == "" {
		data.CSRFToken = middleware.GetCSRFToken(r)
	}

	// Inject session state from context.
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		data.LoggedIn = sess.Token() != ""
		data.Role = sess.Role()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	// HTMX request: render only the content fragment. Flashes stay
	// queued, since only the full layout displays them.
	if isHTMX(r) {
		if err := executeTemplate(w, tmpl, "content", data); err != nil {
			http.Error(w, "template error", http.StatusInternalServerError)
		}
		return
	}

	// Consume any pending flash messages.
	if data.Flashes == nil {
		data.Flashes = PopFlashes(w, r)
	}

	execName := "base.html"
	// Standalone pages use their own root template (not base.html).
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// excerpt strips markup and truncates to max runes. Cutting on rune
// boundaries keeps multi-byte text valid UTF-8.
func excerpt(s string, max int) string {
	plain := stripTags(s)
	if utf8.RuneCountInString(plain) <= max {
		return plain
	}
	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// stripTags removes HTML tags, leaving only text content.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
