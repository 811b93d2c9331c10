// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"

	"genzet/internal/api"
	"genzet/internal/middleware"
	"genzet/internal/query"
	"genzet/internal/render"
	"genzet/internal/session"
)

// enveloped wraps data in the API's {meta, data} success envelope.
func enveloped(t *testing.T, data any) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"meta": map[string]any{"code": 200, "status": "success", "message": "OK"},
		"data": data,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

// backend is a fake API that counts requests per route pattern.
type backend struct {
	t      *testing.T
	mux    *http.ServeMux
	server *httptest.Server
	calls  atomic.Int64
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{t: t, mux: http.NewServeMux()}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.server.Close)
	return b
}

// respond registers a canned enveloped response for a route pattern.
func (b *backend) respond(pattern string, status int, data any) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(enveloped(b.t, data))
	})
}

// respondRaw registers a canned raw JSON response (for error bodies).
func (b *backend) respondRaw(pattern string, status int, body string) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

// testApp bundles everything a handler test needs.
type testApp struct {
	renderer *render.Renderer
	client   *api.Client
	cache    *query.Cache
	backend  *backend
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	b := newBackend(t)
	return &testApp{
		renderer: renderer,
		client:   api.New(b.server.URL, nil),
		cache:    query.NewCache(query.NewMemoryStore(0), 0),
		backend:  b,
	}
}

// serve runs a handler under the session middleware with the given
// cookies attached.
func serve(handler http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	middleware.LoadSession(false)(handler).ServeHTTP(rr, req)
	return rr
}

// newParamRouter wraps handler with one chi URL parameter preset, so
// handlers using chi.URLParam can be tested without a full router.
func newParamRouter(key, value string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		handler.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx)))
	})
}

// authCookies returns the cookies of a signed-in admin session.
func authCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: session.TokenCookie, Value: "test-token"},
		{Name: session.RoleCookie, Value: "Admin"},
	}
}
