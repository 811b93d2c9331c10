// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package api is the typed client for the Genzet REST API. Every
// operation maps to one endpoint; responses arrive in a uniform
// {meta, data} envelope which the client unwraps before decoding into
// the caller's type. Failures are mapped onto a small set of error
// types (TransportError, ValidationError, APIError) so callers never
// inspect raw response shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"genzet/internal/session"
)

// Client talks to the Genzet API on behalf of one session. It holds no
// retry logic, no queueing, and no timeout beyond transport defaults —
// the API is the authority and the frontend stays a thin pass-through.
type Client struct {
	baseURL  string
	hc       *http.Client
	sessions session.Provider
}

// New creates a client for the given base URL. sessions supplies the
// bearer token attached to every request; a nil provider sends all
// requests unauthenticated.
func New(baseURL string, sessions session.Provider) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		hc:       &http.Client{},
		sessions: sessions,
	}
}

// WithSession returns a copy of the client bound to another session
// provider. The underlying http.Client is shared, so handlers can bind
// a per-request provider cheaply.
func (c *Client) WithSession(sessions session.Provider) *Client {
	clone := *c
	clone.sessions = sessions
	return &clone
}

// envelope is the uniform success wrapper the API puts around every 2xx
// response body.
type envelope struct {
	Meta struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

// get performs a GET and decodes the envelope's data into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// postJSON performs a POST or PUT with a JSON body.
func (c *Client) sendJSON(ctx context.Context, method, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("api marshal: %w", err)
	}
	return c.do(ctx, method, path, nil, bytes.NewReader(payload), "application/json", out)
}

// delete performs a DELETE and discards any response body.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", nil)
}

// do builds the request, attaches the bearer token when the session has
// one, and maps the response. A missing token sends the request
// unauthenticated — rejecting it is the API's job.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("api request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.sessions != nil {
		if token := c.sessions.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeFailure(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("api decode: %w", err)
	}

	// A few endpoints reply without the envelope; fall back to the raw
	// body when data is absent.
	data := []byte(env.Data)
	if len(data) == 0 || string(data) == "null" {
		data = respBody
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api decode: %w", err)
	}
	return nil
}
