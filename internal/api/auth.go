// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/http"

	"genzet/internal/models"
)

// Credentials is what the auth endpoints return on success. Neither
// Login nor Register persists anything — writing the session cookies is
// the caller's job, done only after a 2xx response.
type Credentials struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges a username and password for a token.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var creds Credentials
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/login", body, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Register creates an account and returns a token for it, so the new
// user is signed in immediately.
func (c *Client) Register(ctx context.Context, username, password, role string) (Credentials, error) {
	body := map[string]string{
		"username": username,
		"password": password,
		"role":     role,
	}
	var creds Credentials
	if err := c.sendJSON(ctx, http.MethodPost, "/auth/register", body, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Profile resolves the current session's user.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.get(ctx, "/profile", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
