// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the record types owned by the Genzet API.
// This frontend never stores these records; it only holds transient
// cache copies of what the API returns.
package models

// Role represents a user's permission level as reported by the API.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// User represents an account on the Genzet platform.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsAdmin returns true if the user has the Admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
