// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package session

// Fake is an in-memory Provider for tests. The zero value is an
// unauthenticated session.
type Fake struct {
	token string
	role  string
}

// NewFake returns a Fake pre-loaded with the given slots.
func NewFake(token, role string) *Fake {
	return &Fake{token: token, role: role}
}

func (f *Fake) Token() string { return f.token }
func (f *Fake) Role() string  { return f.role }

func (f *Fake) Set(token, role string) {
	f.token = token
	f.role = role
}

func (f *Fake) Clear() {
	f.token = ""
	f.role = ""
}
