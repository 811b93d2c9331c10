// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minPasswordLen is the registration password floor. Login accepts any
// non-empty password; old accounts may predate the rule.
const minPasswordLen = 8

// tagPattern matches editor markup so emptiness checks see only text.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// stripMarkup removes HTML tags and surrounding whitespace.
func stripMarkup(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// validateLogin returns the first problem with the login form, or "".
func validateLogin(username, password string) string {
	if strings.TrimSpace(username) == "" {
		return "Please enter your username"
	}
	if password == "" {
		return "Please enter your password"
	}
	return ""
}

// validateRegister checks the registration form and returns per-field
// errors keyed by form field name.
func validateRegister(username, password, role string) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(username) == "" {
		errs["username"] = "Username is required"
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters"
	}
	if role == "" {
		errs["role"] = "Role must be selected"
	}
	return errs
}

// validateArticle checks the article form and returns per-field errors.
// requireThumbnail is true on create; updates keep the stored thumbnail
// when no new file is chosen.
func validateArticle(title string, categoryID int, content string, hasThumbnail, requireThumbnail bool) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(title) == "" {
		errs["title"] = "Please enter title"
	}
	if categoryID <= 0 {
		errs["category_id"] = "Please select category"
	}
	if stripMarkup(content) == "" {
		errs["content"] = "Content field cannot be empty"
	}
	if requireThumbnail && !hasThumbnail {
		errs["thumbnail"] = "Please enter picture"
	}
	return errs
}

// validateCategory returns the problem with the category form, or "".
func validateCategory(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Please enter category name"
	}
	return ""
}
