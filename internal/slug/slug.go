// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a lowercase letter, digit,
	// whitespace, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses runs of whitespace and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Generate creates a URL-friendly slug from the given string, matching
// how the article API slugs titles: lowercase, strip punctuation, any
// whitespace run becomes a single hyphen.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = disallowed.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
