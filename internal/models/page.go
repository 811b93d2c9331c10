// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page is the unified paged-collection shape at the service boundary.
// The API returns two different envelopes (a Laravel paginator for
// articles, items/pagination for categories); each service adapts its
// envelope into this type so callers never see the difference.
//
// TotalPages comes either from the server response or from
// PageCount(Total, PerPage) — never a mix of both within one listing.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// PageCount returns ceil(total / perPage). Zero when there are no items
// or the page size is invalid.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// ClampPage bounds a requested page number to [1, totalPages]. A zero
// totalPages (empty collection) clamps to 1 so the first page is still
// addressable.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
