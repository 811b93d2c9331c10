// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "testing"

func TestPageCount(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		perPage int
		want    int
	}{
		{"exact multiple", 20, 10, 2},
		{"remainder rounds up", 21, 10, 3},
		{"single partial page", 3, 10, 1},
		{"empty collection", 0, 10, 0},
		{"negative total", -5, 10, 0},
		{"zero page size", 10, 0, 0},
		{"one item", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageCount(tt.total, tt.perPage); got != tt.want {
				t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{"within range", 2, 5, 2},
		{"below one", 0, 5, 1},
		{"negative", -3, 5, 1},
		{"above last", 9, 5, 5},
		{"empty collection", 4, 0, 1},
		{"first page", 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPage(tt.page, tt.totalPages); got != tt.want {
				t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.totalPages, got, tt.want)
			}
		})
	}
}
