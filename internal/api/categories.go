// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"genzet/internal/models"
)

const (
	// DefaultCategoryPageSize is the page size for the normal paged
	// category listing.
	DefaultCategoryPageSize = 10

	// allCategoriesLimit is the page size used when loading categories
	// for selection dropdowns.
	allCategoriesLimit = 100
)

// categoryPage is the categories endpoint's envelope. Unlike articles it
// carries no page count, so TotalPages is computed as ceil(total/limit).
type categoryPage struct {
	Items      []models.Category `json:"items"`
	Pagination struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

// ListCategories fetches one page of categories matching search.
func (c *Client) ListCategories(ctx context.Context, search string, page, limit int) (models.Page[models.Category], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultCategoryPageSize
	}

	q := url.Values{}
	q.Set("search", search)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out categoryPage
	if err := c.get(ctx, "/categories", q, &out); err != nil {
		return models.Page[models.Category]{}, err
	}

	items := out.Items
	if items == nil {
		items = []models.Category{}
	}
	return models.Page[models.Category]{
		Items:      items,
		Total:      out.Pagination.Total,
		Page:       page,
		PerPage:    limit,
		TotalPages: models.PageCount(out.Pagination.Total, limit),
	}, nil
}

// AllCategories loads categories for selection dropdowns in one call.
// Callers must not paginate the result further.
func (c *Client) AllCategories(ctx context.Context) ([]models.Category, error) {
	page, err := c.ListCategories(ctx, "", 1, allCategoriesLimit)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// CreateCategory creates a category. A duplicate name comes back as a
// ValidationError on the "name" field.
func (c *Client) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	var category models.Category
	if err := c.sendJSON(ctx, http.MethodPost, "/categories", map[string]string{"name": name}, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) (models.Category, error) {
	var category models.Category
	if err := c.sendJSON(ctx, http.MethodPut, "/categories/"+strconv.Itoa(id), map[string]string{"name": name}, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes a category by ID.
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.delete(ctx, "/categories/"+strconv.Itoa(id))
}
