// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"genzet/internal/api"
	"genzet/internal/models"
	"genzet/internal/query"
	"genzet/internal/render"
)

// Categories groups the admin category handlers. Routing restricts the
// whole group to admins.
type Categories struct {
	renderer *render.Renderer
	client   *api.Client
	cache    *query.Cache
}

// NewCategories creates a new Categories handler group.
func NewCategories(renderer *render.Renderer, client *api.Client, cache *query.Cache) *Categories {
	return &Categories{renderer: renderer, client: client, cache: cache}
}

// List renders the paginated category listing with search.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	client := bind(h.client, r)
	categories, err := query.Fetch(r.Context(), h.cache, query.Key{
		Resource: "categories",
		Scope:    scope(r),
		Params:   []string{"s:" + search, "p:" + strconv.Itoa(page)},
	}, func(ctx context.Context) (models.Page[models.Category], error) {
		return client.ListCategories(ctx, search, page, api.DefaultCategoryPageSize)
	})
	if err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("list categories failed", "error", err)
		h.renderer.Page(w, r, "categories_list", &render.PageData{
			Title:   "Categories",
			Section: "categories",
			Data: map[string]any{
				"Categories": models.Page[models.Category]{Items: []models.Category{}},
				"Search":     search,
			},
			Flashes: []render.Flash{{Type: "error", Message: api.ErrorMessage(err)}},
		})
		return
	}

	if clamped := models.ClampPage(page, categories.TotalPages); clamped != page {
		q := url.Values{}
		q.Set("page", strconv.Itoa(clamped))
		if search != "" {
			q.Set("search", search)
		}
		http.Redirect(w, r, "/admin/categories?"+q.Encode(), http.StatusSeeOther)
		return
	}

	h.renderer.Page(w, r, "categories_list", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Data: map[string]any{
			"Categories": categories,
			"Search":     search,
		},
	})
}

// categoryFormData assembles the template data for the category form.
func categoryFormData(isEdit bool, action, name string, errs map[string]string, topErr string) map[string]any {
	if errs == nil {
		errs = map[string]string{}
	}
	return map[string]any{
		"IsEdit": isEdit,
		"Action": action,
		"Name":   name,
		"Errors": errs,
		"Error":  topErr,
	}
}

// NewForm renders an empty category form.
func (h *Categories) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "New Category",
		Section: "categories",
		Data:    categoryFormData(false, "/admin/categories", "", nil, ""),
	})
}

// Create validates and submits the category form. Duplicate names come
// back from the API as a field error on "name".
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")

	if msg := validateCategory(name); msg != "" {
		h.renderer.Page(w, r, "category_form", &render.PageData{
			Title:   "New Category",
			Section: "categories",
			Data:    categoryFormData(false, "/admin/categories", name, map[string]string{"name": msg}, ""),
		})
		return
	}

	if _, err := bind(h.client, r).CreateCategory(r.Context(), name); err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Warn("create category failed", "error", err)
		errs := map[string]string{}
		topErr := ""
		if msg := api.FieldError(err, "name"); msg != "" {
			errs["name"] = msg
		} else {
			topErr = api.ErrorMessage(err)
		}
		h.renderer.Page(w, r, "category_form", &render.PageData{
			Title:   "New Category",
			Section: "categories",
			Data:    categoryFormData(false, "/admin/categories", name, errs, topErr),
		})
		return
	}

	h.cache.Invalidate("categories")
	render.SetFlash(w, render.Flash{Type: "success", Message: "Category created."})
	redirect(w, r, "/admin/categories")
}

// EditForm renders the form seeded with the stored category. The API
// has no single-category endpoint, so the name comes from the dropdown
// listing.
func (h *Categories) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	categories, err := bind(h.client, r).AllCategories(r.Context())
	if err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("load categories for edit failed", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	name := ""
	for _, c := range categories {
		if c.ID == id {
			name = c.Name
			break
		}
	}
	if name == "" {
		http.NotFound(w, r)
		return
	}

	action := "/admin/categories/" + strconv.Itoa(id)
	h.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   "Edit Category",
		Section: "categories",
		Data:    categoryFormData(true, action, name, nil, ""),
	})
}

// Update renames a category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	name := r.FormValue("name")
	action := "/admin/categories/" + strconv.Itoa(id)

	if msg := validateCategory(name); msg != "" {
		h.renderer.Page(w, r, "category_form", &render.PageData{
			Title:   "Edit Category",
			Section: "categories",
			Data:    categoryFormData(true, action, name, map[string]string{"name": msg}, ""),
		})
		return
	}

	if _, err := bind(h.client, r).UpdateCategory(r.Context(), id, name); err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Warn("update category failed", "id", id, "error", err)
		errs := map[string]string{}
		topErr := ""
		if msg := api.FieldError(err, "name"); msg != "" {
			errs["name"] = msg
		} else {
			topErr = api.ErrorMessage(err)
		}
		h.renderer.Page(w, r, "category_form", &render.PageData{
			Title:   "Edit Category",
			Section: "categories",
			Data:    categoryFormData(true, action, name, errs, topErr),
		})
		return
	}

	h.cache.Invalidate("categories")
	render.SetFlash(w, render.Flash{Type: "success", Message: "Category updated."})
	redirect(w, r, "/admin/categories")
}

// Delete removes a category. Articles in it are the API's concern.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := bind(h.client, r).DeleteCategory(r.Context(), id); err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Warn("delete category failed", "id", id, "error", err)
		render.SetFlash(w, render.Flash{Type: "error", Message: api.ErrorMessage(err)})
		redirect(w, r, "/admin/categories")
		return
	}

	h.cache.Invalidate("categories")
	render.SetFlash(w, render.Flash{Type: "success", Message: "Category deleted."})
	redirect(w, r, "/admin/categories")
}
