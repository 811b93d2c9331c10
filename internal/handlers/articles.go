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
	"genzet/internal/middleware"
	"genzet/internal/models"
	"genzet/internal/query"
	"genzet/internal/render"
	"genzet/internal/slug"
)

// maxUploadSize bounds multipart article forms (thumbnail included).
const maxUploadSize = 10 << 20

// Articles groups the admin article handlers.
type Articles struct {
	renderer *render.Renderer
	client   *api.Client
	cache    *query.Cache
}

// NewArticles creates a new Articles handler group.
func NewArticles(renderer *render.Renderer, client *api.Client, cache *query.Cache) *Articles {
	return &Articles{renderer: renderer, client: client, cache: cache}
}

// scope derives the cache scope for the request's session.
func scope(r *http.Request) string {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		return query.Scope(sess.Token())
	}
	return query.PublicScope
}

// List renders the admin article listing with search, category filter,
// and pagination.
func (h *Articles) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("category_id"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	client := bind(h.client, r)

	categories, err := query.Fetch(r.Context(), h.cache, query.Key{
		Resource: "categories",
		Scope:    scope(r),
		Params:   []string{"all"},
	}, func(ctx context.Context) ([]models.Category, error) {
		return client.AllCategories(ctx)
	})
	if err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("load categories for filter failed", "error", err)
		categories = []models.Category{}
	}

	articles, err := query.Fetch(r.Context(), h.cache, query.Key{
		Resource: "articles",
		Scope:    scope(r),
		Params:   []string{"admin", "s:" + search, "p:" + strconv.Itoa(page), "c:" + strconv.Itoa(categoryID)},
	}, func(ctx context.Context) (models.Page[models.Article], error) {
		return client.ListArticles(ctx, api.ArticleListParams{Search: search, Page: page, CategoryID: categoryID})
	})
	if err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("admin list articles failed", "error", err)
		h.renderer.Page(w, r, "articles_list", &render.PageData{
			Title:   "Articles",
			Section: "articles",
			Data: map[string]any{
				"Articles":   models.Page[models.Article]{Items: []models.Article{}},
				"Categories": categories,
				"Search":     search,
				"CategoryID": categoryID,
			},
			Flashes: []render.Flash{{Type: "error", Message: api.ErrorMessage(err)}},
		})
		return
	}

	if clamped := models.ClampPage(page, articles.TotalPages); clamped != page {
		q := url.Values{}
		q.Set("page", strconv.Itoa(clamped))
		if search != "" {
			q.Set("search", search)
		}
		if categoryID > 0 {
			q.Set("category_id", strconv.Itoa(categoryID))
		}
		http.Redirect(w, r, "/admin/articles?"+q.Encode(), http.StatusSeeOther)
		return
	}

	h.renderer.Page(w, r, "articles_list", &render.PageData{
		Title:   "Articles",
		Section: "articles",
		Data: map[string]any{
			"Articles":   articles,
			"Categories": categories,
			"Search":     search,
			"CategoryID": categoryID,
		},
	})
}

// articleFormData assembles the template data for the create/edit form.
func (h *Articles) articleFormData(r *http.Request, isEdit bool, action string, form api.ArticleForm, thumbnail string, errs map[string]string, topErr string) map[string]any {
	categories, err := bind(h.client, r).AllCategories(r.Context())
	if err != nil {
		slog.Error("load categories for form failed", "error", err)
		categories = []models.Category{}
	}
	if errs == nil {
		errs = map[string]string{}
	}
	return map[string]any{
		"IsEdit":     isEdit,
		"Action":     action,
		"Title":      form.Title,
		"Content":    form.Content,
		"CategoryID": form.CategoryID,
		"Thumbnail":  thumbnail,
		"Categories": categories,
		"Errors":     errs,
		"Error":      topErr,
	}
}

// NewForm renders an empty article form.
func (h *Articles) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, r, "article_form", &render.PageData{
		Title:   "New Article",
		Section: "articles",
		Data:    h.articleFormData(r, false, "/admin/articles", api.ArticleForm{}, "", nil, ""),
	})
}

// parseArticleForm reads the multipart form into an api.ArticleForm.
// The thumbnail is attached only when a file was actually chosen, so
// updates without a new file keep the stored one.
func parseArticleForm(r *http.Request) (api.ArticleForm, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return api.ArticleForm{}, err
	}

	categoryID, _ := strconv.Atoi(r.FormValue("category_id"))
	form := api.ArticleForm{
		Title:      r.FormValue("title"),
		Content:    r.FormValue("content"),
		CategoryID: categoryID,
	}

	file, header, err := r.FormFile("thumbnail")
	if err == nil {
		form.Thumbnail = &api.Upload{Filename: header.Filename, Content: file}
	}
	return form, nil
}

// serverFieldErrors maps a failed API call onto the form's fields. The
// top-level message is used only when no field matched.
func serverFieldErrors(err error) (map[string]string, string) {
	errs := make(map[string]string)
	for _, field := range []string{"title", "content", "category_id", "thumbnail"} {
		if msg := api.FieldError(err, field); msg != "" {
			errs[field] = msg
		}
	}
	if len(errs) > 0 {
		return errs, ""
	}
	return errs, api.ErrorMessage(err)
}

// Create validates the form locally, then submits it. A local
// validation failure makes no API call at all.
func (h *Articles) Create(w http.ResponseWriter, r *http.Request) {
	form, err := parseArticleForm(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	errs := validateArticle(form.Title, form.CategoryID, form.Content, form.Thumbnail != nil, true)
	if len(errs) > 0 {
		h.renderer.Page(w, r, "article_form", &render.PageData{
			Title:   "New Article",
			Section: "articles",
			Data:    h.articleFormData(r, false, "/admin/articles", form, "", errs, ""),
		})
		return
	}

	if _, err := bind(h.client, r).CreateArticle(r.Context(), form); err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Warn("create article failed", "error", err)
		fieldErrs, topErr := serverFieldErrors(err)
		h.renderer.Page(w, r, "article_form", &render.PageData{
			Title:   "New Article",
			Section: "articles",
			Data:    h.articleFormData(r, false, "/admin/articles", form, "", fieldErrs, topErr),
		})
		return
	}

	h.cache.Invalidate("articles")
	render.SetFlash(w, render.Flash{Type: "success", Message: "Article created."})
	redirect(w, r, "/admin/articles")
}

// EditForm renders the form seeded with the stored article. The lookup
// bypasses the cache so edits always start from current data.
func (h *Articles) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	article, err := bind(h.client, r).GetArticle(r.Context(), id)
	if err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("load article for edit failed", "id", id, "error", err)
		http.NotFound(w, r)
		return
	}

	form := api.ArticleForm{
		Title:      article.Title,
		Content:    article.Content,
		CategoryID: article.CategoryID,
	}
	action := "/admin/articles/" + strconv.Itoa(id)
	h.renderer.Page(w, r, "article_form", &render.PageData{
		Title:   "Edit Article",
		Section: "articles",
		Data:    h.articleFormData(r, true, action, form, article.ThumbnailPath(), nil, ""),
	})
}

// Update validates and submits the edit form. The thumbnail is optional
// here; omitting it keeps the stored one.
func (h *Articles) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	form, err := parseArticleForm(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	action := "/admin/articles/" + strconv.Itoa(id)

	errs := validateArticle(form.Title, form.CategoryID, form.Content, form.Thumbnail != nil, false)
	if len(errs) > 0 {
		h.renderer.Page(w, r, "article_form", &render.PageData{
			Title:   "Edit Article",
			Section: "articles",
			Data:    h.articleFormData(r, true, action, form, "", errs, ""),
		})
		return
	}

	if _, err := bind(h.client, r).UpdateArticle(r.Context(), id, form); err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Warn("update article failed", "id", id, "error", err)
		fieldErrs, topErr := serverFieldErrors(err)
		h.renderer.Page(w, r, "article_form", &render.PageData{
			Title:   "Edit Article",
			Section: "articles",
			Data:    h.articleFormData(r, true, action, form, "", fieldErrs, topErr),
		})
		return
	}

	h.cache.Invalidate("articles")
	render.SetFlash(w, render.Flash{Type: "success", Message: "Article updated."})
	redirect(w, r, "/admin/articles")
}

// Delete removes an article and invalidates the cached listings.
func (h *Articles) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := bind(h.client, r).DeleteArticle(r.Context(), id); err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Warn("delete article failed", "id", id, "error", err)
		render.SetFlash(w, render.Flash{Type: "error", Message: api.ErrorMessage(err)})
		redirect(w, r, "/admin/articles")
		return
	}

	h.cache.Invalidate("articles")
	render.SetFlash(w, render.Flash{Type: "success", Message: "Article deleted."})
	redirect(w, r, "/admin/articles")
}

// Preview renders the form contents as the article page would look,
// without saving anything. The slug shown is derived locally the same
// way the API derives it from the title.
func (h *Articles) Preview(w http.ResponseWriter, r *http.Request) {
	form, err := parseArticleForm(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	article := models.Article{
		Title:      form.Title,
		Content:    form.Content,
		CategoryID: form.CategoryID,
		Slug:       slug.Generate(form.Title),
	}
	if categories, err := bind(h.client, r).AllCategories(r.Context()); err == nil {
		for _, c := range categories {
			if c.ID == form.CategoryID {
				article.Category.Name = c.Name
				break
			}
		}
	}

	h.renderer.Page(w, r, "preview", &render.PageData{
		Title:   "Preview",
		Section: "articles",
		Data:    map[string]any{"Article": article},
	})
}
