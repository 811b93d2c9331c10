// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
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

// Public groups the handlers for the reader-facing pages.
type Public struct {
	renderer *render.Renderer
	client   *api.Client
	cache    *query.Cache
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, client *api.Client, cache *query.Cache) *Public {
	return &Public{renderer: renderer, client: client, cache: cache}
}

// Home renders the public article listing with search, category filter,
// and pagination. Reads go through the query cache under the public
// scope since the listing is identical for every visitor.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	categoryID, _ := strconv.Atoi(r.URL.Query().Get("category_id"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	client := bind(p.client, r)

	categories, err := query.Fetch(r.Context(), p.cache, query.Key{
		Resource: "categories",
		Scope:    query.PublicScope,
		Params:   []string{"all"},
	}, func(ctx context.Context) ([]models.Category, error) {
		return client.AllCategories(ctx)
	})
	if err != nil {
		slog.Error("load categories failed", "error", err)
		categories = []models.Category{}
	}

	articles, err := query.Fetch(r.Context(), p.cache, query.Key{
		Resource: "articles",
		Scope:    query.PublicScope,
		Params:   []string{"s:" + search, "p:" + strconv.Itoa(page), "c:" + strconv.Itoa(categoryID)},
	}, func(ctx context.Context) (models.Page[models.Article], error) {
		return client.ListArticles(ctx, api.ArticleListParams{
			Search:     search,
			Page:       page,
			CategoryID: categoryID,
		})
	})
	if err != nil {
		slog.Error("load articles failed", "error", err)
		p.renderer.Page(w, r, "home", &render.PageData{
			Title:   "Home",
			Section: "home",
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

	// A page past the end (stale link, shrunk result set) redirects to
	// the nearest valid page.
	if clamped := models.ClampPage(page, articles.TotalPages); clamped != page {
		q := url.Values{}
		q.Set("page", strconv.Itoa(clamped))
		if search != "" {
			q.Set("search", search)
		}
		if categoryID > 0 {
			q.Set("category_id", strconv.Itoa(categoryID))
		}
		http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
		return
	}

	p.renderer.Page(w, r, "home", &render.PageData{
		Title:   "Home",
		Section: "home",
		Data: map[string]any{
			"Articles":   articles,
			"Categories": categories,
			"Search":     search,
			"CategoryID": categoryID,
		},
	})
}

// relatedLimit caps the related-articles strip on the article page.
const relatedLimit = 3

// Show renders one published article, looked up by slug, with a strip
// of other articles from the same category.
func (p *Public) Show(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	client := bind(p.client, r)
	article, err := query.Fetch(r.Context(), p.cache, query.Key{
		Resource: "articles",
		Scope:    query.PublicScope,
		Params:   []string{"slug:" + slug},
	}, func(ctx context.Context) (models.Article, error) {
		return client.GetArticleBySlug(ctx, slug)
	})
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		slog.Error("load article failed", "slug", slug, "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	p.renderer.Page(w, r, "article", &render.PageData{
		Title:   article.Title,
		Section: "home",
		Data: map[string]any{
			"Article": article,
			"Related": p.relatedArticles(r, article),
		},
	})
}

// relatedArticles loads up to relatedLimit other articles from the
// article's category. The key matches the home page's first-page
// category listing, so the two views share cache entries. A failure
// degrades to an empty strip rather than failing the page.
func (p *Public) relatedArticles(r *http.Request, article models.Article) []models.Article {
	if article.CategoryID <= 0 {
		return []models.Article{}
	}

	client := bind(p.client, r)
	listing, err := query.Fetch(r.Context(), p.cache, query.Key{
		Resource: "articles",
		Scope:    query.PublicScope,
		Params:   []string{"s:", "p:1", "c:" + strconv.Itoa(article.CategoryID)},
	}, func(ctx context.Context) (models.Page[models.Article], error) {
		return client.ListArticles(ctx, api.ArticleListParams{Page: 1, CategoryID: article.CategoryID})
	})
	if err != nil {
		slog.Error("load related articles failed", "slug", article.Slug, "error", err)
		return []models.Article{}
	}

	related := make([]models.Article, 0, relatedLimit)
	for _, a := range listing.Items {
		if a.ID == article.ID {
			continue
		}
		related = append(related, a)
		if len(related) == relatedLimit {
			break
		}
	}
	return related
}

// ProfilePage shows the signed-in user's account details, resolved
// fresh from the API on every view.
func (p *Public) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user, err := bind(p.client, r).Profile(r.Context())
	if err != nil {
		if handleUnauthorized(w, r, err) {
			return
		}
		slog.Error("load profile failed", "error", err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	p.renderer.Page(w, r, "profile", &render.PageData{
		Title:   "Profile",
		Section: "profile",
		Data:    map[string]any{"User": user},
	})
}
