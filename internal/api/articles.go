// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"genzet/internal/models"
)

// ArticleListParams are the combinable article list filters. Search is a
// keyword match on the title (server-defined); CategoryID filters
// exactly; both are ANDed. A zero CategoryID means all categories.
type ArticleListParams struct {
	Search     string
	Page       int
	CategoryID int
}

// Upload is a file selected in a form, streamed into the multipart body.
type Upload struct {
	Filename string
	Content  io.Reader
}

// ArticleForm carries the fields of the article create/update form.
// Thumbnail is written to the request only when non-nil: omitting it on
// update leaves the stored thumbnail unchanged, so the client must never
// send an empty thumbnail field.
type ArticleForm struct {
	Title      string
	Content    string
	CategoryID int
	Thumbnail  *Upload
}

// encode renders the form as a multipart body.
func (f *ArticleForm) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("title", f.Title); err != nil {
		return nil, "", fmt.Errorf("encode article form: %w", err)
	}
	if err := mw.WriteField("content", f.Content); err != nil {
		return nil, "", fmt.Errorf("encode article form: %w", err)
	}
	if err := mw.WriteField("category_id", strconv.Itoa(f.CategoryID)); err != nil {
		return nil, "", fmt.Errorf("encode article form: %w", err)
	}
	if f.Thumbnail != nil {
		fw, err := mw.CreateFormFile("thumbnail", f.Thumbnail.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("encode thumbnail: %w", err)
		}
		if _, err := io.Copy(fw, f.Thumbnail.Content); err != nil {
			return nil, "", fmt.Errorf("encode thumbnail: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("encode article form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

// articlePage is the Laravel-style paginator envelope the articles
// endpoint returns. Adapted into models.Page so callers never see it.
type articlePage struct {
	CurrentPage int              `json:"current_page"`
	Data        []models.Article `json:"data"`
	Total       int              `json:"total"`
	PerPage     int              `json:"per_page"`
	LastPage    int              `json:"last_page"`
}

// ListArticles fetches one page of articles. The page count is the
// server's last_page — it is not recomputed client-side.
func (c *Client) ListArticles(ctx context.Context, p ArticleListParams) (models.Page[models.Article], error) {
	if p.Page < 1 {
		p.Page = 1
	}

	q := url.Values{}
	q.Set("search", p.Search)
	q.Set("page", strconv.Itoa(p.Page))
	if p.CategoryID > 0 {
		q.Set("category_id", strconv.Itoa(p.CategoryID))
	}

	var out articlePage
	if err := c.get(ctx, "/articles", q, &out); err != nil {
		return models.Page[models.Article]{}, err
	}
	return models.Page[models.Article]{
		Items:      out.Data,
		Total:      out.Total,
		Page:       out.CurrentPage,
		PerPage:    out.PerPage,
		TotalPages: out.LastPage,
	}, nil
}

// GetArticle fetches an article by its numeric ID (admin lookup).
func (c *Client) GetArticle(ctx context.Context, id int) (models.Article, error) {
	var article models.Article
	if err := c.get(ctx, "/articles/show/"+strconv.Itoa(id), nil, &article); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// GetArticleBySlug fetches an article by its server-assigned slug. This
// is the public endpoint used by preview pages.
func (c *Client) GetArticleBySlug(ctx context.Context, slug string) (models.Article, error) {
	var article models.Article
	if err := c.get(ctx, "/articles/"+url.PathEscape(slug), nil, &article); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// CreateArticle submits the multipart create form.
func (c *Client) CreateArticle(ctx context.Context, form ArticleForm) (models.Article, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return models.Article{}, err
	}
	var article models.Article
	if err := c.do(ctx, http.MethodPost, "/articles", nil, body, contentType, &article); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// UpdateArticle submits the multipart update form. The API routes
// multipart updates through POST, not PUT; this is a fixed protocol
// detail of the remote service.
func (c *Client) UpdateArticle(ctx context.Context, id int, form ArticleForm) (models.Article, error) {
	body, contentType, err := form.encode()
	if err != nil {
		return models.Article{}, err
	}
	var article models.Article
	if err := c.do(ctx, http.MethodPost, "/articles/"+strconv.Itoa(id), nil, body, contentType, &article); err != nil {
		return models.Article{}, err
	}
	return article, nil
}

// DeleteArticle removes an article by ID.
func (c *Client) DeleteArticle(ctx context.Context, id int) error {
	return c.delete(ctx, "/articles/"+strconv.Itoa(id))
}
