// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Article represents a published or draft article owned by the Genzet API.
// Content is the HTML produced by the rich-text editor; Thumbnail is a
// storage-relative path on the API side, nil when no image was uploaded.
// The slug is server-assigned and is the public lookup key; the numeric
// ID is used for admin-side lookup, edit, and delete.
type Article struct {
	ID         int          `json:"id"`
	UserID     int          `json:"user_id"`
	CategoryID int          `json:"category_id"`
	Title      string       `json:"title"`
	Slug       string       `json:"slug"`
	Content    string       `json:"content"`
	Thumbnail  *string      `json:"thumbnail"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	Category   CategoryRef  `json:"category"`
	User       ArticleOwner `json:"user"`
}

// CategoryRef is the embedded category summary the API attaches to articles.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ArticleOwner is the embedded author summary the API attaches to articles.
type ArticleOwner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// ThumbnailPath returns the thumbnail path or an empty string when none
// was uploaded.
func (a *Article) ThumbnailPath() string {
	if a.Thumbnail == nil {
		return ""
	}
	return *a.Thumbnail
}
