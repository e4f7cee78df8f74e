package models

import "time"

// News is a published article shown on the portal's news feed.
type News struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Author      string    `json:"author,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishDate time.Time `json:"publish_date"`
	IsPublished bool      `json:"is_published"`
	ViewCount   int       `json:"view_count"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewsUpdate carries optional fields for an admin news update.
type NewsUpdate struct {
	Title       *string    `json:"title"`
	Summary     *string    `json:"summary"`
	Content     *string    `json:"content"`
	Category    *string    `json:"category"`
	CoverImage  *string    `json:"cover_image"`
	Author      *string    `json:"author"`
	Source      *string    `json:"source"`
	PublishDate *time.Time `json:"publish_date"`
	IsPublished *bool      `json:"is_published"`
}

// NewsFilter holds list filters for the news feed.
type NewsFilter struct {
	Category      string
	Search        string
	PublishedOnly bool
	Limit         int
	Offset        int
}
