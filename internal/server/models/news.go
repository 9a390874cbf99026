package models

import "time"

// News is a lab news post shown on the public site.
type News struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"coverUrl"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedBy   int64      `json:"createdBy"`
	UpdatedBy   int64      `json:"updatedBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
