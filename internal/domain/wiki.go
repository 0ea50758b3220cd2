package domain

import "time"

// WikiArticle is one page of the internal documentation.
type WikiArticle struct {
	ID          string
	Title       string
	Slug        string
	Content     string
	Category    string
	SortOrder   int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
