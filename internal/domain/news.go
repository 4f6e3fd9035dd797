package domain

import "time"

// NewsItem represents an entry of the public news feed
type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewsPatch is a partial update of a news item
type NewsPatch struct {
	Title   *string
	Content *string
	Image   *string
}
