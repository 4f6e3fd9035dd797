package news

import (
	"time"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// CreateNewsRequest HTTP request model
type CreateNewsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// UpdateNewsRequest HTTP request model; отсутствующие поля не меняются
type UpdateNewsRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

// NewsResponse HTTP response model
type NewsResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *UpdateNewsRequest) toPatch() domain.NewsPatch {
	return domain.NewsPatch{Title: r.Title, Content: r.Content, Image: r.Image}
}

func fromDomain(item *domain.NewsItem) *NewsResponse {
	return &NewsResponse{
		ID:        item.ID,
		Title:     item.Title,
		Content:   item.Content,
		Image:     item.Image,
		CreatedAt: item.CreatedAt,
	}
}

func listFromDomain(items []domain.NewsItem) []NewsResponse {
	out := make([]NewsResponse, 0, len(items))
	for i := range items {
		out = append(out, *fromDomain(&items[i]))
	}
	return out
}
