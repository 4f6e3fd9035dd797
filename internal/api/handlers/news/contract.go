package news

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type NewsReader interface {
	List(ctx context.Context) ([]domain.NewsItem, error)
}

type AdminService interface {
	CreateNews(ctx context.Context, title, content, image string) (*domain.NewsItem, error)
	UpdateNews(ctx context.Context, id string, patch domain.NewsPatch) (*domain.NewsItem, error)
	DeleteNews(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
