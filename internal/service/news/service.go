package news

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
)

// Service лента новостей
type Service struct {
	store  RecordStore
	logger Logger

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewService создает новый экземпляр сервиса новостей
func NewService(store RecordStore, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List возвращает новости от новых к старым
func (s *Service) List(ctx context.Context) ([]domain.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create публикует новость
func (s *Service) Create(ctx context.Context, title, content, image string) (*domain.NewsItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(title) > domain.MaxNewsTitleLength {
		return nil, fmt.Errorf("%w: title too long", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	item := domain.NewsItem{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		Image:     strings.TrimSpace(image),
		CreatedAt: s.now().UTC(),
	}
	items = append([]domain.NewsItem{item}, items...)

	if err := s.save(ctx, items); err != nil {
		s.logger.Error("Create: failed to persist news item: %v", err)
		return nil, err
	}
	s.logger.Info("Create: news item id=%s published", item.ID)
	return &item, nil
}

// Update изменяет заголовок, текст или изображение
func (s *Service) Update(ctx context.Context, id string, patch domain.NewsPatch) (*domain.NewsItem, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if patch.Title != nil {
			items[i].Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Content != nil {
			items[i].Content = *patch.Content
		}
		if patch.Image != nil {
			items[i].Image = strings.TrimSpace(*patch.Image)
		}
		if err := s.save(ctx, items); err != nil {
			s.logger.Error("Update: failed to persist news item id=%s: %v", id, err)
			return nil, err
		}
		updated := items[i]
		s.logger.Info("Update: news item id=%s updated", id)
		return &updated, nil
	}
	return nil, ErrNewsNotFound
}

// Delete удаляет новость
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	next := make([]domain.NewsItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			next = append(next, item)
		}
	}
	if len(next) == len(items) {
		return ErrNewsNotFound
	}
	if err := s.save(ctx, next); err != nil {
		s.logger.Error("Delete: failed to persist deletion of news item id=%s: %v", id, err)
		return err
	}
	s.logger.Info("Delete: news item id=%s deleted", id)
	return nil
}

// loadLocked читает ленту и присваивает id старым записям, у которых его нет
func (s *Service) loadLocked(ctx context.Context) ([]domain.NewsItem, error) {
	items, err := records.LoadJSON[[]domain.NewsItem](ctx, s.store, records.DocNews)
	if err != nil {
		s.logger.Error("News: failed to load feed: %v", err)
		return nil, fmt.Errorf("%w: load feed: %v", ErrInternal, err)
	}

	assigned := false
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = s.newID()
			assigned = true
		}
	}
	if assigned {
		if err := s.save(ctx, items); err != nil {
			s.logger.Error("News: failed to persist assigned ids: %v", err)
			return nil, err
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if items == nil {
		items = []domain.NewsItem{}
	}
	return items, nil
}

func (s *Service) save(ctx context.Context, items []domain.NewsItem) error {
	if items == nil {
		items = []domain.NewsItem{}
	}
	if err := records.SaveJSON(ctx, s.store, records.DocNews, items); err != nil {
		return fmt.Errorf("%w: save feed: %v", ErrInternal, err)
	}
	return nil
}
