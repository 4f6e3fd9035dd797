package contact

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
)

// Service сообщения формы обратной связи
type Service struct {
	store  RecordStore
	logger Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewService создает новый экземпляр сервиса сообщений
func NewService(store RecordStore, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Submit сохраняет новое сообщение со статусом new
func (s *Service) Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLength || len(email) > domain.MaxEmailLength || len(message) > domain.MaxContactMessage {
		return nil, fmt.Errorf("%w: field too long", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	record := domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		Status:    domain.ContactStatusNew,
		CreatedAt: s.now().UTC(),
	}
	list = append(list, record)

	if err := s.save(ctx, list); err != nil {
		s.logger.Error("Submit: failed to persist contact message: %v", err)
		return nil, err
	}
	s.logger.Info("Submit: contact message id=%s stored", record.ID)
	return &record, nil
}

// List возвращает сообщения от новых к старым
func (s *Service) List(ctx context.Context) ([]domain.ContactMessage, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// UpdateStatus меняет статус сообщения
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactMessage, error) {
	if _, err := domain.ParseContactStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID != id {
			continue
		}
		list[i].Status = status
		if err := s.save(ctx, list); err != nil {
			s.logger.Error("UpdateStatus: failed to persist message id=%s: %v", id, err)
			return nil, err
		}
		updated := list[i]
		s.logger.Info("UpdateStatus: message id=%s status=%s", id, status)
		return &updated, nil
	}

	s.logger.Warn("UpdateStatus: message id=%s not found", id)
	return nil, ErrMessageNotFound
}

// Delete удаляет сообщение
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}
	next := make([]domain.ContactMessage, 0, len(list))
	for _, m := range list {
		if m.ID != id {
			next = append(next, m)
		}
	}
	if len(next) == len(list) {
		s.logger.Warn("Delete: message id=%s not found", id)
		return ErrMessageNotFound
	}

	if err := s.save(ctx, next); err != nil {
		s.logger.Error("Delete: failed to persist deletion of message id=%s: %v", id, err)
		return err
	}
	s.logger.Info("Delete: message id=%s deleted", id)
	return nil
}

func (s *Service) load(ctx context.Context) ([]domain.ContactMessage, error) {
	list, err := records.LoadJSON[[]domain.ContactMessage](ctx, s.store, records.DocContactMessages)
	if err != nil {
		s.logger.Error("Contact: failed to load messages: %v", err)
		return nil, fmt.Errorf("%w: load messages: %v", ErrInternal, err)
	}
	// старые записи могли быть сохранены без статуса
	for i := range list {
		if list[i].Status == "" {
			list[i].Status = domain.ContactStatusNew
		}
	}
	return list, nil
}

func (s *Service) save(ctx context.Context, list []domain.ContactMessage) error {
	if list == nil {
		list = []domain.ContactMessage{}
	}
	if err := records.SaveJSON(ctx, s.store, records.DocContactMessages, list); err != nil {
		return fmt.Errorf("%w: save messages: %v", ErrInternal, err)
	}
	return nil
}
