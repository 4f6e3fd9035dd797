package reservations

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

// Service реестр бронирований.
// Каждый цикл чтение-изменение-запись документа выполняется под mu,
// поэтому параллельные запросы одного процесса не теряют записи друг друга.
type Service struct {
	store          RecordStore
	pendingTimeout time.Duration
	timeProvider   TimeProvider
	metrics        Metrics
	logger         Logger

	mu    sync.Mutex
	newID func() string
}

// NewService создает новый экземпляр реестра бронирований.
// timeProvider и metrics могут быть nil.
func NewService(
	store RecordStore,
	pendingTimeout time.Duration,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *Service {
	if pendingTimeout <= 0 {
		pendingTimeout = domain.DefaultPendingTimeout
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		store:          store,
		pendingTimeout: pendingTimeout,
		timeProvider:   timeProvider,
		metrics:        metrics,
		logger:         logger,
		newID:          uuid.NewString,
	}
}

// ListAll возвращает все бронирования после прохода по просроченным карточным оплатам
func (s *Service) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listLocked(ctx)
}

// ListRecentFirst возвращает бронирования, отсортированные по createdAt от новых к старым
func (s *Service) ListRecentFirst(ctx context.Context) ([]domain.Reservation, error) {
	list, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Create добавляет новое бронирование
func (s *Service) Create(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error) {
	if err := validateNew(in); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.listLocked(ctx)
	if err != nil {
		return nil, err
	}

	record := domain.Reservation{
		ID:                       s.newID(),
		FormationID:              in.FormationID,
		FormationTitle:           in.FormationTitle,
		SessionID:                in.SessionID,
		SessionLabel:             in.SessionLabel,
		CustomerName:             strings.TrimSpace(in.CustomerName),
		CustomerEmail:            strings.TrimSpace(in.CustomerEmail),
		PaymentMethod:            in.PaymentMethod,
		Status:                   in.Status,
		ExternalPaymentSessionID: in.ExternalPaymentSessionID,
		CreatedAt:                s.timeProvider.Now().UTC(),
		SessionChangeCount:       0,
	}
	list = append(list, record)

	if err := s.save(ctx, list); err != nil {
		s.logger.Error("Create: failed to persist reservation for session=%s: %v", in.SessionID, err)
		return nil, err
	}

	s.logger.Info("Create: reservation id=%s session=%s status=%s", record.ID, record.SessionID, record.Status)
	return &record, nil
}

// CountActive считает активные бронирования сессии, не учитывая excludeID (если задан)
func (s *Service) CountActive(ctx context.Context, sessionID, excludeID string) (int, error) {
	list, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return countActive(list, sessionID, excludeID), nil
}

// FindByID возвращает nil, nil, если бронирование не найдено
func (s *Service) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.findBy(ctx, func(r *domain.Reservation) bool { return r.ID == id })
}

// FindByExternalPaymentSessionID возвращает nil, nil, если бронирование не найдено
func (s *Service) FindByExternalPaymentSessionID(ctx context.Context, externalID string) (*domain.Reservation, error) {
	if externalID == "" {
		return nil, nil
	}
	return s.findBy(ctx, func(r *domain.Reservation) bool { return r.ExternalPaymentSessionID == externalID })
}

// UpdateByID применяет patch и сохраняет; nil, nil если бронирование не найдено
func (s *Service) UpdateByID(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	return s.updateBy(ctx, "UpdateByID", func(r *domain.Reservation) bool { return r.ID == id }, patch)
}

// UpdateByExternalPaymentSessionID применяет patch к бронированию с данным внешним id
func (s *Service) UpdateByExternalPaymentSessionID(ctx context.Context, externalID string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if externalID == "" {
		return nil, nil
	}
	return s.updateBy(ctx, "UpdateByExternalPaymentSessionID",
		func(r *domain.Reservation) bool { return r.ExternalPaymentSessionID == externalID }, patch)
}

// DeleteByID удаляет бронирование; возвращает false, если удалять было нечего
func (s *Service) DeleteByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.listLocked(ctx)
	if err != nil {
		return false, err
	}

	next := make([]domain.Reservation, 0, len(list))
	for _, r := range list {
		if r.ID != id {
			next = append(next, r)
		}
	}
	if len(next) == len(list) {
		return false, nil
	}

	if err := s.save(ctx, next); err != nil {
		s.logger.Error("DeleteByID: failed to persist deletion of id=%s: %v", id, err)
		return false, err
	}
	s.logger.Info("DeleteByID: reservation id=%s deleted", id)
	return true, nil
}

func (s *Service) findBy(ctx context.Context, match func(*domain.Reservation) bool) (*domain.Reservation, error) {
	list, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if match(&list[i]) {
			found := list[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Service) updateBy(ctx context.Context, op string, match func(*domain.Reservation) bool, patch domain.ReservationPatch) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.listLocked(ctx)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if !match(&list[i]) {
			continue
		}
		patch.Apply(&list[i])
		if err := s.save(ctx, list); err != nil {
			s.logger.Error("%s: failed to persist reservation id=%s: %v", op, list[i].ID, err)
			return nil, err
		}
		updated := list[i]
		s.logger.Info("%s: reservation id=%s status=%s session=%s", op, updated.ID, updated.Status, updated.SessionID)
		return &updated, nil
	}
	return nil, nil
}

// listLocked загружает документ и отменяет просроченные card_pending. Вызывается под mu.
func (s *Service) listLocked(ctx context.Context) ([]domain.Reservation, error) {
	list, err := records.LoadJSON[[]domain.Reservation](ctx, s.store, records.DocReservations)
	if err != nil {
		s.logger.Error("ListAll: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: load reservations: %v", ErrInternal, err)
	}

	expired := sweepExpired(list, s.timeProvider.Now(), s.pendingTimeout)
	if expired == 0 {
		return list, nil
	}

	if err := s.save(ctx, list); err != nil {
		s.logger.Error("ListAll: failed to persist expired reservations: %v", err)
		return nil, err
	}
	s.logger.Info("ListAll: %d pending card reservations expired", expired)
	if s.metrics != nil {
		s.metrics.PendingReservationsExpired(expired)
	}
	return list, nil
}

func (s *Service) save(ctx context.Context, list []domain.Reservation) error {
	if list == nil {
		list = []domain.Reservation{}
	}
	if err := records.SaveJSON(ctx, s.store, records.DocReservations, list); err != nil {
		return fmt.Errorf("%w: save reservations: %v", ErrInternal, err)
	}
	return nil
}

// sweepExpired переводит в cancelled карточные брони, ожидающие оплаты дольше timeout.
// Записи без даты создания не трогаются.
func sweepExpired(list []domain.Reservation, now time.Time, timeout time.Duration) int {
	expired := 0
	for i := range list {
		r := &list[i]
		if r.Status != domain.StatusCardPending || r.CreatedAt.IsZero() {
			continue
		}
		if now.Sub(r.CreatedAt) >= timeout {
			r.Status = domain.StatusCancelled
			expired++
		}
	}
	return expired
}

func countActive(list []domain.Reservation, sessionID, excludeID string) int {
	count := 0
	for i := range list {
		if list[i].SessionID != sessionID || !list[i].IsActive() {
			continue
		}
		if excludeID != "" && list[i].ID == excludeID {
			continue
		}
		count++
	}
	return count
}

func validateNew(in domain.NewReservation) error {
	switch {
	case strings.TrimSpace(in.FormationID) == "":
		return fmt.Errorf("%w: formationId is required", ErrInvalidInput)
	case strings.TrimSpace(in.SessionID) == "":
		return fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	case strings.TrimSpace(in.CustomerName) == "":
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	case strings.TrimSpace(in.CustomerEmail) == "":
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if _, err := domain.ParsePaymentMethod(string(in.PaymentMethod)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := domain.ParseReservationStatus(string(in.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
