package availability

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/infra/storage/records"
)

// Service учет вместимости и состояния сессий
type Service struct {
	store           RecordStore
	defaultCapacity int
	logger          Logger

	mu sync.Mutex
}

// NewService создает новый экземпляр сервиса доступности
func NewService(store RecordStore, defaultCapacity int, logger Logger) *Service {
	if defaultCapacity < 0 {
		defaultCapacity = domain.DefaultSessionCapacity
	}
	return &Service{
		store:           store,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// DefaultCapacity возвращает вместимость новых сессий
func (s *Service) DefaultCapacity() int {
	return s.defaultCapacity
}

// Reconcile приводит записи в соответствие с каталогом: создает недостающие,
// удаляет лишние, нормализует старые записи. Сохраняет только при изменениях.
func (s *Service) Reconcile(ctx context.Context, formations []domain.Formation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Reconcile: failed to load availability: %v", err)
		return err
	}

	known := make(map[string]struct{})
	for _, f := range formations {
		for _, session := range f.Sessions {
			known[session.ID] = struct{}{}
		}
	}

	changed := false
	seen := make(map[string]struct{}, len(entries))
	next := make(storedEntries, 0, len(known))
	for _, e := range entries {
		if _, ok := known[e.SessionID]; !ok {
			s.logger.Info("Reconcile: pruning availability for unknown session=%s", e.SessionID)
			changed = true
			continue
		}
		if _, dup := seen[e.SessionID]; dup {
			changed = true
			continue
		}
		seen[e.SessionID] = struct{}{}

		if e.Capacity == nil {
			capacity := float64(s.defaultCapacity)
			e.Capacity = &capacity
			changed = true
		}
		if e.IsOpen == nil {
			open := true
			e.IsOpen = &open
			changed = true
		}
		if e.IsCancelled == nil {
			e.IsCancelled = new(bool)
			changed = true
		}
		if *e.IsCancelled && *e.IsOpen {
			*e.IsOpen = false
			changed = true
		}
		next = append(next, e)
	}

	for _, f := range formations {
		for _, session := range f.Sessions {
			if _, ok := seen[session.ID]; ok {
				continue
			}
			seen[session.ID] = struct{}{}
			next = append(next, fromDomain(domain.DefaultAvailability(session.ID, s.defaultCapacity)))
			s.logger.Info("Reconcile: created default availability for session=%s", session.ID)
			changed = true
		}
	}

	if !changed {
		return nil
	}
	if err := s.save(ctx, next); err != nil {
		s.logger.Error("Reconcile: failed to persist availability: %v", err)
		return err
	}
	s.logger.Info("Reconcile: availability persisted, %d sessions", len(next))
	return nil
}

// Get возвращает запись сессии или значение по умолчанию, если записи нет
func (s *Service) Get(ctx context.Context, sessionID string) (domain.SessionAvailability, error) {
	entries, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Get: failed to load availability for session=%s: %v", sessionID, err)
		return domain.SessionAvailability{}, err
	}
	return s.lookup(entries, sessionID), nil
}

// Upsert объединяет обновление с текущей записью (или значением по умолчанию) и сохраняет
func (s *Service) Upsert(ctx context.Context, sessionID string, update domain.AvailabilityUpdate) (domain.SessionAvailability, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.SessionAvailability{}, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		s.logger.Error("Upsert: failed to load availability: %v", err)
		return domain.SessionAvailability{}, err
	}

	next := ApplyUpdate(s.lookup(entries, sessionID), update)

	replaced := false
	for i := range entries {
		if entries[i].SessionID == sessionID {
			entries[i] = fromDomain(next)
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, fromDomain(next))
	}

	if err := s.save(ctx, entries); err != nil {
		s.logger.Error("Upsert: failed to persist session=%s: %v", sessionID, err)
		return domain.SessionAvailability{}, err
	}

	s.logger.Info("Upsert: session=%s capacity=%d open=%t cancelled=%t",
		sessionID, next.Capacity, next.IsOpen, next.IsCancelled)
	return next, nil
}

// ListWithOccupancy возвращает все сессии каталога с вместимостью и числом активных броней
func (s *Service) ListWithOccupancy(ctx context.Context, formations []domain.Formation, reservations []domain.Reservation) ([]domain.SessionOccupancy, error) {
	entries, err := s.load(ctx)
	if err != nil {
		s.logger.Error("ListWithOccupancy: failed to load availability: %v", err)
		return nil, err
	}

	reserved := make(map[string]int)
	for i := range reservations {
		if reservations[i].IsActive() {
			reserved[reservations[i].SessionID]++
		}
	}

	result := make([]domain.SessionOccupancy, 0)
	for _, f := range formations {
		for _, session := range f.Sessions {
			av := s.lookup(entries, session.ID)
			count := reserved[session.ID]
			result = append(result, domain.SessionOccupancy{
				FormationID:    f.ID,
				FormationTitle: f.Title,
				SessionID:      session.ID,
				SessionLabel:   session.Label,
				StartDate:      session.StartDate,
				EndDate:        session.EndDate,
				Capacity:       av.Capacity,
				IsOpen:         av.IsOpen && !av.IsCancelled,
				IsCancelled:    av.IsCancelled,
				ReservedCount:  count,
				Remaining:      remaining(av, count),
			})
		}
	}
	return result, nil
}

func remaining(av domain.SessionAvailability, reserved int) int {
	if av.IsCancelled {
		return 0
	}
	return max(av.Capacity-reserved, 0)
}

func (s *Service) lookup(entries storedEntries, sessionID string) domain.SessionAvailability {
	for _, e := range entries {
		if e.SessionID == sessionID {
			return e.toDomain(s.defaultCapacity)
		}
	}
	return domain.DefaultAvailability(sessionID, s.defaultCapacity)
}

func (s *Service) load(ctx context.Context) (storedEntries, error) {
	entries, err := records.LoadJSON[storedEntries](ctx, s.store, records.DocAvailability)
	if err != nil {
		return nil, fmt.Errorf("%w: load availability: %v", ErrInternal, err)
	}
	return entries, nil
}

func (s *Service) save(ctx context.Context, entries storedEntries) error {
	if err := records.SaveJSON(ctx, s.store, records.DocAvailability, entries); err != nil {
		return fmt.Errorf("%w: save availability: %v", ErrInternal, err)
	}
	return nil
}
