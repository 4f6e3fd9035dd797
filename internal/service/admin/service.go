package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
)

// Service административный фасад над каталогом, реестрами, сообщениями и новостями
type Service struct {
	adminKey     string
	catalog      Catalog
	availability Availability
	reservations Reservations
	admission    Admission
	contacts     Contacts
	news         News
	notifier     Notifier
	logger       Logger
}

// NewService создает новый экземпляр административного фасада
func NewService(
	adminKey string,
	catalog Catalog,
	availability Availability,
	reservations Reservations,
	admission Admission,
	contacts Contacts,
	news News,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		adminKey:     adminKey,
		catalog:      catalog,
		availability: availability,
		reservations: reservations,
		admission:    admission,
		contacts:     contacts,
		news:         news,
		notifier:     notifier,
		logger:       logger,
	}
}

// Authorize сверяет ключ за постоянное время. Без настроенного ключа доступ закрыт.
func (s *Service) Authorize(key string) error {
	if s.adminKey == "" {
		s.logger.Error("Authorize: admin key is not configured")
		return ErrNotConfigured
	}
	if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		s.logger.Warn("Authorize: invalid admin key")
		return ErrUnauthorized
	}
	return nil
}

// GetAvailabilityOverview возвращает все сессии каталога с занятостью
func (s *Service) GetAvailabilityOverview(ctx context.Context) ([]domain.SessionOccupancy, error) {
	formations, err := s.catalog.ListFormations(ctx)
	if err != nil {
		s.logger.Error("GetAvailabilityOverview: failed to read catalog: %v", err)
		return nil, translate(err)
	}
	all, err := s.reservations.ListAll(ctx)
	if err != nil {
		s.logger.Error("GetAvailabilityOverview: failed to read reservations: %v", err)
		return nil, translate(err)
	}
	sessions, err := s.availability.ListWithOccupancy(ctx, formations, all)
	if err != nil {
		return nil, translate(err)
	}
	return sessions, nil
}

// SetAvailability меняет вместимость и состояние существующей сессии
func (s *Service) SetAvailability(ctx context.Context, sessionID string, update domain.AvailabilityUpdate) (domain.SessionAvailability, error) {
	if update.Capacity != nil {
		c := *update.Capacity
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return domain.SessionAvailability{}, fmt.Errorf("%w: capacity must be a non-negative number", ErrInvalidInput)
		}
	}

	if _, _, err := s.catalog.FindSessionAnywhere(ctx, sessionID); err != nil {
		s.logger.Warn("SetAvailability: session=%s: %v", sessionID, err)
		return domain.SessionAvailability{}, translate(err)
	}

	updated, err := s.availability.Upsert(ctx, sessionID, update)
	if err != nil {
		s.logger.Error("SetAvailability: failed to update session=%s: %v", sessionID, err)
		return domain.SessionAvailability{}, translate(err)
	}
	return updated, nil
}

// AddSession добавляет сессию и создает для нее запись мест по умолчанию
func (s *Service) AddSession(ctx context.Context, formationID string, draft domain.SessionDraft) (*domain.SessionOption, error) {
	session, err := s.catalog.AddSession(ctx, formationID, draft)
	if err != nil {
		return nil, translate(err)
	}
	s.reconcile(ctx, "AddSession")
	return session, nil
}

// RemoveSession удаляет сессию из каталога и ее запись мест
func (s *Service) RemoveSession(ctx context.Context, sessionID string) error {
	removed, err := s.catalog.RemoveSession(ctx, sessionID)
	if err != nil {
		return translate(err)
	}
	if !removed {
		return ErrSessionNotFound
	}
	s.reconcile(ctx, "RemoveSession")
	return nil
}

// ListReservations возвращает бронирования от новых к старым
func (s *Service) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	list, err := s.reservations.ListRecentFirst(ctx)
	if err != nil {
		s.logger.Error("ListReservations: failed to read reservations: %v", err)
		return nil, translate(err)
	}
	return list, nil
}

// ReassignOrChangeStatus переносит бронирование на другую сессию и/или меняет статус.
// Перенос и возврат отмененной брони в активный статус проходят проверку мест.
func (s *Service) ReassignOrChangeStatus(ctx context.Context, id string, change ReservationChange) (*domain.Reservation, error) {
	if change.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	current, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("ReassignOrChangeStatus: failed to find reservation id=%s: %v", id, err)
		return nil, translate(err)
	}
	if current == nil {
		return nil, ErrReservationNotFound
	}

	var patch domain.ReservationPatch
	nextStatus := current.Status
	if change.Status != nil {
		st, err := domain.ParseReservationStatus(*change.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		patch.Status = &st
		nextStatus = st
	}

	targetSession := current.SessionID
	var formation *domain.Formation
	moved := false
	if change.SessionID != nil || change.FormationID != nil {
		formationID := current.FormationID
		if change.FormationID != nil {
			formationID = strings.TrimSpace(*change.FormationID)
		}
		sessionID := current.SessionID
		if change.SessionID != nil {
			sessionID = strings.TrimSpace(*change.SessionID)
		}

		f, session, err := s.catalog.FindSession(ctx, formationID, sessionID)
		if err != nil {
			s.logger.Warn("ReassignOrChangeStatus: target formation=%s session=%s: %v", formationID, sessionID, err)
			return nil, translate(err)
		}
		formation = f
		if session.ID != current.SessionID || f.ID != current.FormationID {
			moved = true
			targetSession = session.ID
			patch.FormationID = &f.ID
			patch.FormationTitle = &f.Title
			patch.SessionID = &session.ID
			patch.SessionLabel = &session.Label
		}
	}

	write := func(ctx context.Context) error {
		updated, err := s.reservations.UpdateByID(ctx, id, patch)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrReservationNotFound
		}
		current = updated
		return nil
	}

	reactivated := !current.IsActive() && nextStatus.IsActive()
	if (moved && nextStatus.IsActive()) || reactivated {
		err = s.admission.Admit(ctx, targetSession, id, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		s.logger.Warn("ReassignOrChangeStatus: reservation id=%s not updated: %v", id, err)
		return nil, translate(err)
	}

	reason := notifier.ReasonConfirmed
	switch {
	case moved:
		reason = notifier.ReasonSessionChanged
	case current.IsCancelled():
		reason = notifier.ReasonCancelled
	}
	s.notify(ctx, *current, reason, formation)

	s.logger.Info("ReassignOrChangeStatus: reservation id=%s session=%s status=%s", current.ID, current.SessionID, current.Status)
	return current, nil
}

// DeleteReservation уведомляет клиента об отмене и удаляет бронирование
func (s *Service) DeleteReservation(ctx context.Context, id string) error {
	current, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return translate(err)
	}
	if current == nil {
		return ErrReservationNotFound
	}

	s.notify(ctx, *current, notifier.ReasonCancelled, nil)

	removed, err := s.reservations.DeleteByID(ctx, id)
	if err != nil {
		s.logger.Error("DeleteReservation: failed to delete reservation id=%s: %v", id, err)
		return translate(err)
	}
	if !removed {
		return ErrReservationNotFound
	}
	s.logger.Info("DeleteReservation: reservation id=%s deleted", id)
	return nil
}

// ListContactMessages возвращает сообщения от новых к старым
func (s *Service) ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	list, err := s.contacts.List(ctx)
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

// UpdateContactStatus помечает сообщение как new или handled
func (s *Service) UpdateContactStatus(ctx context.Context, id, status string) (*domain.ContactMessage, error) {
	st, err := domain.ParseContactStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msg, err := s.contacts.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, translate(err)
	}
	return msg, nil
}

// DeleteContactMessage удаляет сообщение
func (s *Service) DeleteContactMessage(ctx context.Context, id string) error {
	return translate(s.contacts.Delete(ctx, id))
}

// CreateNews публикует новость
func (s *Service) CreateNews(ctx context.Context, title, content, image string) (*domain.NewsItem, error) {
	item, err := s.news.Create(ctx, title, content, image)
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

// UpdateNews изменяет новость
func (s *Service) UpdateNews(ctx context.Context, id string, patch domain.NewsPatch) (*domain.NewsItem, error) {
	item, err := s.news.Update(ctx, id, patch)
	if err != nil {
		return nil, translate(err)
	}
	return item, nil
}

// DeleteNews удаляет новость
func (s *Service) DeleteNews(ctx context.Context, id string) error {
	return translate(s.news.Delete(ctx, id))
}

// reconcile приводит записи мест к каталогу. Ошибка не отменяет уже сохраненное изменение
// каталога: отсутствующая запись читается со значениями по умолчанию, а при старте сверка повторится.
func (s *Service) reconcile(ctx context.Context, op string) {
	formations, err := s.catalog.ListFormations(ctx)
	if err == nil {
		err = s.availability.Reconcile(ctx, formations)
	}
	if err != nil {
		s.logger.Error("%s: failed to reconcile availability: %v", op, err)
	}
}

func (s *Service) notify(ctx context.Context, r domain.Reservation, reason notifier.Reason, formation *domain.Formation) {
	n := notifier.Notification{Reservation: r, Reason: reason}
	if formation == nil {
		if formations, err := s.catalog.ListFormations(ctx); err == nil {
			formation = domain.FindFormation(formations, r.FormationID)
		}
	}
	if formation != nil {
		n.Location = formation.Location
	}
	s.notifier.Notify(ctx, n)
}
