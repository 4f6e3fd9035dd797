package manage_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/service/admission"
)

// UseCase самостоятельное управление бронированием клиентом: просмотр, смена сессии, отмена
type UseCase struct {
	catalog      CatalogReader
	availability AvailabilityReader
	admission    Admission
	reservations ReservationRepository
	notifier     Notifier
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogReader,
	availability AvailabilityReader,
	admission Admission,
	reservations ReservationRepository,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		availability: availability,
		admission:    admission,
		reservations: reservations,
		notifier:     notifier,
		logger:       logger,
	}
}

// Lookup возвращает бронирование и сессии той же формации с числом свободных мест
func (uc *UseCase) Lookup(ctx context.Context, creds Credentials) (*LookupResponse, error) {
	reservation, err := uc.authorize(ctx, "Lookup", &creds)
	if err != nil {
		return nil, err
	}

	formations, err := uc.catalog.ListFormations(ctx)
	if err != nil {
		uc.logger.Error("Lookup: failed to read catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to read catalog: %v", ErrInternal, err)
	}
	all, err := uc.reservations.ListAll(ctx)
	if err != nil {
		uc.logger.Error("Lookup: failed to read reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to read reservations: %v", ErrInternal, err)
	}

	var scope []domain.Formation
	if f := domain.FindFormation(formations, reservation.FormationID); f != nil {
		scope = []domain.Formation{*f}
	}
	sessions, err := uc.availability.ListWithOccupancy(ctx, scope, all)
	if err != nil {
		uc.logger.Error("Lookup: failed to read availability: %v", err)
		return nil, fmt.Errorf("%w: failed to read availability: %v", ErrInternal, err)
	}

	return &LookupResponse{Reservation: *reservation, Sessions: sessions}, nil
}

// ChangeSession переносит бронирование на другую сессию той же формации
func (uc *UseCase) ChangeSession(ctx context.Context, creds Credentials, sessionID string) (*domain.Reservation, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	reservation, err := uc.authorize(ctx, "ChangeSession", &creds)
	if err != nil {
		return nil, err
	}
	if reservation.IsCancelled() {
		uc.logger.Warn("ChangeSession: reservation id=%s is cancelled", reservation.ID)
		return nil, ErrReservationCancelled
	}
	if reservation.SessionID == sessionID {
		return nil, ErrSameSession
	}

	formations, err := uc.catalog.ListFormations(ctx)
	if err != nil {
		uc.logger.Error("ChangeSession: failed to read catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to read catalog: %v", ErrInternal, err)
	}
	formation := domain.FindFormation(formations, reservation.FormationID)
	if formation == nil {
		return nil, ErrSessionNotFound
	}
	target := formation.FindSession(sessionID)
	if target == nil {
		uc.logger.Warn("ChangeSession: session=%s not in formation=%s", sessionID, formation.ID)
		return nil, ErrSessionNotFound
	}

	var updated *domain.Reservation
	err = uc.admission.Admit(ctx, target.ID, reservation.ID, func(ctx context.Context) error {
		count := reservation.SessionChangeCount + 1
		r, err := uc.reservations.UpdateByID(ctx, reservation.ID, domain.ReservationPatch{
			SessionID:          &target.ID,
			SessionLabel:       &target.Label,
			SessionChangeCount: &count,
		})
		if err != nil {
			return err
		}
		if r == nil {
			return ErrReservationNotFound
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, uc.admissionError("ChangeSession", target.ID, err)
	}

	uc.notifier.Notify(ctx, notifier.Notification{
		Reservation: *updated,
		Reason:      notifier.ReasonSessionChanged,
		Location:    formation.Location,
	})
	uc.logger.Info("ChangeSession: reservation id=%s moved from session=%s to session=%s",
		updated.ID, reservation.SessionID, updated.SessionID)
	return updated, nil
}

// Cancel отменяет бронирование; запись сохраняется со статусом cancelled
func (uc *UseCase) Cancel(ctx context.Context, creds Credentials) (*domain.Reservation, error) {
	reservation, err := uc.authorize(ctx, "Cancel", &creds)
	if err != nil {
		return nil, err
	}
	if reservation.IsCancelled() {
		return nil, ErrReservationCancelled
	}

	status := domain.StatusCancelled
	updated, err := uc.reservations.UpdateByID(ctx, reservation.ID, domain.ReservationPatch{Status: &status})
	if err != nil {
		uc.logger.Error("Cancel: failed to cancel reservation id=%s: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}
	if updated == nil {
		return nil, ErrReservationNotFound
	}

	uc.notifier.Notify(ctx, notifier.Notification{Reservation: *updated, Reason: notifier.ReasonCancelled})
	uc.logger.Info("Cancel: reservation id=%s cancelled by customer", updated.ID)
	return updated, nil
}

// authorize находит бронирование и сверяет email без учета регистра.
// Несовпадение email неотличимо от отсутствия бронирования.
func (uc *UseCase) authorize(ctx context.Context, op string, creds *Credentials) (*domain.Reservation, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	reservation, err := uc.reservations.FindByID(ctx, creds.ReservationID)
	if err != nil {
		uc.logger.Error("%s: failed to find reservation id=%s: %v", op, creds.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to find reservation: %v", ErrInternal, err)
	}
	if reservation == nil || !reservation.MatchesEmail(creds.Email) {
		uc.logger.Warn("%s: reservation id=%s not found for given email", op, creds.ReservationID)
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (uc *UseCase) admissionError(op, sessionID string, err error) error {
	switch {
	case errors.Is(err, admission.ErrSessionCancelled):
		return ErrSessionCancelled
	case errors.Is(err, admission.ErrSessionClosed):
		return ErrSessionClosed
	case errors.Is(err, admission.ErrSessionFull):
		return ErrSessionFull
	case errors.Is(err, ErrReservationNotFound):
		return ErrReservationNotFound
	}
	uc.logger.Error("%s: failed to move reservation to session=%s: %v", op, sessionID, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
