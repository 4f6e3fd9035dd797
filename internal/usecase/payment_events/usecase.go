package payment_events

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/integrations/payment"
)

// UseCase обработка событий платежного шлюза
type UseCase struct {
	parser       EventParser
	reservations ReservationRepository
	notifier     Notifier
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(parser EventParser, reservations ReservationRepository, notifier Notifier, logger Logger) *UseCase {
	return &UseCase{
		parser:       parser,
		reservations: reservations,
		notifier:     notifier,
		logger:       logger,
	}
}

// Execute проверяет подпись события и применяет его к бронированию.
// Если webhook не настроен, событие подтверждается и игнорируется.
func (uc *UseCase) Execute(ctx context.Context, payload []byte, signature string) (*Response, error) {
	if !uc.parser.WebhookEnabled() {
		uc.logger.Warn("PaymentEvent: webhook received but webhook secret is not configured")
		return &Response{Outcome: OutcomeIgnored}, nil
	}

	event, err := uc.parser.ParseEvent(payload, signature)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) || errors.Is(err, payment.ErrInvalidPayload) {
			uc.logger.Warn("PaymentEvent: rejected event: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
		uc.logger.Error("PaymentEvent: failed to parse event: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	switch event.Kind {
	case payment.EventPaymentCompleted:
		return uc.confirm(ctx, event)
	case payment.EventCheckoutExpired:
		return uc.expire(ctx, event)
	default:
		uc.logger.Info("PaymentEvent: event id=%s type=%s ignored", event.ID, event.Type)
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored}, nil
	}
}

// confirm переводит бронирование в card_confirmed и уведомляет клиента.
// Повторная доставка события не порождает второе уведомление.
func (uc *UseCase) confirm(ctx context.Context, event *payment.Event) (*Response, error) {
	current, err := uc.find(ctx, event)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored}, nil
	}
	if current.Status == domain.StatusCardConfirmed {
		uc.logger.Info("PaymentEvent: reservation id=%s already confirmed", current.ID)
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored, ReservationID: current.ID}, nil
	}
	if current.IsCancelled() {
		// оплата пришла после отмены по таймауту: клиент заплатил, место возвращается
		uc.logger.Warn("PaymentEvent: payment completed for cancelled reservation id=%s, confirming", current.ID)
	}

	status := domain.StatusCardConfirmed
	updated, err := uc.reservations.UpdateByExternalPaymentSessionID(ctx, event.ExternalID, domain.ReservationPatch{Status: &status})
	if err != nil {
		uc.logger.Error("PaymentEvent: failed to confirm reservation id=%s: %v", current.ID, err)
		return nil, fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
	}
	if updated == nil {
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored}, nil
	}

	uc.notifier.Notify(ctx, notifier.Notification{Reservation: *updated, Reason: notifier.ReasonConfirmed})
	uc.logger.Info("PaymentEvent: reservation id=%s confirmed by event id=%s", updated.ID, event.ID)
	return &Response{EventID: event.ID, Outcome: OutcomeConfirmed, ReservationID: updated.ID}, nil
}

// expire отменяет бронирование, если оплата так и не была получена
func (uc *UseCase) expire(ctx context.Context, event *payment.Event) (*Response, error) {
	current, err := uc.find(ctx, event)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored}, nil
	}
	if current.Status == domain.StatusCardConfirmed || current.IsCancelled() {
		uc.logger.Info("PaymentEvent: expiry for reservation id=%s status=%s ignored", current.ID, current.Status)
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored, ReservationID: current.ID}, nil
	}

	status := domain.StatusCancelled
	updated, err := uc.reservations.UpdateByExternalPaymentSessionID(ctx, event.ExternalID, domain.ReservationPatch{Status: &status})
	if err != nil {
		uc.logger.Error("PaymentEvent: failed to cancel reservation id=%s: %v", current.ID, err)
		return nil, fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}
	if updated == nil {
		return &Response{EventID: event.ID, Outcome: OutcomeIgnored}, nil
	}

	uc.logger.Info("PaymentEvent: reservation id=%s cancelled, checkout expired", updated.ID)
	return &Response{EventID: event.ID, Outcome: OutcomeCancelled, ReservationID: updated.ID}, nil
}

func (uc *UseCase) find(ctx context.Context, event *payment.Event) (*domain.Reservation, error) {
	current, err := uc.reservations.FindByExternalPaymentSessionID(ctx, event.ExternalID)
	if err != nil {
		uc.logger.Error("PaymentEvent: failed to find reservation external=%s: %v", event.ExternalID, err)
		return nil, fmt.Errorf("%w: failed to find reservation: %v", ErrInternal, err)
	}
	if current == nil {
		uc.logger.Warn("PaymentEvent: no reservation for external=%s (event id=%s)", event.ExternalID, event.ID)
	}
	return current, nil
}
