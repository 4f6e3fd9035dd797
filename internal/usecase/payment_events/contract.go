package payment_events

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/integrations/payment"
)

// EventParser интерфейс проверки и разбора событий платежного шлюза
type EventParser interface {
	WebhookEnabled() bool
	ParseEvent(payload []byte, signature string) (*payment.Event, error)
}

// ReservationRepository интерфейс реестра бронирований
type ReservationRepository interface {
	FindByExternalPaymentSessionID(ctx context.Context, externalID string) (*domain.Reservation, error)
	UpdateByExternalPaymentSessionID(ctx context.Context, externalID string, patch domain.ReservationPatch) (*domain.Reservation, error)
}

// Notifier интерфейс асинхронных уведомлений клиенту
type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
