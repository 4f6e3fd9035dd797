package create_reservation

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
	"github.com/m04kA/atelier-booking/internal/integrations/payment"
)

// CatalogReader интерфейс каталога формаций
type CatalogReader interface {
	FindSession(ctx context.Context, formationID, sessionID string) (*domain.Formation, *domain.SessionOption, error)
}

// Admission интерфейс проверки мест на сессии
type Admission interface {
	Check(ctx context.Context, sessionID, excludeID string) error
	Admit(ctx context.Context, sessionID, excludeID string, write func(ctx context.Context) error) error
}

// ReservationRepository интерфейс реестра бронирований
type ReservationRepository interface {
	Create(ctx context.Context, in domain.NewReservation) (*domain.Reservation, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error)
}

// Notifier интерфейс асинхронных уведомлений клиенту
type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification)
}

// Metrics счетчики созданных бронирований
type Metrics interface {
	ReservationCreated(paymentMethod string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
