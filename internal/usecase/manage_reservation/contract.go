package manage_reservation

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
)

// CatalogReader интерфейс каталога формаций
type CatalogReader interface {
	ListFormations(ctx context.Context) ([]domain.Formation, error)
}

// AvailabilityReader интерфейс реестра мест
type AvailabilityReader interface {
	ListWithOccupancy(ctx context.Context, formations []domain.Formation, reservations []domain.Reservation) ([]domain.SessionOccupancy, error)
}

// Admission интерфейс проверки мест на сессии
type Admission interface {
	Admit(ctx context.Context, sessionID, excludeID string, write func(ctx context.Context) error) error
}

// ReservationRepository интерфейс реестра бронирований
type ReservationRepository interface {
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateByID(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
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
