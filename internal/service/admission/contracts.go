package admission

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

// AvailabilityReader источник состояния сессии
type AvailabilityReader interface {
	Get(ctx context.Context, sessionID string) (domain.SessionAvailability, error)
}

// ReservationCounter источник числа активных бронирований
type ReservationCounter interface {
	CountActive(ctx context.Context, sessionID, excludeID string) (int, error)
}

// Metrics счетчики отказов
type Metrics interface {
	AdmissionRefused(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
