package get_availability

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type CatalogService interface {
	ListFormations(ctx context.Context) ([]domain.Formation, error)
}

type ReservationService interface {
	ListAll(ctx context.Context) ([]domain.Reservation, error)
}

type AvailabilityService interface {
	ListWithOccupancy(ctx context.Context, formations []domain.Formation, reservations []domain.Reservation) ([]domain.SessionOccupancy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
