package admin_reservations

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/service/admin"
)

type AdminService interface {
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	ReassignOrChangeStatus(ctx context.Context, id string, change admin.ReservationChange) (*domain.Reservation, error)
	DeleteReservation(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
