package manage_reservation

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
	manageReservation "github.com/m04kA/atelier-booking/internal/usecase/manage_reservation"
)

type UseCase interface {
	Lookup(ctx context.Context, creds manageReservation.Credentials) (*manageReservation.LookupResponse, error)
	ChangeSession(ctx context.Context, creds manageReservation.Credentials, sessionID string) (*domain.Reservation, error)
	Cancel(ctx context.Context, creds manageReservation.Credentials) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
