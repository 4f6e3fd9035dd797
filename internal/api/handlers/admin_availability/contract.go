package admin_availability

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type AdminService interface {
	GetAvailabilityOverview(ctx context.Context) ([]domain.SessionOccupancy, error)
	SetAvailability(ctx context.Context, sessionID string, update domain.AvailabilityUpdate) (domain.SessionAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
