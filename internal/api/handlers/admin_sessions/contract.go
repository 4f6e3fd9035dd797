package admin_sessions

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type AdminService interface {
	AddSession(ctx context.Context, formationID string, draft domain.SessionDraft) (*domain.SessionOption, error)
	RemoveSession(ctx context.Context, sessionID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
