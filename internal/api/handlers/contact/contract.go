package contact

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
