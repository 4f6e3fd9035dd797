package admin_contact

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type AdminService interface {
	ListContactMessages(ctx context.Context) ([]domain.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id, status string) (*domain.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
