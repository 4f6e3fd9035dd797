package list_formations

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
)

type CatalogService interface {
	ListFormations(ctx context.Context) ([]domain.Formation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
