package admin

import (
	"context"

	"github.com/m04kA/atelier-booking/internal/domain"
	"github.com/m04kA/atelier-booking/internal/integrations/notifier"
)

// Catalog интерфейс каталога формаций
type Catalog interface {
	ListFormations(ctx context.Context) ([]domain.Formation, error)
	FindSession(ctx context.Context, formationID, sessionID string) (*domain.Formation, *domain.SessionOption, error)
	FindSessionAnywhere(ctx context.Context, sessionID string) (*domain.Formation, *domain.SessionOption, error)
	AddSession(ctx context.Context, formationID string, draft domain.SessionDraft) (*domain.SessionOption, error)
	RemoveSession(ctx context.Context, sessionID string) (bool, error)
}

// Availability интерфейс реестра мест
type Availability interface {
	Reconcile(ctx context.Context, formations []domain.Formation) error
	Upsert(ctx context.Context, sessionID string, update domain.AvailabilityUpdate) (domain.SessionAvailability, error)
	ListWithOccupancy(ctx context.Context, formations []domain.Formation, reservations []domain.Reservation) ([]domain.SessionOccupancy, error)
}

// Reservations интерфейс реестра бронирований
type Reservations interface {
	ListAll(ctx context.Context) ([]domain.Reservation, error)
	ListRecentFirst(ctx context.Context) ([]domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateByID(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// Admission интерфейс проверки мест на сессии
type Admission interface {
	Admit(ctx context.Context, sessionID, excludeID string, write func(ctx context.Context) error) error
}

// Contacts интерфейс сообщений формы обратной связи
type Contacts interface {
	List(ctx context.Context) ([]domain.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// News интерфейс ленты новостей
type News interface {
	Create(ctx context.Context, title, content, image string) (*domain.NewsItem, error)
	Update(ctx context.Context, id string, patch domain.NewsPatch) (*domain.NewsItem, error)
	Delete(ctx context.Context, id string) error
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
