package admin

import (
	"errors"
	"fmt"

	"github.com/m04kA/atelier-booking/internal/service/admission"
	"github.com/m04kA/atelier-booking/internal/service/catalog"
	"github.com/m04kA/atelier-booking/internal/service/contact"
	"github.com/m04kA/atelier-booking/internal/service/news"
)

var (
	// ErrNotConfigured возвращается, когда ключ администратора не задан на сервере
	ErrNotConfigured = errors.New("admin: admin key is not configured")

	// ErrUnauthorized возвращается при отсутствующем или неверном ключе
	ErrUnauthorized = errors.New("admin: invalid admin key")

	// ErrFormationNotFound возвращается, когда формация не найдена
	ErrFormationNotFound = errors.New("admin: formation not found")

	// ErrSessionNotFound возвращается, когда сессия не найдена в каталоге
	ErrSessionNotFound = errors.New("admin: session not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("admin: reservation not found")

	// ErrMessageNotFound возвращается, когда сообщение не найдено
	ErrMessageNotFound = errors.New("admin: contact message not found")

	// ErrNewsNotFound возвращается, когда новость не найдена
	ErrNewsNotFound = errors.New("admin: news item not found")

	// ErrDuplicateSession возвращается, когда сессия с таким id уже существует
	ErrDuplicateSession = errors.New("admin: session id already exists")

	// ErrSessionCancelled возвращается, когда целевая сессия отменена
	ErrSessionCancelled = errors.New("admin: session is cancelled")

	// ErrSessionClosed возвращается, когда запись на целевую сессию закрыта
	ErrSessionClosed = errors.New("admin: session is closed")

	// ErrSessionFull возвращается, когда на целевой сессии нет мест
	ErrSessionFull = errors.New("admin: session is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("admin: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin: internal error")
)

// translate приводит ошибки нижележащих сервисов к ошибкам администрирования
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, catalog.ErrFormationNotFound):
		return ErrFormationNotFound
	case errors.Is(err, catalog.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, catalog.ErrDuplicateSession):
		return fmt.Errorf("%w: %v", ErrDuplicateSession, err)
	case errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, contact.ErrInvalidInput),
		errors.Is(err, news.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, contact.ErrMessageNotFound):
		return ErrMessageNotFound
	case errors.Is(err, news.ErrNewsNotFound):
		return ErrNewsNotFound
	case errors.Is(err, admission.ErrSessionCancelled):
		return ErrSessionCancelled
	case errors.Is(err, admission.ErrSessionClosed):
		return ErrSessionClosed
	case errors.Is(err, admission.ErrSessionFull):
		return ErrSessionFull
	case errors.Is(err, ErrReservationNotFound):
		return ErrReservationNotFound
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
