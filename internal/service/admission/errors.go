package admission

import "errors"

var (
	// ErrSessionCancelled возвращается, когда сессия отменена
	ErrSessionCancelled = errors.New("admission: session cancelled")

	// ErrSessionClosed возвращается, когда запись на сессию закрыта
	ErrSessionClosed = errors.New("admission: session closed")

	// ErrSessionFull возвращается, когда все места заняты
	ErrSessionFull = errors.New("admission: session full")

	// ErrInternal возвращается при ошибках чтения реестров
	ErrInternal = errors.New("admission: internal error")
)

// Reason метка причины отказа для метрик
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrSessionCancelled):
		return "cancelled"
	case errors.Is(err, ErrSessionClosed):
		return "closed"
	case errors.Is(err, ErrSessionFull):
		return "full"
	default:
		return "error"
	}
}
