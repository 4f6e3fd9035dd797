package create_reservation

import "errors"

var (
	// ErrFormationNotFound возвращается, когда формация не найдена
	ErrFormationNotFound = errors.New("create_reservation: formation not found")

	// ErrSessionNotFound возвращается, когда сессия не принадлежит формации
	ErrSessionNotFound = errors.New("create_reservation: session not found")

	// ErrSessionCancelled возвращается, когда сессия отменена
	ErrSessionCancelled = errors.New("create_reservation: session is cancelled")

	// ErrSessionClosed возвращается, когда запись на сессию закрыта
	ErrSessionClosed = errors.New("create_reservation: session is closed")

	// ErrSessionFull возвращается, когда на сессии нет свободных мест
	ErrSessionFull = errors.New("create_reservation: session is full")

	// ErrPaymentNotConfigured возвращается, когда оплата картой не настроена
	ErrPaymentNotConfigured = errors.New("create_reservation: card payment is not configured")

	// ErrPaymentGateway возвращается, когда платежный шлюз не создал страницу оплаты
	ErrPaymentGateway = errors.New("create_reservation: payment gateway failure")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
