package manage_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено или email не совпадает
	ErrReservationNotFound = errors.New("manage_reservation: reservation not found")

	// ErrReservationCancelled возвращается при попытке изменить отмененное бронирование
	ErrReservationCancelled = errors.New("manage_reservation: reservation is cancelled")

	// ErrSessionNotFound возвращается, когда новая сессия не принадлежит формации бронирования
	ErrSessionNotFound = errors.New("manage_reservation: session not found")

	// ErrSameSession возвращается, когда новая сессия совпадает с текущей
	ErrSameSession = errors.New("manage_reservation: reservation is already in this session")

	// ErrSessionCancelled возвращается, когда новая сессия отменена
	ErrSessionCancelled = errors.New("manage_reservation: session is cancelled")

	// ErrSessionClosed возвращается, когда запись на новую сессию закрыта
	ErrSessionClosed = errors.New("manage_reservation: session is closed")

	// ErrSessionFull возвращается, когда на новой сессии нет мест
	ErrSessionFull = errors.New("manage_reservation: session is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("manage_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("manage_reservation: internal error")
)
