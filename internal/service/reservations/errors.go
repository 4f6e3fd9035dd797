package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных бронирования
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("reservations: internal error")
)
