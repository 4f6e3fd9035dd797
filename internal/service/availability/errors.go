package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном sessionId
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("availability: internal error")
)
