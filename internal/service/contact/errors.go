package contact

import "errors"

var (
	// ErrMessageNotFound возвращается, когда сообщение не найдено
	ErrMessageNotFound = errors.New("contact: message not found")

	// ErrInvalidInput возвращается при некорректных данных формы
	ErrInvalidInput = errors.New("contact: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("contact: internal error")
)
