package catalog

import "errors"

var (
	// ErrFormationNotFound возвращается, когда формация не найдена
	ErrFormationNotFound = errors.New("catalog: formation not found")

	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("catalog: session not found")

	// ErrDuplicateSession возвращается, когда сессия с таким id уже существует
	ErrDuplicateSession = errors.New("catalog: session id already exists")

	// ErrInvalidInput возвращается при некорректных данных сессии
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInvalidCatalog возвращается, когда базовый каталог некорректен
	ErrInvalidCatalog = errors.New("catalog: invalid base catalog")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
