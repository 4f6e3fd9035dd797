package news

import "errors"

var (
	// ErrNewsNotFound возвращается, когда новость не найдена
	ErrNewsNotFound = errors.New("news: item not found")

	// ErrInvalidInput возвращается при некорректных данных новости
	ErrInvalidInput = errors.New("news: invalid input data")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("news: internal error")
)
