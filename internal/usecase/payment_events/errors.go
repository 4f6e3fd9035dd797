package payment_events

import "errors"

var (
	// ErrInvalidEvent возвращается, когда подпись или тело события некорректны
	ErrInvalidEvent = errors.New("payment_events: invalid event")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("payment_events: internal error")
)
