package payment

import "errors"

var (
	// ErrNotConfigured возвращается, когда ключ платежного шлюза не задан
	ErrNotConfigured = errors.New("payment: gateway not configured")

	// ErrGateway возвращается, когда шлюз отклонил запрос или недоступен
	ErrGateway = errors.New("payment: gateway request failed")

	// ErrInvalidSignature возвращается, когда подпись webhook не сходится
	ErrInvalidSignature = errors.New("payment: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда тело события не удается разобрать
	ErrInvalidPayload = errors.New("payment: invalid event payload")
)
