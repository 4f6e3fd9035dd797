package payment_webhook

import (
	"context"

	paymentEvents "github.com/m04kA/atelier-booking/internal/usecase/payment_events"
)

type UseCase interface {
	Execute(ctx context.Context, payload []byte, signature string) (*paymentEvents.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
