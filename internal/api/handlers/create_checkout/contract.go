package create_checkout

import (
	"context"

	createReservation "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
)

type CheckoutUseCase interface {
	ExecuteCheckout(ctx context.Context, req *createReservation.Request) (*createReservation.CheckoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
