package create_reservation

import (
	"context"

	createReservation "github.com/m04kA/atelier-booking/internal/usecase/create_reservation"
)

type TransferUseCase interface {
	ExecuteTransfer(ctx context.Context, req *createReservation.Request) (*createReservation.TransferResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
