package export_reservations

import (
	"context"

	exportReservations "github.com/m04kA/SMC-ReservationService/internal/usecase/export_reservations"
)

type ExportReservationsUseCase interface {
	Execute(ctx context.Context, req *exportReservations.Request) (*exportReservations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
