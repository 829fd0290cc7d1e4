package bulk_update_reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bulkUpdate "github.com/m04kA/SMC-ReservationService/internal/usecase/bulk_update_reservations"
)

type BulkUpdateUseCase interface {
	Execute(ctx context.Context, req *bulkUpdate.Request) (*domain.BulkUpdateResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
