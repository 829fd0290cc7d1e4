package bulk_update_reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/transition_reservation"
)

// Transitioner смена статуса одного бронирования без инвалидации кэша
type Transitioner interface {
	Apply(ctx context.Context, req *transition_reservation.Request) (*transition_reservation.Response, error)
}

// CacheInvalidator координатор инвалидации кэша
type CacheInvalidator interface {
	Invalidate(ctx context.Context, mutations ...domain.Mutation) (cacheinvalidation.TagSet, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
