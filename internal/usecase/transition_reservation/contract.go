package transition_reservation

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateState(ctx context.Context, id int64, state domain.ReservationState) (*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator координатор инвалидации кэша
type CacheInvalidator interface {
	Invalidate(ctx context.Context, mutations ...domain.Mutation) (cacheinvalidation.TagSet, error)
}

// MetricsRecorder счетчик переходов статусов
type MetricsRecorder interface {
	IncReservationTransition(from, to, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
