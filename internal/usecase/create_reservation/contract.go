package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetBySubScenarioAndDateRange(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// SubScenarioRepository интерфейс репозитория подсценариев
type SubScenarioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SubScenario, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator координатор инвалидации кэша
type CacheInvalidator interface {
	Invalidate(ctx context.Context, mutations ...domain.Mutation) (cacheinvalidation.TagSet, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
