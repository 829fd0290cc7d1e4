package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetBySubScenarioAndDateRange получает бронирования подсценария, пересекающиеся с периодом
	GetBySubScenarioAndDateRange(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// SubScenarioRepository интерфейс репозитория подсценариев
type SubScenarioRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SubScenario, error)
}

// Cache кэш результатов с тегами
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags []string) error
	Delete(ctx context.Context, key string) error
	// Generation номер поколения тега, растёт при каждой инвалидации
	Generation(ctx context.Context, tag string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
