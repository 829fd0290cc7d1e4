package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса доступности в том виде, в котором она пришла от клиента
type Request struct {
	SubScenarioID int64
	InitialDate   string // YYYY-MM-DD, обязательный
	FinalDate     string // YYYY-MM-DD, пусто = только InitialDate
	WeekDays      string // "1,3,5", пусто = все дни
}

// Options параметры расчета
type Options struct {
	MaxRangeDays int                 // Максимальная длина окна в днях
	Rounding     domain.RoundingMode // Правило округления процентов
	CacheTTL     time.Duration       // 0 = результат не кэшируется
}

// DefaultOptions значения по умолчанию
func DefaultOptions() Options {
	return Options{
		MaxRangeDays: domain.DefaultMaxRangeDays,
		Rounding:     domain.RoundHalfUp,
		CacheTTL:     domain.DefaultCacheTTLSeconds * time.Second,
	}
}
