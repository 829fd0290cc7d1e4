package domain

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// AvailabilityConfiguration окно запроса доступности. Не сохраняется
type AvailabilityConfiguration struct {
	SubScenarioID int64       `json:"subScenarioId" validate:"gt=0"`
	InitialDate   types.Date  `json:"initialDate" validate:"-"`
	FinalDate     *types.Date `json:"finalDate,omitempty" validate:"-"`
	WeekDays      []int       `json:"weekdays,omitempty" validate:"omitempty,dive,min=0,max=6"`
}

// LastDate возвращает конец окна (InitialDate, если FinalDate не задана)
func (c AvailabilityConfiguration) LastDate() types.Date {
	if c.FinalDate != nil {
		return *c.FinalDate
	}
	return c.InitialDate
}

// IncludesWeekday проверяет фильтр по дням недели (пустой фильтр пропускает всё)
func (c AvailabilityConfiguration) IncludesWeekday(weekday int) bool {
	if len(c.WeekDays) == 0 {
		return true
	}
	for _, wd := range c.WeekDays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// TimeSlot один часовой слот подсценария в конкретную дату
type TimeSlot struct {
	Hour        int
	Date        types.Date
	IsAvailable bool

	// Заполняется только для запросов на несколько дат:
	// true, если этот час свободен во всех рассчитанных датах
	IsAvailableInAllDates *bool
}

// DateAvailability статистика по одной дате
type DateAvailability struct {
	Date                   types.Date
	TotalSlots             int
	AvailableSlots         int
	AvailabilityPercentage int
}

// AvailabilityStats общая статистика по окну
type AvailabilityStats struct {
	TotalSlots                   int
	AvailableSlots               int
	GlobalAvailabilityPercentage int
}

// AvailabilityResult результат расчета доступности
type AvailabilityResult struct {
	SubScenarioID          int64
	RequestedConfiguration AvailabilityConfiguration
	CalculatedDates        []types.Date
	TimeSlots              []TimeSlot
	DateStats              []DateAvailability
	Stats                  AvailabilityStats
}

// IsMultiDate возвращает true, если рассчитано больше одной даты
func (r *AvailabilityResult) IsMultiDate() bool {
	return len(r.CalculatedDates) > 1
}

// RoundingMode правило округления процента доступности
type RoundingMode string

const (
	RoundHalfUp RoundingMode = "half_up"
	RoundFloor  RoundingMode = "floor"
	RoundCeil   RoundingMode = "ceil"
)

// ParseRoundingMode конвертирует строку из конфигурации
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case "", RoundHalfUp:
		return RoundHalfUp, nil
	case RoundFloor:
		return RoundFloor, nil
	case RoundCeil:
		return RoundCeil, nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q", s)
	}
}

// Percentage возвращает 100*part/total, округленное по правилу m. При total = 0 возвращает 0
func (m RoundingMode) Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}

	switch m {
	case RoundFloor:
		return 100 * part / total
	case RoundCeil:
		return (100*part + total - 1) / total
	default:
		// Половина округляется вверх: floor(100*part/total + 1/2)
		return (200*part + total) / (2 * total)
	}
}
