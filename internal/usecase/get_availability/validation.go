package get_availability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ParseRequest переводит сырые параметры запроса в конфигурацию окна.
// Ошибки разбора возвращаются как *domain.ValidationError с именем поля.
func ParseRequest(req *Request) (domain.AvailabilityConfiguration, error) {
	cfg := domain.AvailabilityConfiguration{SubScenarioID: req.SubScenarioID}

	if strings.TrimSpace(req.InitialDate) == "" {
		return cfg, &domain.ValidationError{Field: "initialDate", Message: "is required"}
	}
	initial, err := types.ParseDate(strings.TrimSpace(req.InitialDate))
	if err != nil {
		return cfg, &domain.ValidationError{Field: "initialDate", Message: "must be a calendar date in YYYY-MM-DD format"}
	}
	cfg.InitialDate = initial

	if final := strings.TrimSpace(req.FinalDate); final != "" {
		d, err := types.ParseDate(final)
		if err != nil {
			return cfg, &domain.ValidationError{Field: "finalDate", Message: "must be a calendar date in YYYY-MM-DD format"}
		}
		cfg.FinalDate = &d
	}

	weekDays, err := ParseWeekDays(req.WeekDays)
	if err != nil {
		return cfg, err
	}
	cfg.WeekDays = weekDays

	return cfg, nil
}

// ParseWeekDays разбирает список дней недели через запятую ("1,3,5").
// Повторы удаляются, результат отсортирован. Пустая строка = nil (все дни).
func ParseWeekDays(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	weekDays := make([]int, 0, 7)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		wd, err := strconv.Atoi(part)
		if err != nil {
			return nil, &domain.ValidationError{Field: "weekdays", Message: fmt.Sprintf("%q is not an integer", part)}
		}
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		weekDays = append(weekDays, wd)
	}

	sort.Ints(weekDays)
	return weekDays, nil
}

// validateConfiguration проверяет окно запроса
func validateConfiguration(cfg domain.AvailabilityConfiguration, maxRangeDays int) error {
	if err := domain.ValidateStruct(cfg); err != nil {
		return err
	}

	if cfg.InitialDate.IsZero() {
		return &domain.ValidationError{Field: "initialDate", Message: "is required"}
	}

	if cfg.FinalDate != nil && cfg.FinalDate.Before(cfg.InitialDate) {
		return &domain.ValidationError{Field: "finalDate", Message: "must not be before initialDate"}
	}

	if maxRangeDays > 0 {
		days := cfg.InitialDate.DaysUntil(cfg.LastDate()) + 1
		if days > maxRangeDays {
			return &domain.ValidationError{
				Field:   "finalDate",
				Message: fmt.Sprintf("date range of %d days exceeds the maximum of %d days", days, maxRangeDays),
			}
		}
	}

	return nil
}
