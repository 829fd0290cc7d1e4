package create_reservation

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time, maxRangeDays int) error {
	if err := domain.ValidateStruct(req); err != nil {
		return err
	}

	if req.InitialDate.IsZero() {
		return &domain.ValidationError{Field: "initialDate", Message: "is required"}
	}

	// Бронировать прошедшие даты нельзя
	if req.InitialDate.Before(types.DateOf(now)) {
		return &domain.ValidationError{Field: "initialDate", Message: "must not be in the past"}
	}

	if req.FinalDate != nil {
		if req.FinalDate.Before(req.InitialDate) {
			return &domain.ValidationError{Field: "finalDate", Message: "must not be before initialDate"}
		}
		if maxRangeDays > 0 {
			if days := req.InitialDate.DaysUntil(*req.FinalDate) + 1; days > maxRangeDays {
				return &domain.ValidationError{
					Field:   "finalDate",
					Message: fmt.Sprintf("date range of %d days exceeds the maximum of %d days", days, maxRangeDays),
				}
			}
		}
	}

	return nil
}

// validateHours проверяет, что все часы входят в сетку слотов подсценария
func validateHours(hours []int, operating domain.OperatingHours) error {
	for _, hour := range hours {
		if !operating.Contains(hour) {
			return &domain.ValidationError{
				Field:   "hours",
				Message: fmt.Sprintf("hour %d is outside operating hours %d-%d", hour, operating.OpenHour, operating.CloseHour),
			}
		}
	}
	return nil
}

// uniqueSorted возвращает отсортированную копию без повторов
func uniqueSorted(values []int) []int {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(values))
	result := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	sort.Ints(result)
	return result
}

// findConflict возвращает первую занятую пару (дата, час) нового бронирования
func findConflict(candidate *domain.Reservation, existing []*domain.Reservation) (types.Date, int, bool) {
	for _, date := range candidate.Dates() {
		for _, hour := range candidate.Hours {
			for _, r := range existing {
				if r.SubScenarioID == candidate.SubScenarioID && r.IsBlocking() && r.Occupies(date, hour) {
					return date, hour, true
				}
			}
		}
	}
	return types.Date{}, 0, false
}
