package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Compute рассчитывает доступность слотов подсценария в окне cfg.
// Чистая функция: не обращается к хранилищам и не меняет входные данные.
// Бронирования других подсценариев и в неблокирующих статусах игнорируются.
func Compute(
	cfg domain.AvailabilityConfiguration,
	hours domain.OperatingHours,
	reservations []*domain.Reservation,
	opts Options,
) (*domain.AvailabilityResult, error) {
	if err := validateConfiguration(cfg, opts.MaxRangeDays); err != nil {
		return nil, err
	}

	dates := calculateDates(cfg)
	blocking := blockingReservations(cfg.SubScenarioID, reservations)

	result := &domain.AvailabilityResult{
		SubScenarioID:          cfg.SubScenarioID,
		RequestedConfiguration: cfg,
		CalculatedDates:        dates,
		TimeSlots:              make([]domain.TimeSlot, 0),
		DateStats:              make([]domain.DateAvailability, 0, len(dates)),
	}

	// Для каждого часа считаем, в скольких датах он свободен
	freeCount := make(map[int]int)

	for _, date := range dates {
		grid := domain.GenerateSlotGrid(hours, date)
		dateStats := domain.DateAvailability{Date: date, TotalSlots: len(grid)}

		for _, hour := range grid {
			available := !isOccupied(blocking, date, hour)
			if available {
				dateStats.AvailableSlots++
				freeCount[hour]++
			}

			result.TimeSlots = append(result.TimeSlots, domain.TimeSlot{
				Hour:        hour,
				Date:        date,
				IsAvailable: available,
			})
		}

		dateStats.AvailabilityPercentage = opts.Rounding.Percentage(dateStats.AvailableSlots, dateStats.TotalSlots)
		result.DateStats = append(result.DateStats, dateStats)

		result.Stats.TotalSlots += dateStats.TotalSlots
		result.Stats.AvailableSlots += dateStats.AvailableSlots
	}

	if result.IsMultiDate() {
		for i := range result.TimeSlots {
			inAll := freeCount[result.TimeSlots[i].Hour] == len(dates)
			result.TimeSlots[i].IsAvailableInAllDates = &inAll
		}
	}

	result.Stats.GlobalAvailabilityPercentage = opts.Rounding.Percentage(result.Stats.AvailableSlots, result.Stats.TotalSlots)

	return result, nil
}

// calculateDates перечисляет даты окна, прошедшие фильтр по дням недели
func calculateDates(cfg domain.AvailabilityConfiguration) []types.Date {
	last := cfg.LastDate()
	dates := make([]types.Date, 0, cfg.InitialDate.DaysUntil(last)+1)

	for d := cfg.InitialDate; !d.After(last); d = d.AddDays(1) {
		if cfg.IncludesWeekday(d.Weekday()) {
			dates = append(dates, d)
		}
	}

	return dates
}

// blockingReservations оставляет только бронирования подсценария, занимающие слоты
func blockingReservations(subScenarioID int64, reservations []*domain.Reservation) []*domain.Reservation {
	blocking := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r == nil || r.SubScenarioID != subScenarioID || !r.IsBlocking() {
			continue
		}
		blocking = append(blocking, r)
	}
	return blocking
}

// isOccupied проверяет, что хотя бы одно бронирование занимает час hour в дату date
func isOccupied(reservations []*domain.Reservation, date types.Date, hour int) bool {
	for _, r := range reservations {
		if r.Occupies(date, hour) {
			return true
		}
	}
	return false
}
