package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// OperatingHours часы работы подсценария.
// Слоты начинаются в OpenHour и заканчиваются не позже CloseHour (час закрытия не бронируется).
type OperatingHours struct {
	OpenHour  int
	CloseHour int
}

// IsValid проверяет, что 0 <= OpenHour < CloseHour <= 24
func (h OperatingHours) IsValid() bool {
	return h.OpenHour >= MinHour && h.CloseHour <= MaxHour && h.OpenHour < h.CloseHour
}

// SlotCount возвращает количество часовых слотов в день
func (h OperatingHours) SlotCount() int {
	if !h.IsValid() {
		return 0
	}
	return h.CloseHour - h.OpenHour
}

// Contains проверяет, что слот с началом в hour входит в часы работы
func (h OperatingHours) Contains(hour int) bool {
	return h.IsValid() && hour >= h.OpenHour && hour < h.CloseHour
}

// SubScenario бронируемая единица спортивного объекта
type SubScenario struct {
	ID             int64
	ScenarioID     int64
	Name           string
	OperatingHours OperatingHours
}

// GenerateSlotGrid возвращает упорядоченный список часов начала слотов,
// которые подсценарий может предложить в указанную дату, без учета бронирований.
// Чистая функция: одинаковые входные данные всегда дают одинаковый результат.
func GenerateSlotGrid(hours OperatingHours, date types.Date) []int {
	if !hours.IsValid() || date.IsZero() {
		return []int{}
	}

	slots := make([]int, 0, hours.SlotCount())
	for hour := hours.OpenHour; hour < hours.CloseHour; hour++ {
		slots = append(slots, hour)
	}
	return slots
}
