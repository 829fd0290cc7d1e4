package get_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SubScenarioID          int64                      `json:"subScenarioId"`
	RequestedConfiguration ConfigurationResponse      `json:"requestedConfiguration"`
	CalculatedDates        []types.Date               `json:"calculatedDates"`
	TimeSlots              []TimeSlotResponse         `json:"timeSlots"`
	DateStats              []DateAvailabilityResponse `json:"dateStats"`
	Stats                  StatsResponse              `json:"stats"`
}

type ConfigurationResponse struct {
	InitialDate types.Date  `json:"initialDate"`
	FinalDate   *types.Date `json:"finalDate,omitempty"`
	WeekDays    []int       `json:"weekdays,omitempty"`
}

type TimeSlotResponse struct {
	Hour                  int        `json:"hour"`
	Date                  types.Date `json:"date"`
	IsAvailable           bool       `json:"isAvailable"`
	IsAvailableInAllDates *bool      `json:"isAvailableInAllDates,omitempty"`
}

type DateAvailabilityResponse struct {
	Date                   types.Date `json:"date"`
	TotalSlots             int        `json:"totalSlots"`
	AvailableSlots         int        `json:"availableSlots"`
	AvailabilityPercentage int        `json:"availabilityPercentage"`
}

type StatsResponse struct {
	TotalSlots                   int `json:"totalSlots"`
	AvailableSlots               int `json:"availableSlots"`
	GlobalAvailabilityPercentage int `json:"globalAvailabilityPercentage"`
}

// FromDomainResult конвертирует результат расчета в HTTP response
func FromDomainResult(result *domain.AvailabilityResult) *AvailabilityResponse {
	dates := result.CalculatedDates
	if dates == nil {
		dates = []types.Date{}
	}

	slots := make([]TimeSlotResponse, len(result.TimeSlots))
	for i, slot := range result.TimeSlots {
		slots[i] = TimeSlotResponse{
			Hour:                  slot.Hour,
			Date:                  slot.Date,
			IsAvailable:           slot.IsAvailable,
			IsAvailableInAllDates: slot.IsAvailableInAllDates,
		}
	}

	dateStats := make([]DateAvailabilityResponse, len(result.DateStats))
	for i, s := range result.DateStats {
		dateStats[i] = DateAvailabilityResponse{
			Date:                   s.Date,
			TotalSlots:             s.TotalSlots,
			AvailableSlots:         s.AvailableSlots,
			AvailabilityPercentage: s.AvailabilityPercentage,
		}
	}

	cfg := result.RequestedConfiguration

	return &AvailabilityResponse{
		SubScenarioID: result.SubScenarioID,
		RequestedConfiguration: ConfigurationResponse{
			InitialDate: cfg.InitialDate,
			FinalDate:   cfg.FinalDate,
			WeekDays:    cfg.WeekDays,
		},
		CalculatedDates: dates,
		TimeSlots:       slots,
		DateStats:       dateStats,
		Stats: StatsResponse{
			TotalSlots:                   result.Stats.TotalSlots,
			AvailableSlots:               result.Stats.AvailableSlots,
			GlobalAvailabilityPercentage: result.Stats.GlobalAvailabilityPercentage,
		},
	}
}
