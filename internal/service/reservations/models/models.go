package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationResponse бронирование в ответе API
type ReservationResponse struct {
	ID            int64       `json:"id"`
	SubScenarioID int64       `json:"subScenarioId"`
	UserID        int64       `json:"userId"`
	InitialDate   types.Date  `json:"initialDate"`
	FinalDate     *types.Date `json:"finalDate,omitempty"`
	WeekDays      []int       `json:"weekdays"`
	Hours         []int       `json:"hours"`
	StateID       int64       `json:"stateId"`
	State         string      `json:"state"`
	GroupID       *int64      `json:"groupId,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainReservation конвертирует domain.Reservation в ответ API
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	weekDays := r.WeekDays
	if weekDays == nil {
		weekDays = []int{}
	}
	hours := r.Hours
	if hours == nil {
		hours = []int{}
	}

	return &ReservationResponse{
		ID:            r.ID,
		SubScenarioID: r.SubScenarioID,
		UserID:        r.UserID,
		InitialDate:   r.InitialDate,
		FinalDate:     r.FinalDate,
		WeekDays:      weekDays,
		Hours:         hours,
		StateID:       int64(r.State),
		State:         r.State.String(),
		GroupID:       r.GroupID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	result := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		if converted := FromDomainReservation(r); converted != nil {
			result.Reservations = append(result.Reservations, *converted)
		}
	}
	result.Total = len(result.Reservations)
	return result
}
