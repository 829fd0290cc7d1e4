package transition_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	transitionReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/transition_reservation"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	StateID int64 `json:"stateId"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	Reservation       *models.ReservationResponse `json:"reservation"`
	PreviousStateID   int64                       `json:"previousStateId"`
	PreviousState     string                      `json:"previousState"`
	FreedAvailability bool                        `json:"freedAvailability"`
}

// ToUseCaseRequest создает запрос use case
func (r *TransitionRequest) ToUseCaseRequest(reservationID int64) *transitionReservation.Request {
	return &transitionReservation.Request{
		ReservationID: reservationID,
		StateID:       r.StateID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionReservation.Response) *TransitionResponse {
	return &TransitionResponse{
		Reservation:       models.FromDomainReservation(resp.Reservation),
		PreviousStateID:   int64(resp.PreviousState),
		PreviousState:     resp.PreviousState.String(),
		FreedAvailability: resp.FreedAvailability,
	}
}

// InvalidTransitionResponse тело ответа 409 с текущим и запрошенным статусом
type InvalidTransitionResponse struct {
	Code             int    `json:"code"`
	Message          string `json:"message"`
	ReservationID    int64  `json:"reservationId"`
	CurrentStateID   int64  `json:"currentStateId"`
	CurrentState     string `json:"currentState"`
	AttemptedStateID int64  `json:"attemptedStateId"`
	AttemptedState   string `json:"attemptedState"`
}

// NewInvalidTransitionResponse собирает тело ответа из ошибки перехода
func NewInvalidTransitionResponse(message string, err *domain.InvalidTransitionError) *InvalidTransitionResponse {
	return &InvalidTransitionResponse{
		Code:             http.StatusConflict,
		Message:          message,
		ReservationID:    err.ReservationID,
		CurrentStateID:   int64(err.From),
		CurrentState:     err.From.String(),
		AttemptedStateID: int64(err.To),
		AttemptedState:   err.To.String(),
	}
}
