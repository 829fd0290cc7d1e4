package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSlotNotAvailable    = "выбранный временной слот уже занят"
	msgSubScenarioNotFound = "подсценарий не найден"
	msgConcurrentUpdate    = "слот одновременно бронируют другие пользователи, повторите запрос"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createReservation.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		if errors.Is(err, types.ErrInvalidDate) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reservation, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		var validationErr *domain.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /reservations - Validation failed: user_id=%d, %v", req.UserID, err)
			handlers.RespondFieldError(w, validationErr.Field, validationErr.Message)

		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: user_id=%d, sub_scenario_id=%d, %v",
				req.UserID, req.SubScenarioID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations - Concurrent update: user_id=%d, sub_scenario_id=%d, %v",
				req.UserID, req.SubScenarioID, err)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /reservations - Sub-scenario not found: sub_scenario_id=%d", req.SubScenarioID)
			handlers.RespondNotFound(w, msgSubScenarioNotFound)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, sub_scenario_id=%d",
		reservation.ID, reservation.UserID, reservation.SubScenarioID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainReservation(reservation))
}
