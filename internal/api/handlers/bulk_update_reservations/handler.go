package bulk_update_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
)

type Handler struct {
	useCase BulkUpdateUseCase
	logger  Logger
}

func NewHandler(useCase BulkUpdateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/state/bulk
// Частичный успех возвращается с кодом 200 и success=false.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	primaryID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || primaryID <= 0 {
		h.logger.Warn("PATCH /reservations/{id}/state/bulk - Invalid reservation ID: %q", mux.Vars(r)["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req BulkUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/state/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(primaryID))
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Warn("PATCH /reservations/{id}/state/bulk - Validation failed: primary_id=%d, %v", primaryID, err)
			handlers.RespondFieldError(w, validationErr.Field, validationErr.Message)
			return
		}

		h.logger.Error("PATCH /reservations/{id}/state/bulk - Failed: primary_id=%d, error=%v", primaryID, err)
		handlers.RespondInternalError(w)
		return
	}

	if !result.Success {
		h.logger.Warn("PATCH /reservations/{id}/state/bulk - Partial update: primary_id=%d, updated=%d, failed=%d",
			primaryID, result.UpdatedCount, len(result.Errors))
	} else {
		h.logger.Info("PATCH /reservations/{id}/state/bulk - Updated %d reservations, primary_id=%d", result.UpdatedCount, primaryID)
	}
	handlers.RespondJSON(w, http.StatusOK, FromDomainResult(result))
}
