package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

const (
	msgInvalidSubScenarioID = "некорректный ID подсценария"
	msgSubScenarioNotFound  = "подсценарий не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sub-scenarios/{subScenarioId}/availability?initialDate=YYYY-MM-DD&finalDate=YYYY-MM-DD&weekdays=1,3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subScenarioID, err := strconv.ParseInt(mux.Vars(r)["subScenarioId"], 10, 64)
	if err != nil || subScenarioID <= 0 {
		h.logger.Warn("GET /sub-scenarios/{id}/availability - Invalid sub-scenario ID: %v", mux.Vars(r)["subScenarioId"])
		handlers.RespondBadRequest(w, msgInvalidSubScenarioID)
		return
	}

	query := r.URL.Query()
	req := &getAvailability.Request{
		SubScenarioID: subScenarioID,
		InitialDate:   query.Get("initialDate"),
		FinalDate:     query.Get("finalDate"),
		WeekDays:      query.Get("weekdays"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		var validationErr *domain.ValidationError

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("GET /sub-scenarios/{id}/availability - Validation failed: sub_scenario_id=%d, %v", subScenarioID, err)
			handlers.RespondFieldError(w, validationErr.Field, validationErr.Message)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /sub-scenarios/{id}/availability - Sub-scenario not found: sub_scenario_id=%d", subScenarioID)
			handlers.RespondNotFound(w, msgSubScenarioNotFound)

		default:
			h.logger.Error("GET /sub-scenarios/{id}/availability - Failed to calculate: sub_scenario_id=%d, error=%v", subScenarioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sub-scenarios/{id}/availability - Calculated: sub_scenario_id=%d, dates=%d, available=%d/%d",
		subScenarioID, len(result.CalculatedDates), result.Stats.AvailableSlots, result.Stats.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, FromDomainResult(result))
}
