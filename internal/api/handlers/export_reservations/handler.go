package export_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/jobpoller"
	exportReservations "github.com/m04kA/SMC-ReservationService/internal/usecase/export_reservations"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStillProcessing    = "выгрузка еще формируется, проверьте позже"
	msgExportFailed       = "не удалось сформировать выгрузку"
	msgExportUnavailable  = "сервис выгрузки недоступен"
	msgExportCancelled    = "выгрузка отменена"
)

type Handler struct {
	useCase ExportReservationsUseCase
	logger  Logger
}

func NewHandler(useCase ExportReservationsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/exports
//   - 200: файл готов, в ответе ссылка
//   - 202: задача не успела завершиться, клиент проверяет позже
//   - 502: внешняя система не запустила задачу или сообщила о провале
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req exportReservations.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/exports - Invalid request body: %v", err)
		if errors.Is(err, types.ErrInvalidDate) {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		var (
			validationErr *domain.ValidationError
			timedOutErr   *jobpoller.TimedOutError
			failedErr     *jobpoller.JobFailedError
		)

		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /reservations/exports - Validation failed: %v", err)
			handlers.RespondFieldError(w, validationErr.Field, validationErr.Message)

		case errors.As(err, &timedOutErr):
			h.logger.Warn("POST /reservations/exports - Job still processing: job=%s, attempts=%d", timedOutErr.JobID, timedOutErr.Attempts)
			handlers.RespondJSON(w, http.StatusAccepted, FromJob(timedOutErr.JobID, timedOutErr.LastJob, msgStillProcessing))

		case errors.As(err, &failedErr):
			h.logger.Warn("POST /reservations/exports - Job failed: %v", err)
			jobID := ""
			if failedErr.Job != nil {
				jobID = failedErr.Job.ID
			}
			handlers.RespondJSON(w, http.StatusBadGateway, FromJob(jobID, failedErr.Job, msgExportFailed))

		case errors.Is(err, jobpoller.ErrJobStart):
			h.logger.Error("POST /reservations/exports - Failed to start job: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgExportUnavailable)

		case errors.Is(err, exportReservations.ErrCancelled):
			h.logger.Warn("POST /reservations/exports - Cancelled: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgExportCancelled)

		default:
			h.logger.Error("POST /reservations/exports - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/exports - Export ready: job=%s, format=%s", resp.JobID, req.Format)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
