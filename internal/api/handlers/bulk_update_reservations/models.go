package bulk_update_reservations

import (
	"errors"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	bulkUpdate "github.com/m04kA/SMC-ReservationService/internal/usecase/bulk_update_reservations"
)

// Коды ошибок отдельных бронирований в пакете
const (
	itemErrorNotFound          = "not_found"
	itemErrorInvalidTransition = "invalid_transition"
	itemErrorValidation        = "validation"
	itemErrorInternal          = "internal"
)

// BulkUpdateRequest HTTP request model
type BulkUpdateRequest struct {
	StateID       int64   `json:"stateId"`
	AdditionalIDs []int64 `json:"additionalIds"`
}

// BulkUpdateResponse HTTP response model
type BulkUpdateResponse struct {
	Success      bool                         `json:"success"`
	UpdatedCount int                          `json:"updatedCount"`
	Data         []models.ReservationResponse `json:"data"`
	Errors       []ItemError                  `json:"errors,omitempty"`
}

// ItemError ошибка по одному бронированию
type ItemError struct {
	ReservationID int64  `json:"reservationId"`
	Code          string `json:"code"`
	Error         string `json:"error"`
}

// ToUseCaseRequest создает запрос use case
func (r *BulkUpdateRequest) ToUseCaseRequest(primaryID int64) *bulkUpdate.Request {
	return &bulkUpdate.Request{
		PrimaryID:     primaryID,
		AdditionalIDs: r.AdditionalIDs,
		StateID:       r.StateID,
	}
}

// FromDomainResult конвертирует результат пакетной операции в HTTP response
func FromDomainResult(result *domain.BulkUpdateResult) *BulkUpdateResponse {
	resp := &BulkUpdateResponse{
		Success:      result.Success,
		UpdatedCount: result.UpdatedCount,
		Data:         models.FromDomainReservationList(result.Data).Reservations,
	}

	for _, item := range result.Errors {
		resp.Errors = append(resp.Errors, ItemError{
			ReservationID: item.ReservationID,
			Code:          itemErrorCode(item.Err),
			Error:         item.Err.Error(),
		})
	}

	return resp
}

func itemErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return itemErrorNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return itemErrorInvalidTransition
	case errors.Is(err, domain.ErrValidation):
		return itemErrorValidation
	default:
		return itemErrorInternal
	}
}
