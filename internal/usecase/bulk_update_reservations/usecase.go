package bulk_update_reservations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/transition_reservation"
)

// UseCase use case пакетной смены статуса бронирований
type UseCase struct {
	transitioner Transitioner
	invalidator  CacheInvalidator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(transitioner Transitioner, invalidator CacheInvalidator, logger Logger) *UseCase {
	return &UseCase{
		transitioner: transitioner,
		invalidator:  invalidator,
		logger:       logger,
	}
}

// Execute переводит основное и дополнительные бронирования в один статус.
// Бронирования обрабатываются последовательно; ошибка по одному id попадает
// в результат и не прерывает обработку остальных. Кэш сбрасывается один раз
// по объединению измерений успешно обновленных бронирований.
//
// Ошибка возвращается только для некорректного запроса целиком.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.BulkUpdateResult, error) {
	ids := req.IDs()

	uc.logger.Info("BulkUpdateReservations: primary=%d, total=%d, targetState=%d", req.PrimaryID, len(ids), req.StateID)

	if err := validateRequest(req, ids); err != nil {
		uc.logger.Warn("BulkUpdateReservations: validation failed: %v", err)
		return nil, err
	}

	result := &domain.BulkUpdateResult{
		Data:   make([]*domain.Reservation, 0, len(ids)),
		Errors: make([]domain.BulkItemError, 0),
	}
	mutations := make([]domain.Mutation, 0, len(ids))

	for _, id := range ids {
		resp, err := uc.transitioner.Apply(ctx, &transition_reservation.Request{ReservationID: id, StateID: req.StateID})
		if err != nil {
			uc.logger.Warn("BulkUpdateReservations: reservation id=%d failed: %v", id, err)
			result.AddError(id, err)
			continue
		}

		result.AddSuccess(resp.Reservation)
		mutations = append(mutations, resp.Mutation)
	}

	result.Finalize()

	if len(mutations) > 0 {
		if _, err := uc.invalidator.Invalidate(ctx, mutations...); err != nil {
			uc.logger.Error("BulkUpdateReservations: cache invalidation failed: %v", err)
		}
	}

	uc.logger.Info("BulkUpdateReservations: updated %d of %d, errors=%d", result.UpdatedCount, len(ids), len(result.Errors))

	return result, nil
}

func validateRequest(req *Request, ids []int64) error {
	if req.PrimaryID <= 0 {
		return &domain.ValidationError{Field: "reservationId", Message: "must be positive"}
	}
	for _, id := range req.AdditionalIDs {
		if id <= 0 {
			return &domain.ValidationError{Field: "additionalIds", Message: fmt.Sprintf("id %d must be positive", id)}
		}
	}
	if len(ids) > domain.MaxBulkIDs {
		return &domain.ValidationError{
			Field:   "additionalIds",
			Message: fmt.Sprintf("at most %d reservations can be updated at once", domain.MaxBulkIDs),
		}
	}
	if _, err := domain.ParseReservationState(req.StateID); err != nil {
		return err
	}
	return nil
}
