package transition_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// Результаты перехода для метрик
const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case смены статуса одного бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	invalidator     CacheInvalidator
	metrics         MetricsRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute меняет статус бронирования и сбрасывает связанный кэш.
// Инвалидация выполняется после фиксации транзакции: между обновлением
// и сбросом кэша читатель может увидеть устаревшую доступность.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.Apply(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := uc.invalidator.Invalidate(ctx, resp.Mutation); err != nil {
		uc.logger.Error("TransitionReservation: reservation id=%d updated, cache invalidation failed: %v",
			req.ReservationID, err)
	}

	return resp, nil
}

// Apply проверяет и сохраняет переход без инвалидации кэша.
// Используется пакетной сменой статуса, которая сбрасывает кэш один раз за весь пакет.
func (uc *UseCase) Apply(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionReservation: reservation=%d, targetState=%d", req.ReservationID, req.StateID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, &domain.ValidationError{Field: "reservationId", Message: "must be positive"}
	}
	target, err := domain.ParseReservationState(req.StateID)
	if err != nil {
		uc.logger.Warn("TransitionReservation: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	// 2. Чтение и запись в одной транзакции, строка блокируется до коммита
	err = uc.txManager.DoRepeatableRead(ctx, func(txCtx context.Context) error {
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return &domain.NotFoundError{Entity: "reservation", ID: req.ReservationID}
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		next, err := domain.ApplyTransition(current, target)
		if err != nil {
			return err
		}

		updated, err := uc.reservationRepo.UpdateState(txCtx, next.ID, next.State)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return &domain.NotFoundError{Entity: "reservation", ID: req.ReservationID}
			}
			return fmt.Errorf("%w: failed to update reservation state: %v", ErrInternal, err)
		}

		resp = &Response{
			Reservation:       updated,
			PreviousState:     current.State,
			Mutation:          updated.Mutation(),
			FreedAvailability: domain.FreesAvailability(current.State, updated.State),
		}
		return nil
	})

	if err != nil {
		uc.recordFailure(req, target, err)
		return nil, err
	}

	uc.metrics.IncReservationTransition(resp.PreviousState.String(), target.String(), resultSuccess)
	uc.logger.Info("TransitionReservation: reservation=%d moved %s -> %s, freedAvailability=%t",
		req.ReservationID, resp.PreviousState, target, resp.FreedAvailability)

	return resp, nil
}

func (uc *UseCase) recordFailure(req *Request, target domain.ReservationState, err error) {
	var transitionErr *domain.InvalidTransitionError
	switch {
	case errors.As(err, &transitionErr):
		uc.logger.Warn("TransitionReservation: %v", err)
		uc.metrics.IncReservationTransition(transitionErr.From.String(), target.String(), resultRejected)
	case errors.Is(err, domain.ErrNotFound):
		uc.logger.Warn("TransitionReservation: reservation id=%d not found", req.ReservationID)
		uc.metrics.IncReservationTransition("unknown", target.String(), resultRejected)
	default:
		uc.logger.Error("TransitionReservation: reservation id=%d failed: %v", req.ReservationID, err)
		uc.metrics.IncReservationTransition("unknown", target.String(), resultError)
	}
}
