package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	subScenarioRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/subscenario"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	subScenarioRepo SubScenarioRepository
	txManager       TransactionManager
	invalidator     CacheInvalidator
	timeProvider    TimeProvider
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	subScenarioRepo SubScenarioRepository,
	txManager TransactionManager,
	invalidator CacheInvalidator,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		subScenarioRepo: subScenarioRepo,
		txManager:       txManager,
		invalidator:     invalidator,
		timeProvider:    &RealTimeProvider{},
		opts:            opts,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// поэтому два параллельных запроса не могут занять один и тот же час.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("CreateReservation: user=%d, subScenario=%d, initialDate=%s, hours=%v",
		req.UserID, req.SubScenarioID, req.InitialDate, req.Hours)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now(), uc.opts.MaxRangeDays); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Подсценарий и сетка слотов
	subScenario, err := uc.subScenarioRepo.GetByID(ctx, req.SubScenarioID)
	if err != nil {
		if errors.Is(err, subScenarioRepo.ErrSubScenarioNotFound) {
			uc.logger.Warn("CreateReservation: sub-scenario id=%d not found", req.SubScenarioID)
			return nil, &domain.NotFoundError{Entity: "sub-scenario", ID: req.SubScenarioID}
		}
		uc.logger.Error("CreateReservation: failed to get sub-scenario id=%d: %v", req.SubScenarioID, err)
		return nil, fmt.Errorf("%w: failed to get sub-scenario: %v", ErrInternal, err)
	}

	if err := validateHours(req.Hours, subScenario.OperatingHours); err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, err
	}

	candidate := &domain.Reservation{
		SubScenarioID: req.SubScenarioID,
		UserID:        req.UserID,
		InitialDate:   req.InitialDate,
		FinalDate:     req.FinalDate,
		WeekDays:      uniqueSorted(req.WeekDays),
		Hours:         uniqueSorted(req.Hours),
		State:         domain.StatePending,
		GroupID:       req.GroupID,
	}

	if len(candidate.Dates()) == 0 {
		return nil, &domain.ValidationError{Field: "weekdays", Message: "no dates in the period match the weekday filter"}
	}

	var created *domain.Reservation

	// 3. Проверка занятости и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.reservationRepo.GetBySubScenarioAndDateRange(txCtx, domain.ReservationsFilter{
			SubScenarioID: candidate.SubScenarioID,
			From:          candidate.InitialDate,
			To:            candidate.LastDate(),
			States:        domain.BlockingStates,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		if date, hour, busy := findConflict(candidate, existing); busy {
			uc.logger.Warn("CreateReservation: subScenario=%d is busy on %s at %02d:00", candidate.SubScenarioID, date, hour)
			return fmt.Errorf("%w: %s at %02d:00", ErrSlotNotAvailable, date, hour)
		}

		created, err = uc.reservationRepo.Create(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		return nil
	})

	if errors.Is(err, txmanager.ErrSerialization) {
		uc.logger.Warn("CreateReservation: subScenario=%d concurrent reservation, retries exhausted: %v", candidate.SubScenarioID, err)
		return nil, fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", created.ID)

	// 4. Сброс кэша слотов и списков бронирований
	mutation := created.Mutation()
	mutation.Dashboard = true
	if _, err := uc.invalidator.Invalidate(ctx, mutation); err != nil {
		uc.logger.Error("CreateReservation: reservation id=%d created, cache invalidation failed: %v", created.ID, err)
	}

	return created, nil
}
