package get_availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	subScenarioRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/subscenario"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
)

// UseCase use case расчета доступности слотов подсценария
type UseCase struct {
	reservationRepo ReservationRepository
	subScenarioRepo SubScenarioRepository
	cache           Cache
	opts            Options
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil
func NewUseCase(
	reservationRepo ReservationRepository,
	subScenarioRepo SubScenarioRepository,
	cache Cache,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		subScenarioRepo: subScenarioRepo,
		cache:           cache,
		opts:            opts,
		logger:          logger,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.AvailabilityResult, error) {
	uc.logger.Info("GetAvailability: subScenario=%d, initialDate=%s, finalDate=%s, weekdays=%q",
		req.SubScenarioID, req.InitialDate, req.FinalDate, req.WeekDays)

	// 1. Разбор и валидация окна
	cfg, err := ParseRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}
	if err := validateConfiguration(cfg, uc.opts.MaxRangeDays); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Подсценарий и его часы работы
	subScenario, err := uc.subScenarioRepo.GetByID(ctx, cfg.SubScenarioID)
	if err != nil {
		if errors.Is(err, subScenarioRepo.ErrSubScenarioNotFound) {
			uc.logger.Warn("GetAvailability: sub-scenario id=%d not found", cfg.SubScenarioID)
			return nil, &domain.NotFoundError{Entity: "sub-scenario", ID: cfg.SubScenarioID}
		}
		uc.logger.Error("GetAvailability: failed to get sub-scenario id=%d: %v", cfg.SubScenarioID, err)
		return nil, fmt.Errorf("%w: failed to get sub-scenario: %v", ErrInternal, err)
	}

	// 3. Кэш
	key := cacheKey(cfg)
	if cached, ok := uc.readCache(ctx, key); ok {
		uc.logger.Info("GetAvailability: cache hit key=%s", key)
		return cached, nil
	}

	// 4. Бронирования, пересекающиеся с окном.
	// Поколения снимаются до чтения: запись в кэш отменяется, если инвалидация прошла между ними
	generations, cacheable := uc.snapshotGenerations(ctx, cfg.SubScenarioID)

	reservations, err := uc.reservationRepo.GetBySubScenarioAndDateRange(ctx, domain.ReservationsFilter{
		SubScenarioID: cfg.SubScenarioID,
		From:          cfg.InitialDate,
		To:            cfg.LastDate(),
		States:        domain.BlockingStates,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Расчет
	result, err := Compute(cfg, subScenario.OperatingHours, reservations, uc.opts)
	if err != nil {
		return nil, err
	}

	if cacheable {
		uc.writeCache(ctx, key, result, generations)
	}

	uc.logger.Info("GetAvailability: subScenario=%d, dates=%d, slots=%d/%d available",
		cfg.SubScenarioID, len(result.CalculatedDates), result.Stats.AvailableSlots, result.Stats.TotalSlots)

	return result, nil
}

func (uc *UseCase) readCache(ctx context.Context, key string) (*domain.AvailabilityResult, bool) {
	if uc.cache == nil || uc.opts.CacheTTL <= 0 {
		return nil, false
	}

	data, found, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("GetAvailability: cache read failed key=%s: %v", key, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	var result domain.AvailabilityResult
	if err := json.Unmarshal(data, &result); err != nil {
		uc.logger.Warn("GetAvailability: cache entry key=%s is corrupted: %v", key, err)
		return nil, false
	}

	return &result, true
}

// snapshotGenerations возвращает поколения тегов, которые сбрасываются при изменении
// бронирований подсценария. false, если кэш выключен или поколения не прочитать
func (uc *UseCase) snapshotGenerations(ctx context.Context, subScenarioID int64) ([]int64, bool) {
	if uc.cache == nil || uc.opts.CacheTTL <= 0 {
		return nil, false
	}

	tags := generationTags(subScenarioID)
	generations := make([]int64, len(tags))
	for i, tag := range tags {
		gen, err := uc.cache.Generation(ctx, tag)
		if err != nil {
			uc.logger.Warn("GetAvailability: cache generation read failed tag=%s: %v", tag, err)
			return nil, false
		}
		generations[i] = gen
	}

	return generations, true
}

func (uc *UseCase) writeCache(ctx context.Context, key string, result *domain.AvailabilityResult, generations []int64) {

	data, err := json.Marshal(result)
	if err != nil {
		uc.logger.Warn("GetAvailability: failed to encode result for cache: %v", err)
		return
	}

	if err := uc.cache.Set(ctx, key, data, uc.opts.CacheTTL, cacheTags(result)); err != nil {
		uc.logger.Warn("GetAvailability: cache write failed key=%s: %v", key, err)
		return
	}

	current, ok := uc.snapshotGenerations(ctx, result.SubScenarioID)
	if ok && slices.Equal(current, generations) {
		return
	}

	uc.logger.Info("GetAvailability: invalidated during computation, dropping cache key=%s", key)
	if err := uc.cache.Delete(ctx, key); err != nil {
		uc.logger.Warn("GetAvailability: failed to drop stale cache key=%s: %v", key, err)
	}
}

func generationTags(subScenarioID int64) []string {
	return []string{domain.TagTimeSlots, cacheinvalidation.TimeSlotsTag(subScenarioID)}
}

func cacheKey(cfg domain.AvailabilityConfiguration) string {
	return fmt.Sprintf("availability:%d:%s:%s:%v", cfg.SubScenarioID, cfg.InitialDate, cfg.LastDate(), cfg.WeekDays)
}

// cacheTags теги, по которым сбрасывается закэшированная доступность
func cacheTags(result *domain.AvailabilityResult) []string {
	tags := make([]string, 0, len(result.CalculatedDates)+2)
	tags = append(tags, domain.TagTimeSlots, cacheinvalidation.TimeSlotsTag(result.SubScenarioID))
	for _, date := range result.CalculatedDates {
		tags = append(tags, cacheinvalidation.TimeSlotsDateTag(result.SubScenarioID, date))
	}
	return tags
}
