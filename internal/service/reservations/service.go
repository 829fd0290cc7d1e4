package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	cache           Cache
	cacheTTL        time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований. cache может быть nil
func NewService(reservationRepo ReservationRepository, cache Cache, cacheTTL time.Duration, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		cache:           cache,
		cacheTTL:        cacheTTL,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	if id <= 0 {
		return nil, &domain.ValidationError{Field: "reservationId", Message: "must be positive"}
	}

	key := fmt.Sprintf("reservation:%d", id)
	var cached models.ReservationResponse
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, &domain.NotFoundError{Entity: "reservation", ID: id}
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainReservation(reservation)
	s.writeCache(ctx, key, resp,
		domain.TagReservations,
		cacheinvalidation.ScenarioReservationsTag(reservation.SubScenarioID),
		cacheinvalidation.UserReservationsTag(reservation.UserID),
	)

	return resp, nil
}

// GetUserReservations получает бронирования пользователя, начиная с самых новых.
// userID = 0 возвращает бронирования всех пользователей (панель администратора).
func (s *Service) GetUserReservations(ctx context.Context, userID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d", userID)

	if userID < 0 {
		return nil, &domain.ValidationError{Field: "userId", Message: "must not be negative"}
	}

	key := fmt.Sprintf("reservations:user:%d", userID)
	var cached models.ReservationListResponse
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	list, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainReservationList(list)
	s.writeCache(ctx, key, resp, domain.TagReservations, cacheinvalidation.UserReservationsTag(userID))

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", resp.Total, userID)
	return resp, nil
}

func (s *Service) readCache(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}

	data, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Reservations: cache read failed key=%s: %v", key, err)
		return false
	}
	if !found {
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("Reservations: cache entry key=%s is corrupted: %v", key, err)
		return false
	}
	return true
}

func (s *Service) writeCache(ctx context.Context, key string, value interface{}, tags ...string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("Reservations: failed to encode cache entry key=%s: %v", key, err)
		return
	}

	if err := s.cache.Set(ctx, key, data, s.cacheTTL, tags); err != nil {
		s.logger.Warn("Reservations: cache write failed key=%s: %v", key, err)
	}
}
