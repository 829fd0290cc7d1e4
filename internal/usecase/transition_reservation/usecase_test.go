package transition_reservation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/cacheinvalidation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
	getErr       error
	updateErr    error
	updates      int
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) UpdateState(ctx context.Context, id int64, state domain.ReservationState) (*domain.Reservation, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	f.updates++
	r.State = state
	copied := *r
	return &copied, nil
}

// fakeTxManager выполняет функцию без транзакции, как при вложенном вызове
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) DoRepeatableRead(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeInvalidator struct {
	mutations []domain.Mutation
	err       error
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, mutations ...domain.Mutation) (cacheinvalidation.TagSet, error) {
	f.mutations = append(f.mutations, mutations...)
	return cacheinvalidation.Merge(mutations...), f.err
}

type transitionRecord struct {
	from, to, result string
}

type fakeMetrics struct {
	records []transitionRecord
}

func (m *fakeMetrics) IncReservationTransition(from, to, result string) {
	m.records = append(m.records, transitionRecord{from: from, to: to, result: result})
}

func newRepo(reservations ...*domain.Reservation) *fakeRepo {
	repo := &fakeRepo{reservations: make(map[int64]*domain.Reservation)}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func reservation(id int64, state domain.ReservationState) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		SubScenarioID: 3,
		UserID:        9,
		InitialDate:   types.MustParseDate("2024-06-03"),
		Hours:         []int{10},
		State:         state,
	}
}

func TestExecute_PendingToConfirmedSucceeds(t *testing.T) {
	repo := newRepo(reservation(1, domain.StatePending))
	invalidator := &fakeInvalidator{}
	metrics := &fakeMetrics{}
	tx := &fakeTxManager{}
	uc := NewUseCase(repo, tx, invalidator, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 1, StateID: int64(domain.StateConfirmed)})

	require.NoError(t, err)
	assert.Equal(t, domain.StateConfirmed, resp.Reservation.State)
	assert.Equal(t, domain.StatePending, resp.PreviousState)
	assert.False(t, resp.FreedAvailability)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, invalidator.mutations, 1)
	assert.Equal(t, int64(3), *invalidator.mutations[0].SubScenarioID)
	assert.Equal(t, int64(9), *invalidator.mutations[0].UserID)
	assert.Equal(t, []types.Date{types.MustParseDate("2024-06-03")}, invalidator.mutations[0].DateKeys)

	assert.Equal(t, []transitionRecord{{from: "pending", to: "confirmed", result: "success"}}, metrics.records)
}

func TestExecute_CompletedToPendingAlwaysFails(t *testing.T) {
	repo := newRepo(reservation(1, domain.StateCompleted))
	invalidator := &fakeInvalidator{}
	metrics := &fakeMetrics{}
	uc := NewUseCase(repo, &fakeTxManager{}, invalidator, metrics, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 1, StateID: int64(domain.StatePending)})

	assert.Nil(t, resp)
	var transitionErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, int64(1), transitionErr.ReservationID)
	assert.Equal(t, domain.StateCompleted, transitionErr.From)
	assert.Equal(t, domain.StatePending, transitionErr.To)

	assert.Equal(t, 0, repo.updates)
	assert.Empty(t, invalidator.mutations)
	assert.Equal(t, "rejected", metrics.records[0].result)
}

func TestExecute_FreedAvailability(t *testing.T) {
	tests := []struct {
		name     string
		from, to domain.ReservationState
		freed    bool
	}{
		{name: "confirmed cancelled", from: domain.StateConfirmed, to: domain.StateCancelled, freed: true},
		{name: "pending rejected", from: domain.StatePending, to: domain.StateRejected, freed: true},
		{name: "confirmed completed", from: domain.StateConfirmed, to: domain.StateCompleted, freed: true},
		{name: "pending confirmed", from: domain.StatePending, to: domain.StateConfirmed, freed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(newRepo(reservation(5, tt.from)), &fakeTxManager{}, &fakeInvalidator{}, &fakeMetrics{}, nopLogger{})

			resp, err := uc.Execute(context.Background(), &Request{ReservationID: 5, StateID: int64(tt.to)})

			require.NoError(t, err)
			assert.Equal(t, tt.freed, resp.FreedAvailability)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	t.Run("unknown target state", func(t *testing.T) {
		repo := newRepo(reservation(1, domain.StatePending))
		uc := NewUseCase(repo, &fakeTxManager{}, &fakeInvalidator{}, &fakeMetrics{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 1, StateID: 99})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "stateId", validationErr.Field)
	})

	t.Run("non positive id", func(t *testing.T) {
		uc := NewUseCase(newRepo(), &fakeTxManager{}, &fakeInvalidator{}, &fakeMetrics{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 0, StateID: int64(domain.StateConfirmed)})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewUseCase(newRepo(), &fakeTxManager{}, &fakeInvalidator{}, &fakeMetrics{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 7, StateID: int64(domain.StateConfirmed)})

		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(7), notFound.ID)
	})

	t.Run("storage failure is wrapped", func(t *testing.T) {
		repo := newRepo(reservation(1, domain.StatePending))
		repo.updateErr = errors.New("deadlock detected")
		metrics := &fakeMetrics{}
		uc := NewUseCase(repo, &fakeTxManager{}, &fakeInvalidator{}, metrics, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{ReservationID: 1, StateID: int64(domain.StateConfirmed)})

		assert.ErrorIs(t, err, ErrInternal)
		assert.Contains(t, err.Error(), "deadlock detected")
		assert.Equal(t, "error", metrics.records[0].result)
	})
}

func TestExecute_InvalidationFailureDoesNotFailTransition(t *testing.T) {
	repo := newRepo(reservation(1, domain.StateConfirmed))
	invalidator := &fakeInvalidator{err: errors.New("redis down")}
	uc := NewUseCase(repo, &fakeTxManager{}, invalidator, &fakeMetrics{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 1, StateID: int64(domain.StateCancelled)})

	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, resp.Reservation.State)
	assert.Len(t, invalidator.mutations, 1)
}

func TestApply_DoesNotInvalidate(t *testing.T) {
	invalidator := &fakeInvalidator{}
	uc := NewUseCase(newRepo(reservation(1, domain.StatePending)), &fakeTxManager{}, invalidator, &fakeMetrics{}, nopLogger{})

	_, err := uc.Apply(context.Background(), &Request{ReservationID: 1, StateID: int64(domain.StateCancelled)})

	require.NoError(t, err)
	assert.Empty(t, invalidator.mutations)
}
