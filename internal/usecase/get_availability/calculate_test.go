package get_availability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var (
	hours8to12 = domain.OperatingHours{OpenHour: 8, CloseHour: 12}
	monday     = types.MustParseDate("2024-06-03")
)

func singleDay(date types.Date) domain.AvailabilityConfiguration {
	return domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: date}
}

func reservationAt(state domain.ReservationState, date types.Date, hours ...int) *domain.Reservation {
	return &domain.Reservation{
		ID:            10,
		SubScenarioID: 1,
		UserID:        7,
		InitialDate:   date,
		Hours:         hours,
		State:         state,
	}
}

func slotFor(t *testing.T, result *domain.AvailabilityResult, date types.Date, hour int) domain.TimeSlot {
	t.Helper()
	for _, slot := range result.TimeSlots {
		if slot.Date.Equal(date) && slot.Hour == hour {
			return slot
		}
	}
	t.Fatalf("slot %s %d not found", date, hour)
	return domain.TimeSlot{}
}

func TestCompute_SingleDateMarksBlockingReservations(t *testing.T) {
	reservations := []*domain.Reservation{
		reservationAt(domain.StateConfirmed, monday, 9),
		reservationAt(domain.StatePending, monday, 11),
	}

	result, err := Compute(singleDay(monday), hours8to12, reservations, DefaultOptions())

	require.NoError(t, err)
	assert.Equal(t, []types.Date{monday}, result.CalculatedDates)
	require.Len(t, result.TimeSlots, 4)
	assert.True(t, slotFor(t, result, monday, 8).IsAvailable)
	assert.False(t, slotFor(t, result, monday, 9).IsAvailable)
	assert.True(t, slotFor(t, result, monday, 10).IsAvailable)
	assert.False(t, slotFor(t, result, monday, 11).IsAvailable)

	assert.Equal(t, 4, result.Stats.TotalSlots)
	assert.Equal(t, 2, result.Stats.AvailableSlots)
	assert.Equal(t, 50, result.Stats.GlobalAvailabilityPercentage)

	for _, slot := range result.TimeSlots {
		assert.Nil(t, slot.IsAvailableInAllDates, "single-date result has no all-dates flag")
	}
}

func TestCompute_NonBlockingStatesNeverOccupy(t *testing.T) {
	for _, state := range []domain.ReservationState{domain.StateCancelled, domain.StateRejected, domain.StateCompleted} {
		t.Run(state.String(), func(t *testing.T) {
			result, err := Compute(singleDay(monday), hours8to12,
				[]*domain.Reservation{reservationAt(state, monday, 8, 9, 10, 11)}, DefaultOptions())

			require.NoError(t, err)
			assert.Equal(t, result.Stats.TotalSlots, result.Stats.AvailableSlots)
		})
	}
}

func TestCompute_CancelRoundTripFreesHour(t *testing.T) {
	reservation := reservationAt(domain.StateConfirmed, monday, 10)

	before, err := Compute(singleDay(monday), hours8to12, []*domain.Reservation{reservation}, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, slotFor(t, before, monday, 10).IsAvailable)

	cancelled, err := domain.ApplyTransition(reservation, domain.StateCancelled)
	require.NoError(t, err)

	after, err := Compute(singleDay(monday), hours8to12, []*domain.Reservation{cancelled}, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, slotFor(t, after, monday, 10).IsAvailable)
}

func TestCompute_IgnoresOtherSubScenarios(t *testing.T) {
	other := reservationAt(domain.StateConfirmed, monday, 8)
	other.SubScenarioID = 2

	result, err := Compute(singleDay(monday), hours8to12, []*domain.Reservation{other, nil}, DefaultOptions())

	require.NoError(t, err)
	assert.True(t, slotFor(t, result, monday, 8).IsAvailable)
}

func TestCompute_MultiDateAvailableInAllDates(t *testing.T) {
	// Четыре понедельника подряд, час 9 занят только во втором
	cfg := domain.AvailabilityConfiguration{
		SubScenarioID: 1,
		InitialDate:   monday,
		FinalDate:     ptr.Ptr(monday.AddDays(21)),
		WeekDays:      []int{1},
	}
	reservations := []*domain.Reservation{reservationAt(domain.StateConfirmed, monday.AddDays(7), 9)}

	result, err := Compute(cfg, hours8to12, reservations, DefaultOptions())

	require.NoError(t, err)
	require.Len(t, result.CalculatedDates, 4)
	for _, d := range result.CalculatedDates {
		assert.Equal(t, 1, d.Weekday())
	}

	for _, slot := range result.TimeSlots {
		require.NotNil(t, slot.IsAvailableInAllDates)
		if slot.Hour == 9 {
			assert.False(t, *slot.IsAvailableInAllDates)
		} else {
			assert.True(t, *slot.IsAvailableInAllDates)
		}
	}

	assert.True(t, slotFor(t, result, monday, 9).IsAvailable)
	assert.False(t, slotFor(t, result, monday.AddDays(7), 9).IsAvailable)

	assert.Equal(t, 16, result.Stats.TotalSlots)
	assert.Equal(t, 15, result.Stats.AvailableSlots)
	assert.Equal(t, 94, result.Stats.GlobalAvailabilityPercentage)

	require.Len(t, result.DateStats, 4)
	assert.Equal(t, 3, result.DateStats[1].AvailableSlots)
	assert.Equal(t, 75, result.DateStats[1].AvailabilityPercentage)
}

func TestCompute_MultiDayReservationWithWeekdayFilter(t *testing.T) {
	// Бронирование на две недели только по средам, 10:00
	reservation := &domain.Reservation{
		SubScenarioID: 1,
		InitialDate:   monday,
		FinalDate:     ptr.Ptr(monday.AddDays(13)),
		WeekDays:      []int{3},
		Hours:         []int{10},
		State:         domain.StatePending,
	}
	cfg := domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, FinalDate: ptr.Ptr(monday.AddDays(6))}

	result, err := Compute(cfg, hours8to12, []*domain.Reservation{reservation}, DefaultOptions())

	require.NoError(t, err)
	assert.Len(t, result.CalculatedDates, 7)
	assert.False(t, slotFor(t, result, monday.AddDays(2), 10).IsAvailable)
	assert.True(t, slotFor(t, result, monday.AddDays(3), 10).IsAvailable)
	assert.Equal(t, 27, result.Stats.AvailableSlots)
}

func TestCompute_EmptyCalculatedDatesIsNotAnError(t *testing.T) {
	// Понедельник-вторник, фильтр только по субботам
	cfg := domain.AvailabilityConfiguration{
		SubScenarioID: 1,
		InitialDate:   monday,
		FinalDate:     ptr.Ptr(monday.AddDays(1)),
		WeekDays:      []int{6},
	}

	result, err := Compute(cfg, hours8to12, nil, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, result.CalculatedDates)
	assert.NotNil(t, result.TimeSlots)
	assert.Empty(t, result.TimeSlots)
	assert.Equal(t, 0, result.Stats.TotalSlots)
	assert.Equal(t, 0, result.Stats.GlobalAvailabilityPercentage)
}

func TestCompute_InvalidOperatingHoursYieldEmptyGrid(t *testing.T) {
	result, err := Compute(singleDay(monday), domain.OperatingHours{OpenHour: 12, CloseHour: 8}, nil, DefaultOptions())

	require.NoError(t, err)
	assert.Empty(t, result.TimeSlots)
	assert.Equal(t, 0, result.Stats.GlobalAvailabilityPercentage)
}

func TestCompute_StatsInvariant(t *testing.T) {
	reservations := []*domain.Reservation{
		reservationAt(domain.StateConfirmed, monday, 8, 9, 10, 11),
		reservationAt(domain.StatePending, monday.AddDays(1), 8),
		reservationAt(domain.StateCancelled, monday.AddDays(2), 9),
	}

	for days := 0; days < 10; days++ {
		for _, weekDays := range [][]int{nil, {1}, {0, 6}, {1, 2, 3}} {
			cfg := domain.AvailabilityConfiguration{
				SubScenarioID: 1,
				InitialDate:   monday,
				FinalDate:     ptr.Ptr(monday.AddDays(days)),
				WeekDays:      weekDays,
			}

			result, err := Compute(cfg, hours8to12, reservations, DefaultOptions())
			require.NoError(t, err)

			assert.LessOrEqual(t, result.Stats.AvailableSlots, result.Stats.TotalSlots)
			assert.GreaterOrEqual(t, result.Stats.GlobalAvailabilityPercentage, 0)
			assert.LessOrEqual(t, result.Stats.GlobalAvailabilityPercentage, 100)
			assert.Len(t, result.TimeSlots, result.Stats.TotalSlots)
		}
	}
}

func TestCompute_Rounding(t *testing.T) {
	// Свободен 1 слот из 8 = 12.5%
	twoDays := reservationAt(domain.StateConfirmed, monday, 8, 9, 10)
	twoDays.FinalDate = ptr.Ptr(monday.AddDays(1))
	mondayOnly := reservationAt(domain.StatePending, monday, 11)
	reservations := []*domain.Reservation{twoDays, mondayOnly}
	cfg := domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, FinalDate: ptr.Ptr(monday.AddDays(1))}

	tests := []struct {
		mode     domain.RoundingMode
		expected int
	}{
		{mode: domain.RoundHalfUp, expected: 13},
		{mode: domain.RoundFloor, expected: 12},
		{mode: domain.RoundCeil, expected: 13},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Rounding = tt.mode

			result, err := Compute(cfg, hours8to12, reservations, opts)

			require.NoError(t, err)
			assert.Equal(t, 1, result.Stats.AvailableSlots)
			assert.Equal(t, tt.expected, result.Stats.GlobalAvailabilityPercentage)
		})
	}

	// 1 из 3 = 33.3%
	three := domain.OperatingHours{OpenHour: 8, CloseHour: 11}
	occupied := reservationAt(domain.StateConfirmed, monday, 8, 9)
	for mode, expected := range map[domain.RoundingMode]int{domain.RoundHalfUp: 33, domain.RoundFloor: 33, domain.RoundCeil: 34} {
		opts := DefaultOptions()
		opts.Rounding = mode

		result, err := Compute(singleDay(monday), three, []*domain.Reservation{occupied}, opts)

		require.NoError(t, err)
		assert.Equal(t, expected, result.Stats.GlobalAvailabilityPercentage, string(mode))
	}
}

func TestCompute_Validation(t *testing.T) {
	tests := []struct {
		name  string
		cfg   domain.AvailabilityConfiguration
		field string
	}{
		{
			name:  "non positive sub-scenario",
			cfg:   domain.AvailabilityConfiguration{SubScenarioID: 0, InitialDate: monday},
			field: "subScenarioId",
		},
		{
			name:  "missing initial date",
			cfg:   domain.AvailabilityConfiguration{SubScenarioID: 1},
			field: "initialDate",
		},
		{
			name:  "final before initial",
			cfg:   domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, FinalDate: ptr.Ptr(monday.AddDays(-1))},
			field: "finalDate",
		},
		{
			name:  "weekday out of range",
			cfg:   domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, WeekDays: []int{1, 7}},
			field: "weekdays",
		},
		{
			name:  "negative weekday",
			cfg:   domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, WeekDays: []int{-1}},
			field: "weekdays",
		},
		{
			name:  "range too long",
			cfg:   domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, FinalDate: ptr.Ptr(monday.AddDays(366))},
			field: "finalDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.cfg, hours8to12, nil, DefaultOptions())

			assert.Nil(t, result)
			assert.True(t, errors.Is(err, domain.ErrValidation))

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCompute_MaxRangeIsInclusive(t *testing.T) {
	cfg := domain.AvailabilityConfiguration{SubScenarioID: 1, InitialDate: monday, FinalDate: ptr.Ptr(monday.AddDays(365))}

	result, err := Compute(cfg, hours8to12, nil, DefaultOptions())

	require.NoError(t, err)
	assert.Len(t, result.CalculatedDates, 366)
}

func TestParseRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg, err := ParseRequest(&Request{SubScenarioID: 3, InitialDate: "2024-06-03", FinalDate: "2024-06-30", WeekDays: "5, 1,1"})

		require.NoError(t, err)
		assert.Equal(t, int64(3), cfg.SubScenarioID)
		assert.Equal(t, monday, cfg.InitialDate)
		require.NotNil(t, cfg.FinalDate)
		assert.Equal(t, "2024-06-30", cfg.FinalDate.String())
		assert.Equal(t, []int{1, 5}, cfg.WeekDays)
	})

	tests := []struct {
		name  string
		req   Request
		field string
	}{
		{name: "missing initial", req: Request{SubScenarioID: 1}, field: "initialDate"},
		{name: "bad initial", req: Request{SubScenarioID: 1, InitialDate: "2024-02-30"}, field: "initialDate"},
		{name: "bad final", req: Request{SubScenarioID: 1, InitialDate: "2024-06-03", FinalDate: "tomorrow"}, field: "finalDate"},
		{name: "bad weekday", req: Request{SubScenarioID: 1, InitialDate: "2024-06-03", WeekDays: "1,x"}, field: "weekdays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(&tt.req)

			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}
