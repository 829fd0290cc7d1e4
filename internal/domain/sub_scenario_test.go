package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestGenerateSlotGrid(t *testing.T) {
	date := types.MustParseDate("2024-06-03")

	tests := []struct {
		name  string
		hours OperatingHours
		want  []int
	}{
		{name: "morning block", hours: OperatingHours{OpenHour: 9, CloseHour: 12}, want: []int{9, 10, 11}},
		{name: "whole day", hours: OperatingHours{OpenHour: 0, CloseHour: 24}, want: func() []int {
			all := make([]int, 24)
			for i := range all {
				all[i] = i
			}
			return all
		}()},
		{name: "single hour", hours: OperatingHours{OpenHour: 22, CloseHour: 23}, want: []int{22}},
		{name: "closed", hours: OperatingHours{OpenHour: 10, CloseHour: 10}, want: []int{}},
		{name: "inverted", hours: OperatingHours{OpenHour: 12, CloseHour: 9}, want: []int{}},
		{name: "out of range", hours: OperatingHours{OpenHour: -1, CloseHour: 25}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlotGrid(tt.hours, date))
		})
	}
}

func TestGenerateSlotGrid_Deterministic(t *testing.T) {
	hours := OperatingHours{OpenHour: 6, CloseHour: 22}
	date := types.MustParseDate("2024-06-03")

	assert.Equal(t, GenerateSlotGrid(hours, date), GenerateSlotGrid(hours, date))
}

func TestRoundingMode_Percentage(t *testing.T) {
	tests := []struct {
		mode        RoundingMode
		part, total int
		want        int
	}{
		{RoundHalfUp, 2, 3, 67},
		{RoundHalfUp, 1, 3, 33},
		{RoundHalfUp, 1, 8, 13}, // 12.5
		{RoundHalfUp, 0, 0, 0},
		{RoundHalfUp, 5, 5, 100},
		{RoundFloor, 2, 3, 66},
		{RoundCeil, 1, 3, 34},
		{RoundCeil, 0, 3, 0},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, tt.mode.Percentage(tt.part, tt.total), "%s %d/%d", tt.mode, tt.part, tt.total)
	}
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := ParseRoundingMode("")
	assert.NoError(t, err)
	assert.Equal(t, RoundHalfUp, mode)

	_, err = ParseRoundingMode("bankers")
	assert.Error(t, err)
}
