package reservation

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func toInt64s(values []int) []int64 {
	result := make([]int64, len(values))
	for i, v := range values {
		result[i] = int64(v)
	}
	return result
}

func toInts(values []int64) []int {
	result := make([]int, len(values))
	for i, v := range values {
		result[i] = int(v)
	}
	return result
}

func statesToInt64s(states []domain.ReservationState) []int64 {
	result := make([]int64, len(states))
	for i, s := range states {
		result[i] = int64(s)
	}
	return result
}

func dateOf(t time.Time) types.Date {
	return types.DateOf(t)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
