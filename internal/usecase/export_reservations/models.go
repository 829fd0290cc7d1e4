package export_reservations

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на выгрузку бронирований
type Request struct {
	Format  string  `json:"format" validate:"required,oneof=csv xlsx"`
	Filters Filters `json:"filters"`
}

// Filters фильтры выгрузки
type Filters struct {
	SubScenarioID *int64      `json:"subScenarioId" validate:"omitempty,gt=0"`
	UserID        *int64      `json:"userId" validate:"omitempty,gte=0"`
	StateIDs      []int64     `json:"stateIds" validate:"omitempty,dive,min=1,max=5"`
	From          *types.Date `json:"from" validate:"-"`
	To            *types.Date `json:"to" validate:"-"`
}

// Response результат выгрузки
type Response struct {
	JobID    string
	Job      *domain.ExportJob
	Download *domain.ExportDownload
}
