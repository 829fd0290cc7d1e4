package create_reservation

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64       `json:"userId" validate:"gt=0"`
	SubScenarioID int64       `json:"subScenarioId" validate:"gt=0"`
	InitialDate   types.Date  `json:"initialDate" validate:"-"`
	FinalDate     *types.Date `json:"finalDate" validate:"-"`                               // Опционально, для брони на несколько дат
	WeekDays      []int       `json:"weekdays" validate:"omitempty,max=7,dive,min=0,max=6"` // Пусто = все дни периода
	Hours         []int       `json:"hours" validate:"required,min=1,max=24,dive,min=0,max=23"`
	GroupID       *int64      `json:"groupId" validate:"omitempty,gt=0"`
}

// Options параметры создания
type Options struct {
	MaxRangeDays int
}
