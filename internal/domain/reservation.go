package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationState статус бронирования. Значения совпадают с state_id в БД
type ReservationState int64

const (
	StatePending   ReservationState = 1
	StateConfirmed ReservationState = 2
	StateRejected  ReservationState = 3
	StateCancelled ReservationState = 4
	StateCompleted ReservationState = 5
)

// AllStates список всех известных статусов
var AllStates = []ReservationState{
	StatePending,
	StateConfirmed,
	StateRejected,
	StateCancelled,
	StateCompleted,
}

// BlockingStates статусы, в которых бронирование занимает слот
var BlockingStates = []ReservationState{
	StatePending,
	StateConfirmed,
}

// ParseReservationState проверяет, что id соответствует известному статусу
func ParseReservationState(id int64) (ReservationState, error) {
	s := ReservationState(id)
	if !s.IsValid() {
		return 0, &ValidationError{Field: "stateId", Message: "unknown reservation state"}
	}
	return s, nil
}

// IsValid проверяет, что статус входит в закрытый набор
func (s ReservationState) IsValid() bool {
	for _, known := range AllStates {
		if s == known {
			return true
		}
	}
	return false
}

// IsBlocking возвращает true, если бронирование в этом статусе занимает слот
func (s ReservationState) IsBlocking() bool {
	return s == StatePending || s == StateConfirmed
}

// IsTerminal возвращает true, если из статуса нет переходов
func (s ReservationState) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// String возвращает имя статуса для логов и метрик
func (s ReservationState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConfirmed:
		return "confirmed"
	case StateRejected:
		return "rejected"
	case StateCancelled:
		return "cancelled"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Reservation бронирование подсценария.
// Бронирование покрывает даты от InitialDate до FinalDate включительно
// (только InitialDate, если FinalDate не задана), отфильтрованные по WeekDays,
// и занимает часы Hours в каждую из этих дат.
type Reservation struct {
	ID            int64
	SubScenarioID int64
	UserID        int64
	InitialDate   types.Date
	FinalDate     *types.Date
	WeekDays      []int // 0 = воскресенье; пусто = все дни
	Hours         []int // Часы начала занятых слотов
	State         ReservationState
	GroupID       *int64 // Общий идентификатор для брони на несколько дат

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LastDate возвращает последнюю дату бронирования
func (r *Reservation) LastDate() types.Date {
	if r.FinalDate != nil {
		return *r.FinalDate
	}
	return r.InitialDate
}

// IsBlocking возвращает true, если бронирование занимает слоты
func (r *Reservation) IsBlocking() bool {
	return r.State.IsBlocking()
}

// CoversDate проверяет, что бронирование действует в указанную дату
func (r *Reservation) CoversDate(date types.Date) bool {
	if !date.Between(r.InitialDate, r.LastDate()) {
		return false
	}
	if len(r.WeekDays) == 0 {
		return true
	}
	weekday := date.Weekday()
	for _, wd := range r.WeekDays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// Occupies проверяет, что бронирование занимает час hour в дату date
func (r *Reservation) Occupies(date types.Date, hour int) bool {
	if !r.CoversDate(date) {
		return false
	}
	for _, h := range r.Hours {
		if h == hour {
			return true
		}
	}
	return false
}

// Dates возвращает все даты, в которые действует бронирование
func (r *Reservation) Dates() []types.Date {
	last := r.LastDate()
	dates := make([]types.Date, 0, r.InitialDate.DaysUntil(last)+1)
	for d := r.InitialDate; !d.After(last); d = d.AddDays(1) {
		if r.CoversDate(d) {
			dates = append(dates, d)
		}
	}
	return dates
}

// Mutation измерения кэша, затронутые изменением бронирования
func (r *Reservation) Mutation() Mutation {
	subScenarioID := r.SubScenarioID
	userID := r.UserID
	return Mutation{
		SubScenarioID: &subScenarioID,
		UserID:        &userID,
		DateKeys:      r.Dates(),
	}
}

// Mutation описание изменения, по которому вычисляются теги кэша
type Mutation struct {
	SubScenarioID *int64
	UserID        *int64
	DateKeys      []types.Date
	Dashboard     bool // Изменение видно в агрегированном представлении всех пользователей
}

// ReservationsFilter фильтр выборки бронирований подсценария
type ReservationsFilter struct {
	SubScenarioID int64              // Обязательный параметр
	From          types.Date         // Начало периода
	To            types.Date         // Конец периода
	States        []ReservationState // Пусто = все статусы
}
