package domain

// Значения по умолчанию
const (
	DefaultMaxRangeDays    = 366
	DefaultCacheTTLSeconds = 300
	SlotDurationMinutes    = 60 // Слот всегда равен одному часу
)

// Бизнес-ограничения
const (
	MinWeekday         = 0 // Воскресенье
	MaxWeekday         = 6 // Суббота
	MinHour            = 0
	MaxHour            = 24
	MaxBulkIDs         = 200
	MaxHoursPerBooking = 24
)

// DateFormat формат календарной даты во входных параметрах (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// Теги кэша, которые инвалидируются при любой мутации
const (
	TagReservations = "reservations"
	TagTimeSlots    = "timeslots"
)

// DashboardUserID идентификатор "всех пользователей" для агрегированного представления
const DashboardUserID int64 = 0
