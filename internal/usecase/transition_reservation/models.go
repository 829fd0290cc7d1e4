package transition_reservation

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	ReservationID int64
	StateID       int64 // Целевой статус
}

// Response результат смены статуса
type Response struct {
	Reservation   *domain.Reservation     // Бронирование после перехода
	PreviousState domain.ReservationState // Статус до перехода
	Mutation      domain.Mutation         // Измерения кэша, затронутые переходом

	// FreedAvailability true, если бронирование перестало занимать слоты.
	// Доступность не пересчитывается автоматически: кэш нужно сбросить и запросить заново.
	FreedAvailability bool
}
