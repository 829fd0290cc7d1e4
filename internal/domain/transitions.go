package domain

// transitions ориентированный граф допустимых переходов между статусами.
// Статусы без исходящих рёбер терминальные.
var transitions = map[ReservationState][]ReservationState{
	StatePending:   {StateConfirmed, StateRejected, StateCancelled},
	StateConfirmed: {StateCancelled, StateCompleted},
	StateRejected:  nil,
	StateCancelled: nil,
	StateCompleted: nil,
}

// CanTransitionTo проверяет наличие ребра (s, target) в графе переходов
func (s ReservationState) CanTransitionTo(target ReservationState) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions возвращает статусы, в которые можно перейти из s
func (s ReservationState) AllowedTransitions() []ReservationState {
	allowed := transitions[s]
	result := make([]ReservationState, len(allowed))
	copy(result, allowed)
	return result
}

// ApplyTransition переводит бронирование в статус target.
// Возвращает копию бронирования с новым статусом или InvalidTransitionError.
func ApplyTransition(r *Reservation, target ReservationState) (*Reservation, error) {
	if !target.IsValid() {
		return nil, &ValidationError{Field: "stateId", Message: "unknown reservation state"}
	}
	if !r.State.CanTransitionTo(target) {
		return nil, &InvalidTransitionError{
			ReservationID: r.ID,
			From:          r.State,
			To:            target,
		}
	}

	updated := *r
	updated.State = target
	return &updated, nil
}

// FreesAvailability возвращает true, если переход освобождает занятые слоты
func FreesAvailability(from, to ReservationState) bool {
	return from.IsBlocking() && !to.IsBlocking()
}
