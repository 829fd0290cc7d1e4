package domain

// BulkItemError ошибка обработки одного бронирования в пакетной операции
type BulkItemError struct {
	ReservationID int64
	Err           error
}

// BulkUpdateResult результат пакетной смены статуса.
// UpdatedCount всегда равен len(Data); Success = true только при отсутствии ошибок.
type BulkUpdateResult struct {
	Success      bool
	UpdatedCount int
	Data         []*Reservation
	Errors       []BulkItemError
}

// AddSuccess фиксирует успешно обновленное бронирование
func (r *BulkUpdateResult) AddSuccess(reservation *Reservation) {
	r.Data = append(r.Data, reservation)
	r.UpdatedCount = len(r.Data)
}

// AddError фиксирует ошибку по конкретному бронированию
func (r *BulkUpdateResult) AddError(reservationID int64, err error) {
	r.Errors = append(r.Errors, BulkItemError{ReservationID: reservationID, Err: err})
}

// Finalize выставляет флаг Success по накопленным ошибкам
func (r *BulkUpdateResult) Finalize() {
	r.UpdatedCount = len(r.Data)
	r.Success = len(r.Errors) == 0
}
