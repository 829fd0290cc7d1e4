package create_reservation

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда хотя бы один запрошенный час уже занят
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrConcurrentUpdate возвращается, когда параллельные брони не дали зафиксировать транзакцию
	ErrConcurrentUpdate = errors.New("create_reservation: concurrent update, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
