package export_reservations

import "errors"

var (
	// ErrCancelled возвращается, когда ожидание прервано клиентом
	ErrCancelled = errors.New("export_reservations: cancelled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("export_reservations: internal error")
)
