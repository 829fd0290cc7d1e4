package exportservice

import "errors"

var (
	// ErrJobNotFound возвращается, когда задача экспорта не найдена
	ErrJobNotFound = errors.New("exportservice client: job not found")

	// ErrNotReady возвращается, когда результат задачи еще не готов к скачиванию
	ErrNotReady = errors.New("exportservice client: export is not ready")

	// ErrBadRequest возвращается, когда сервис экспорта отклонил параметры задачи
	ErrBadRequest = errors.New("exportservice client: bad request")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("exportservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("exportservice client: invalid response")
)
