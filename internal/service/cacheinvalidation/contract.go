package cacheinvalidation

import "context"

// Invalidator граница кэша: сбрасывает всё, что помечено тегом
type Invalidator interface {
	Invalidate(ctx context.Context, tag string) error
}

// MetricsRecorder счётчик инвалидаций
type MetricsRecorder interface {
	IncCacheInvalidation(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
