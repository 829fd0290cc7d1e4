package jobpoller

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// StartFunc запускает задачу во внешней системе и возвращает её идентификатор
type StartFunc func(ctx context.Context) (string, error)

// StatusFunc возвращает текущее состояние задачи
type StatusFunc func(ctx context.Context, jobID string) (*domain.ExportJob, error)

// DownloadFunc возвращает ссылку на результат завершённой задачи
type DownloadFunc func(ctx context.Context, jobID string) (*domain.ExportDownload, error)

// MetricsRecorder счётчик опросов статуса
type MetricsRecorder interface {
	IncJobPoll(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
