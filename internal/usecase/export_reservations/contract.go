package export_reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/exportservice"
)

// ExportClient клиент внешнего сервиса экспорта
type ExportClient interface {
	StartExportJob(ctx context.Context, format string, filters exportservice.ExportFilters) (string, error)
	GetExportJobStatus(ctx context.Context, jobID string) (*domain.ExportJob, error)
	GetExportDownloadURL(ctx context.Context, jobID string) (*domain.ExportDownload, error)
}

// MetricsRecorder счетчик опросов статуса
type MetricsRecorder interface {
	IncJobPoll(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
