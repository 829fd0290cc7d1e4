package exportservice

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Форматы выгрузки
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// StartExportRequest тело запроса на запуск экспорта
type StartExportRequest struct {
	Format  string        `json:"format"`
	Filters ExportFilters `json:"filters"`
}

// ExportFilters фильтры выгружаемых бронирований
type ExportFilters struct {
	SubScenarioID *int64  `json:"subScenarioId,omitempty"`
	UserID        *int64  `json:"userId,omitempty"`
	StateIDs      []int64 `json:"stateIds,omitempty"`
	From          *string `json:"from,omitempty"` // YYYY-MM-DD
	To            *string `json:"to,omitempty"`   // YYYY-MM-DD
}

// StartExportResponse ответ на запуск экспорта
type StartExportResponse struct {
	JobID string `json:"jobId"`
}

// JobStatus модель статуса задачи из сервиса экспорта
type JobStatus struct {
	JobID         string     `json:"jobId"`
	Status        string     `json:"status"`
	Progress      *int       `json:"progress,omitempty"`
	DownloadURL   *string    `json:"downloadUrl,omitempty"`
	FileName      *string    `json:"fileName,omitempty"`
	Error         *string    `json:"error,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	EstimatedTime *int       `json:"estimatedTime,omitempty"` // секунды
}

// ToDomain конвертирует статус в domain.ExportJob
func (s *JobStatus) ToDomain() *domain.ExportJob {
	job := &domain.ExportJob{
		ID:            s.JobID,
		Status:        domain.ExportJobStatus(s.Status),
		Progress:      s.Progress,
		DownloadURL:   s.DownloadURL,
		FileName:      s.FileName,
		Error:         s.Error,
		EstimatedTime: s.EstimatedTime,
	}
	if s.CreatedAt != nil {
		job.CreatedAt = *s.CreatedAt
	}
	return job
}

// DownloadResponse ответ со ссылкой на файл
type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
}

// ErrorResponse модель ошибки от сервиса экспорта
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
