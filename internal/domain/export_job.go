package domain

import "time"

// ExportJobStatus статус задачи экспорта во внешней системе
type ExportJobStatus string

const (
	ExportJobPending    ExportJobStatus = "pending"
	ExportJobProcessing ExportJobStatus = "processing"
	ExportJobCompleted  ExportJobStatus = "completed"
	ExportJobFailed     ExportJobStatus = "failed"
)

// IsTerminal возвращает true для completed и failed
func (s ExportJobStatus) IsTerminal() bool {
	return s == ExportJobCompleted || s == ExportJobFailed
}

// IsKnown проверяет, что статус входит в известный набор
func (s ExportJobStatus) IsKnown() bool {
	switch s {
	case ExportJobPending, ExportJobProcessing, ExportJobCompleted, ExportJobFailed:
		return true
	default:
		return false
	}
}

// ExportJob задача экспорта. Статус меняет только внешняя система, клиент лишь опрашивает его
type ExportJob struct {
	ID            string
	Status        ExportJobStatus
	Progress      *int // 0-100
	DownloadURL   *string
	FileName      *string
	Error         *string
	CreatedAt     time.Time
	EstimatedTime *int // Секунд до завершения, если внешняя система его сообщает
}

// ExportDownload ссылка на готовый файл экспорта
type ExportDownload struct {
	URL      string
	FileName string
}
