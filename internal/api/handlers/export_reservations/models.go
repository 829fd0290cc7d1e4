package export_reservations

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	exportReservations "github.com/m04kA/SMC-ReservationService/internal/usecase/export_reservations"
)

// ExportResponse HTTP response model
type ExportResponse struct {
	JobID       string  `json:"jobId"`
	Status      string  `json:"status"`
	Progress    *int    `json:"progress,omitempty"`
	DownloadURL string  `json:"downloadUrl,omitempty"`
	FileName    string  `json:"fileName,omitempty"`
	Message     string  `json:"message,omitempty"`
	Error       *string `json:"error,omitempty"`
}

// FromUseCaseResponse конвертирует готовую выгрузку в HTTP response
func FromUseCaseResponse(resp *exportReservations.Response) *ExportResponse {
	out := &ExportResponse{
		JobID:  resp.JobID,
		Status: string(domain.ExportJobCompleted),
	}
	if resp.Job != nil {
		out.Status = string(resp.Job.Status)
		out.Progress = resp.Job.Progress
	}
	if resp.Download != nil {
		out.DownloadURL = resp.Download.URL
		out.FileName = resp.Download.FileName
	}
	return out
}

// FromJob описывает незавершенную или проваленную задачу
func FromJob(jobID string, job *domain.ExportJob, message string) *ExportResponse {
	out := &ExportResponse{
		JobID:   jobID,
		Status:  string(domain.ExportJobProcessing),
		Message: message,
	}
	if job != nil {
		out.Status = string(job.Status)
		out.Progress = job.Progress
		out.Error = job.Error
	}
	return out
}
