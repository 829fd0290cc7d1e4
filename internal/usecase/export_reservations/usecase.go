package export_reservations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/exportservice"
	"github.com/m04kA/SMC-ReservationService/internal/jobpoller"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case выгрузки бронирований через внешний сервис экспорта
type UseCase struct {
	client  ExportClient
	cfg     jobpoller.Config
	metrics MetricsRecorder
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client ExportClient, cfg jobpoller.Config, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		client:  client,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute запускает выгрузку и ждет её завершения.
//   - завершена: Response со ссылкой на файл
//   - провалена: *jobpoller.JobFailedError
//   - не успела: *jobpoller.TimedOutError (задача продолжает выполняться во внешней системе)
//   - запрос отменен: ErrCancelled
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExportReservations: format=%s", req.Format)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExportReservations: validation failed: %v", err)
		return nil, err
	}

	filters := toExportFilters(req.Filters)

	poller := jobpoller.New(uc.cfg, jobpoller.Funcs{
		Start: func(ctx context.Context) (string, error) {
			return uc.client.StartExportJob(ctx, req.Format, filters)
		},
		Status:   uc.client.GetExportJobStatus,
		Download: uc.client.GetExportDownloadURL,
	}, uc.metrics, uc.logger)

	result, err := poller.Run(ctx)
	if err != nil {
		return nil, err
	}

	if result.State == jobpoller.StateCancelled {
		uc.logger.Warn("ExportReservations: job=%s waiting cancelled", result.JobID)
		return nil, fmt.Errorf("%w: job=%s", ErrCancelled, result.JobID)
	}

	download, err := poller.Download(ctx)
	if err != nil {
		uc.logger.Error("ExportReservations: job=%s completed, download unavailable: %v", result.JobID, err)
		return nil, fmt.Errorf("%w: job=%s: %v", ErrInternal, result.JobID, err)
	}

	uc.logger.Info("ExportReservations: job=%s ready, file=%s", result.JobID, download.FileName)

	return &Response{
		JobID:    result.JobID,
		Job:      result.Job,
		Download: download,
	}, nil
}

func validateRequest(req *Request) error {
	if err := domain.ValidateStruct(req); err != nil {
		return err
	}

	f := req.Filters
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return &domain.ValidationError{Field: "to", Message: "must not be before from"}
	}

	return nil
}

func toExportFilters(f Filters) exportservice.ExportFilters {
	filters := exportservice.ExportFilters{
		SubScenarioID: f.SubScenarioID,
		UserID:        f.UserID,
		StateIDs:      f.StateIDs,
	}
	if f.From != nil {
		filters.From = ptr.Ptr(f.From.String())
	}
	if f.To != nil {
		filters.To = ptr.Ptr(f.To.String())
	}
	return filters
}
