package jobpoller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// State состояние поллера
type State string

const (
	StateNotStarted State = "not_started"
	StateStarting   State = "starting"
	StatePolling    State = "polling"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
	StateTimedOut   State = "timed_out"
	StateCancelled  State = "cancelled"
)

// IsTerminal возвращает true для конечных состояний
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateTimedOut, StateCancelled:
		return true
	default:
		return false
	}
}

const (
	DefaultInterval    = 3 * time.Second
	DefaultMaxAttempts = 20
)

// Config параметры опроса
type Config struct {
	Interval    time.Duration
	MaxAttempts int
}

// DefaultConfig интервал 3 секунды, 20 попыток (~60 секунд)
func DefaultConfig() Config {
	return Config{Interval: DefaultInterval, MaxAttempts: DefaultMaxAttempts}
}

// Funcs функции взаимодействия с внешней системой
type Funcs struct {
	Start    StartFunc
	Status   StatusFunc
	Download DownloadFunc // Опционально
}

// Result итог работы поллера
type Result struct {
	JobID string
	State State
	Job   *domain.ExportJob // Последнее известное состояние задачи
}

// Poller клиентский координатор "запустить задачу → опрашивать статус → скачать результат".
// Одноразовый: Run можно вызвать только один раз.
type Poller struct {
	cfg     Config
	funcs   Funcs
	metrics MetricsRecorder
	logger  Logger

	mu        sync.Mutex
	state     State
	jobID     string
	lastJob   *domain.ExportJob
	cancel    context.CancelFunc
	cancelled bool
}

// New создает поллер. Нулевые значения cfg заменяются значениями по умолчанию
func New(cfg Config, funcs Funcs, metrics MetricsRecorder, logger Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	return &Poller{
		cfg:     cfg,
		funcs:   funcs,
		metrics: metrics,
		logger:  logger,
		state:   StateNotStarted,
	}
}

// State возвращает текущее состояние
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// JobID возвращает идентификатор запущенной задачи
func (p *Poller) JobID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jobID
}

// Cancel останавливает опрос. Отмена не считается ошибкой;
// после конечного состояния вызов ничего не делает.
// Отмена до Run запоминается: Run завершится без запуска задачи.
func (p *Poller) Cancel() {
	p.mu.Lock()
	p.cancelled = true
	cancel := p.cancel
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Run запускает задачу и опрашивает её до конечного статуса.
//   - completed: Result, nil
//   - failed: Result, *JobFailedError
//   - исчерпаны попытки: Result, *TimedOutError
//   - отмена через ctx или Cancel: Result со StateCancelled, nil
func (p *Poller) Run(ctx context.Context) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.state != StateNotStarted {
		p.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	if p.cancelled {
		p.state = StateCancelled
		p.mu.Unlock()
		p.logger.Info("JobPoller: cancelled before start")
		return &Result{State: StateCancelled}, nil
	}
	p.state = StateStarting
	p.cancel = cancel
	p.mu.Unlock()

	jobID, err := p.funcs.Start(ctx)
	if err != nil && ctx.Err() != nil {
		return p.finish(StateCancelled), nil
	}
	if err != nil || jobID == "" {
		p.logger.Error("JobPoller: failed to start job: %v", err)
		p.finish(StateFailed)
		return nil, &JobStartError{Err: err}
	}

	p.mu.Lock()
	p.jobID = jobID
	p.state = StatePolling
	p.mu.Unlock()

	p.logger.Info("JobPoller: job=%s started, polling every %s up to %d attempts",
		jobID, p.cfg.Interval, p.cfg.MaxAttempts)

	return p.poll(ctx, jobID)
}

func (p *Poller) poll(ctx context.Context, jobID string) (*Result, error) {
	timer := time.NewTimer(p.cfg.Interval)
	defer timer.Stop()

	var lastErr error

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			p.logger.Info("JobPoller: job=%s polling cancelled after %d attempts", jobID, attempt-1)
			return p.finish(StateCancelled), nil
		case <-timer.C:
		}

		job, err := p.funcs.Status(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return p.finish(StateCancelled), nil
			}
			// Сбой опроса временный: попытка засчитывается, опрос продолжается
			p.logger.Warn("JobPoller: job=%s poll attempt %d/%d failed: %v", jobID, attempt, p.cfg.MaxAttempts, err)
			p.metrics.IncJobPoll("error")
			lastErr = err
			timer.Reset(p.cfg.Interval)
			continue
		}
		if job == nil {
			p.logger.Warn("JobPoller: job=%s poll attempt %d/%d returned empty status", jobID, attempt, p.cfg.MaxAttempts)
			p.metrics.IncJobPoll("error")
			lastErr = ErrEmptyStatus
			timer.Reset(p.cfg.Interval)
			continue
		}

		p.mu.Lock()
		p.lastJob = job
		p.mu.Unlock()
		p.metrics.IncJobPoll(string(job.Status))

		switch job.Status {
		case domain.ExportJobCompleted:
			p.logger.Info("JobPoller: job=%s completed after %d attempts", jobID, attempt)
			return p.finish(StateCompleted), nil

		case domain.ExportJobFailed:
			p.logger.Warn("JobPoller: job=%s reported failure after %d attempts", jobID, attempt)
			return p.finish(StateFailed), &JobFailedError{Job: job}

		case domain.ExportJobPending, domain.ExportJobProcessing:
			// Продолжаем опрос

		default:
			p.logger.Warn("JobPoller: job=%s returned unknown status=%q", jobID, job.Status)
		}

		timer.Reset(p.cfg.Interval)
	}

	result := p.finish(StateTimedOut)
	p.logger.Warn("JobPoller: job=%s timed out after %d attempts", jobID, p.cfg.MaxAttempts)

	return result, &TimedOutError{
		JobID:    jobID,
		Attempts: p.cfg.MaxAttempts,
		LastJob:  result.Job,
		LastErr:  lastErr,
	}
}

// Download возвращает ссылку на результат завершённой задачи.
// Если внешняя система уже вернула ссылку в статусе задачи, DownloadFunc не вызывается.
func (p *Poller) Download(ctx context.Context) (*domain.ExportDownload, error) {
	p.mu.Lock()
	state, jobID, job := p.state, p.jobID, p.lastJob
	p.mu.Unlock()

	if state != StateCompleted {
		return nil, fmt.Errorf("%w: state=%s", ErrNotCompleted, state)
	}

	if job != nil && job.DownloadURL != nil && *job.DownloadURL != "" {
		download := &domain.ExportDownload{URL: *job.DownloadURL}
		if job.FileName != nil {
			download.FileName = *job.FileName
		}
		return download, nil
	}

	if p.funcs.Download == nil {
		return nil, ErrNoDownload
	}

	download, err := p.funcs.Download(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("jobpoller: download job=%s: %w", jobID, err)
	}
	if download == nil || download.URL == "" {
		return nil, ErrNoDownload
	}
	return download, nil
}

func (p *Poller) finish(state State) *Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = state
	return &Result{
		JobID: p.jobID,
		State: state,
		Job:   p.lastJob,
	}
}

// IsTimeout проверяет, что задача не успела завершиться (в отличие от провала)
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimedOut)
}
