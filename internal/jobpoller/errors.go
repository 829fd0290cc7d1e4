package jobpoller

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrJobStart задачу не удалось запустить
	ErrJobStart = errors.New("jobpoller: failed to start job")

	// ErrJobFailed внешняя система сообщила о провале задачи
	ErrJobFailed = errors.New("jobpoller: job failed")

	// ErrTimedOut задача не завершилась за отведённое число опросов
	ErrTimedOut = errors.New("jobpoller: job timed out")

	// ErrAlreadyStarted повторный запуск того же поллера
	ErrAlreadyStarted = errors.New("jobpoller: poller already started")

	// ErrNotCompleted скачивание запрошено до завершения задачи
	ErrNotCompleted = errors.New("jobpoller: job is not completed")

	// ErrEmptyStatus опрос статуса вернул пустой ответ без ошибки
	ErrEmptyStatus = errors.New("jobpoller: empty job status")

	// ErrNoDownload у задачи нет ссылки на результат
	ErrNoDownload = errors.New("jobpoller: download is not available")
)

// JobStartError ошибка запуска: вызов вернул ошибку или пустой идентификатор
type JobStartError struct {
	Err error
}

func (e *JobStartError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: empty job id", ErrJobStart)
	}
	return fmt.Sprintf("%s: %v", ErrJobStart, e.Err)
}

func (e *JobStartError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrJobStart}
	}
	return []error{ErrJobStart, e.Err}
}

// JobFailedError задача завершилась со статусом failed
type JobFailedError struct {
	Job *domain.ExportJob
}

func (e *JobFailedError) Error() string {
	reason := "unknown reason"
	if e.Job != nil && e.Job.Error != nil {
		reason = *e.Job.Error
	}
	return fmt.Sprintf("%s: %s", ErrJobFailed, reason)
}

func (e *JobFailedError) Unwrap() error {
	return ErrJobFailed
}

// TimedOutError исчерпаны попытки опроса. LastJob хранит последнее известное состояние задачи
type TimedOutError struct {
	JobID    string
	Attempts int
	LastJob  *domain.ExportJob
	LastErr  error
}

func (e *TimedOutError) Error() string {
	status := "unknown"
	if e.LastJob != nil {
		status = string(e.LastJob.Status)
	}
	return fmt.Sprintf("%s: job=%s after %d attempts, last status=%s", ErrTimedOut, e.JobID, e.Attempts, status)
}

func (e *TimedOutError) Unwrap() error {
	return ErrTimedOut
}
