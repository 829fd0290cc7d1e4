package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation базовая ошибка некорректных входных данных
	ErrValidation = errors.New("validation error")

	// ErrNotFound базовая ошибка отсутствующей сущности
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition базовая ошибка недопустимого перехода статуса
	ErrInvalidTransition = errors.New("invalid state transition")
)

// ValidationError ошибка валидации конкретного поля
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Message)
}

// Unwrap позволяет сравнивать через errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError сущность с указанным идентификатором отсутствует
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s id=%d %s", e.Entity, e.ID, ErrNotFound)
}

// Unwrap позволяет сравнивать через errors.Is(err, ErrNotFound)
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// InvalidTransitionError переход (From, To) отсутствует в графе статусов
type InvalidTransitionError struct {
	ReservationID int64
	From          ReservationState
	To            ReservationState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: reservation id=%d cannot move from %s to %s",
		ErrInvalidTransition, e.ReservationID, e.From, e.To)
}

// Unwrap позволяет сравнивать через errors.Is(err, ErrInvalidTransition)
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
