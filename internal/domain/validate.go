package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()

	// В сообщениях используем имена полей из JSON, как их видит клиент
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	return v
}

// ValidateStruct проверяет validate-теги структуры и возвращает первую ошибку как *ValidationError
func ValidateStruct(s interface{}) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return translateFieldError(validationErrs[0])
}

func translateFieldError(fe validator.FieldError) *ValidationError {
	// WeekDays[3] -> weekdays
	field := fe.Field()
	if idx := strings.IndexByte(field, '['); idx > 0 {
		field = field[:idx]
	}

	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "gt":
		message = fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		message = fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		message = fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		message = fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		message = fmt.Sprintf("failed on %q rule", fe.Tag())
	}

	return &ValidationError{Field: field, Message: message}
}
