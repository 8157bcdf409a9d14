package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidDebtParameters = errors.New("invalid debt parameters")
	ErrDebtNotFound          = errors.New("debt not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrActivityNotFound      = errors.New("activity not found")
	ErrInvalidActivity       = errors.New("invalid activity")
	ErrInvalidCurrency       = errors.New("invalid currency")
	ErrValidation            = errors.New("validation failed")
	ErrUnauthorized          = errors.New("unauthorized")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidDebtParameters = "INVALID_DEBT_PARAMETERS"
	ErrCodeDebtNotFound          = "DEBT_NOT_FOUND"
	ErrCodeContactNotFound       = "CONTACT_NOT_FOUND"
	ErrCodeActivityNotFound      = "ACTIVITY_NOT_FOUND"
	ErrCodeInvalidActivity       = "INVALID_ACTIVITY"
	ErrCodeInvalidCurrency       = "INVALID_CURRENCY"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// Code returns the BusinessError code carried by err, or "" if there is none.
func Code(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Wrap common errors with business context
func WrapInvalidDebtParameters(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDebtParameters,
		reason,
		ErrInvalidDebtParameters,
	)
}

func WrapDebtNotFound(debtID string) *BusinessError {
	return NewBusinessError(
		ErrCodeDebtNotFound,
		fmt.Sprintf("Debt with ID %s not found", debtID),
		ErrDebtNotFound,
	)
}

func WrapContactNotFound(contactID string) *BusinessError {
	return NewBusinessError(
		ErrCodeContactNotFound,
		fmt.Sprintf("Contact with ID %s not found", contactID),
		ErrContactNotFound,
	)
}

func WrapActivityNotFound(activityID string) *BusinessError {
	return NewBusinessError(
		ErrCodeActivityNotFound,
		fmt.Sprintf("Activity with ID %s not found", activityID),
		ErrActivityNotFound,
	)
}

func WrapInvalidActivity(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidActivity,
		reason,
		ErrInvalidActivity,
	)
}

func WrapInvalidCurrency(code string, err error) *BusinessError {
	if err == nil {
		err = ErrInvalidCurrency
	}
	return NewBusinessError(
		ErrCodeInvalidCurrency,
		fmt.Sprintf("Currency %q is not supported", code),
		err,
	)
}

func WrapValidation(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		"request validation failed",
		err,
	)
}

func WrapUnauthorized(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeUnauthorized,
		reason,
		ErrUnauthorized,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
