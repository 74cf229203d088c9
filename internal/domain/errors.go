package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Is matches any AppError carrying the same code, so errors.Is works
// against the pre-defined values after WithError copied them.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pre-defined errors. Every failure of the comparison itself is reported
// as 500; only malformed requests get a 4xx.
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "Face could not be detected in one of the images",
		StatusCode: 500,
	}

	ErrStorage = &AppError{
		Code:       "STORAGE_ERROR",
		Message:    "Temporary image storage failed",
		StatusCode: 500,
	}

	ErrProvider = &AppError{
		Code:       "PROVIDER_ERROR",
		Message:    "Face verification provider failed",
		StatusCode: 500,
	}

	ErrTimeout = &AppError{
		Code:       "TIMEOUT",
		Message:    "Face comparison timed out",
		StatusCode: 500,
	}
)
