package application

import (
	"errors"
	"fmt"
	"net/http"
)

// APPLICATION-LEVEL ERRORS (Orchestration)

type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeAuth          = "PAYPAL_AUTH_FAILED"
	ErrCodeOrderCreation = "PAYPAL_ORDER_CREATION_FAILED"
	ErrCodeCapture       = "PAYPAL_CAPTURE_FAILED"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// NewValidationError covers malformed caller input. These never reach the
// gateway.
func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewConfigurationError covers missing credentials or similar deployment
// problems. These fail fast, before any network activity.
func NewConfigurationError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeConfiguration,
		Message:    "payment gateway is not configured",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewAuthError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeAuth,
		Message:    "failed to authenticate with payment gateway",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewOrderCreationError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeOrderCreation,
		Message:    "failed to create gateway order",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewCaptureError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeCapture,
		Message:    "failed to capture gateway order",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
