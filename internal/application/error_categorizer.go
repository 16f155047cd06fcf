package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/fornello/payment-service/internal/infrastructure/paypal"
)

// ErrorCategory represents the nature of an error for logging and alerting
type ErrorCategory string

const (
	CategoryTransient     ErrorCategory = "TRANSIENT"
	CategoryPermanent     ErrorCategory = "PERMANENT"
	CategoryClientError   ErrorCategory = "CLIENT_ERROR"
	CategoryGateway       ErrorCategory = "GATEWAY"
	CategoryConfiguration ErrorCategory = "CONFIGURATION"
)

// CategorizeError determines error category. By the time an error escapes an
// orchestrator the retry budget is spent, so TRANSIENT here means "was
// transient upstream" - the caller never has to keep waiting.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, paypal.ErrGatewayTimeout) ||
		errors.Is(err, paypal.ErrRetriesExhausted) {
		return CategoryTransient
	}

	if errors.Is(err, paypal.ErrMissingCredentials) {
		return CategoryConfiguration
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeValidation:
			return CategoryClientError
		case ErrCodeConfiguration:
			return CategoryConfiguration
		case ErrCodeAuth, ErrCodeOrderCreation, ErrCodeCapture:
			return CategoryGateway
		}
	}

	if apiErr, ok := paypal.IsAPIError(err); ok {
		if apiErr.Retryable() {
			return CategoryTransient
		}
		return CategoryPermanent
	}

	return CategoryGateway
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return ErrCodeInternal
}

// UserFacingMessage is what checkout shows the end user. Raw upstream bodies
// never leave the server; pick a generic line per terminal error kind.
func UserFacingMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, paypal.ErrGatewayTimeout) {
		return "PayPal service timed out. Please try again."
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Code {
		case ErrCodeValidation:
			return svcErr.Message
		case ErrCodeAuth:
			return "Unable to authenticate with PayPal."
		}
	}

	return "PayPal payment is temporarily unavailable."
}
