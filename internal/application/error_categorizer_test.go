package application_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/infrastructure/paypal"
)

func TestCategorizeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want application.ErrorCategory
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, application.CategoryTransient},
		{"gateway timeout", fmt.Errorf("%w: slow upstream", paypal.ErrGatewayTimeout), application.CategoryTransient},
		{"retries exhausted", fmt.Errorf("%w: 503", paypal.ErrRetriesExhausted), application.CategoryTransient},
		{"missing creds", paypal.ErrMissingCredentials, application.CategoryConfiguration},
		{"validation", application.NewValidationError("amount too small"), application.CategoryClientError},
		{"configuration", application.NewConfigurationError(paypal.ErrMissingCredentials), application.CategoryConfiguration},
		{"auth", application.NewAuthError(errors.New("401")), application.CategoryGateway},
		{"creation", application.NewOrderCreationError(errors.New("422")), application.CategoryGateway},
		{"capture", application.NewCaptureError(errors.New("bad status")), application.CategoryGateway},
		{"api 503", &paypal.APIError{StatusCode: 503}, application.CategoryTransient},
		{"api 429", &paypal.APIError{StatusCode: 429}, application.CategoryTransient},
		{"api 404", &paypal.APIError{StatusCode: 404}, application.CategoryPermanent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, application.CategorizeError(tc.err))
		})
	}
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, application.ToHTTPStatus(nil))
	assert.Equal(t, http.StatusBadRequest, application.ToHTTPStatus(application.NewValidationError("bad")))
	assert.Equal(t, http.StatusInternalServerError, application.ToHTTPStatus(application.NewAuthError(errors.New("401"))))
	assert.Equal(t, http.StatusInternalServerError, application.ToHTTPStatus(application.NewCaptureError(errors.New("x"))))
	assert.Equal(t, http.StatusRequestTimeout, application.ToHTTPStatus(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, application.ToHTTPStatus(errors.New("anything else")))
}

func TestToErrorCode(t *testing.T) {
	assert.Equal(t, application.ErrCodeValidation, application.ToErrorCode(application.NewValidationError("bad")))
	assert.Equal(t, application.ErrCodeOrderCreation, application.ToErrorCode(application.NewOrderCreationError(errors.New("x"))))
	assert.Equal(t, application.ErrCodeInternal, application.ToErrorCode(errors.New("anything else")))
}

func TestUserFacingMessage(t *testing.T) {
	timeoutErr := application.NewCaptureError(fmt.Errorf("%w: deadline", paypal.ErrGatewayTimeout))
	assert.Equal(t, "PayPal service timed out. Please try again.", application.UserFacingMessage(timeoutErr))

	authErr := application.NewAuthError(errors.New("invalid_client"))
	assert.Equal(t, "Unable to authenticate with PayPal.", application.UserFacingMessage(authErr))

	validationErr := application.NewValidationError("amount must be at least 50 minor units")
	assert.Equal(t, "amount must be at least 50 minor units", application.UserFacingMessage(validationErr))

	gatewayErr := application.NewOrderCreationError(&paypal.APIError{StatusCode: 503})
	assert.Equal(t, "PayPal payment is temporarily unavailable.", application.UserFacingMessage(gatewayErr))
}
