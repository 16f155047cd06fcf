package checkout_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/application/services"
	"github.com/fornello/payment-service/internal/checkout"
	"github.com/fornello/payment-service/internal/infrastructure/paypal"
)

type fakeCreator struct {
	calls  int
	result *services.CreateOrderResult
	err    error
}

func (f *fakeCreator) CreateOrder(ctx context.Context, cmd services.CreateOrderCommand) (*services.CreateOrderResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeCapturer struct {
	calls  int
	result *services.CaptureResult
	err    error
}

func (f *fakeCapturer) CaptureOrder(ctx context.Context, gatewayOrderID string) (*services.CaptureResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type recordingOrderManager struct {
	openedInternalID string
	openedGatewayID  string
	paidInternalID   string
	paidCaptureID    string
}

func (r *recordingOrderManager) RecordGatewayOrderOpened(ctx context.Context, internalOrderID, gatewayOrderID string) error {
	r.openedInternalID = internalOrderID
	r.openedGatewayID = gatewayOrderID
	return nil
}

func (r *recordingOrderManager) MarkOrderPaid(ctx context.Context, internalOrderID, captureID string) error {
	r.paidInternalID = internalOrderID
	r.paidCaptureID = captureID
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chargeCommand() services.CreateOrderCommand {
	return services.CreateOrderCommand{
		AmountMinorUnits: 2500,
		OrderID:          "ord_1",
		PayeeName:        "Fornello Trattoria",
	}
}

func TestDriver_HappyPath(t *testing.T) {
	creator := &fakeCreator{result: &services.CreateOrderResult{GatewayOrderID: "gw-1", Status: paypal.OrderStatusCreated}}
	capturer := &fakeCapturer{result: &services.CaptureResult{
		Status:         paypal.OrderStatusCompleted,
		GatewayOrderID: "gw-1",
		CaptureID:      "cap_9",
	}}
	orders := &recordingOrderManager{}

	driver := checkout.NewDriver(creator, capturer, orders, discardLogger())

	gatewayOrderID, err := driver.CreateOrder(context.Background(), chargeCommand())
	require.NoError(t, err)
	assert.Equal(t, "gw-1", gatewayOrderID)
	assert.Equal(t, "ord_1", orders.openedInternalID)
	assert.Equal(t, "gw-1", orders.openedGatewayID)

	result := driver.OnApprove(context.Background(), gatewayOrderID)

	assert.Equal(t, checkout.KindCompleted, result.Kind)
	assert.Equal(t, "cap_9", result.CaptureID)
	assert.Equal(t, "gw-1", result.GatewayOrderID)
	assert.Equal(t, "ord_1", orders.paidInternalID)
	assert.Equal(t, "cap_9", orders.paidCaptureID)
}

func TestDriver_RejectsConcurrentCreate(t *testing.T) {
	creator := &fakeCreator{result: &services.CreateOrderResult{GatewayOrderID: "gw-1"}}
	driver := checkout.NewDriver(creator, &fakeCapturer{}, nil, discardLogger())

	_, err := driver.CreateOrder(context.Background(), chargeCommand())
	require.NoError(t, err)

	_, err = driver.CreateOrder(context.Background(), chargeCommand())
	assert.ErrorIs(t, err, checkout.ErrPaymentInProgress)
}

func TestDriver_CreateFailureResetsState(t *testing.T) {
	creator := &fakeCreator{err: application.NewValidationError("amount must be at least 50 minor units")}
	driver := checkout.NewDriver(creator, &fakeCapturer{}, nil, discardLogger())

	_, err := driver.CreateOrder(context.Background(), chargeCommand())
	require.Error(t, err)

	// A failed attempt leaves the driver ready for a clean retry.
	creator.err = nil
	creator.result = &services.CreateOrderResult{GatewayOrderID: "gw-2"}
	gatewayOrderID, err := driver.CreateOrder(context.Background(), chargeCommand())
	require.NoError(t, err)
	assert.Equal(t, "gw-2", gatewayOrderID)
}

func TestDriver_CaptureFailureMessages(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "timeout",
			err:     application.NewCaptureError(fmt.Errorf("%w: context deadline exceeded", paypal.ErrGatewayTimeout)),
			message: "PayPal service timed out. Please try again.",
		},
		{
			name:    "auth",
			err:     application.NewAuthError(errors.New("invalid_client")),
			message: "Unable to authenticate with PayPal.",
		},
		{
			name:    "gateway",
			err:     application.NewCaptureError(&paypal.APIError{StatusCode: 422, Code: "ORDER_ALREADY_CAPTURED"}),
			message: "PayPal payment is temporarily unavailable.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creator := &fakeCreator{result: &services.CreateOrderResult{GatewayOrderID: "gw-1"}}
			capturer := &fakeCapturer{err: tc.err}
			driver := checkout.NewDriver(creator, capturer, nil, discardLogger())

			_, err := driver.CreateOrder(context.Background(), chargeCommand())
			require.NoError(t, err)

			result := driver.OnApprove(context.Background(), "gw-1")

			assert.Equal(t, checkout.KindFailed, result.Kind)
			assert.Equal(t, tc.message, result.Message)
			assert.NotEmpty(t, result.RequestID)
			assert.NotEmpty(t, result.ErrorCode)
		})
	}
}

func TestDriver_FailureResetsProcessing(t *testing.T) {
	creator := &fakeCreator{result: &services.CreateOrderResult{GatewayOrderID: "gw-1"}}
	capturer := &fakeCapturer{err: application.NewCaptureError(errors.New("boom"))}
	driver := checkout.NewDriver(creator, capturer, nil, discardLogger())

	_, err := driver.CreateOrder(context.Background(), chargeCommand())
	require.NoError(t, err)

	result := driver.OnApprove(context.Background(), "gw-1")
	require.Equal(t, checkout.KindFailed, result.Kind)

	// Terminal failure returns the driver to idle.
	_, err = driver.CreateOrder(context.Background(), chargeCommand())
	assert.NoError(t, err)
}

func TestDriver_CancelIsNotAFailure(t *testing.T) {
	creator := &fakeCreator{result: &services.CreateOrderResult{GatewayOrderID: "gw-1"}}
	capturer := &fakeCapturer{}
	driver := checkout.NewDriver(creator, capturer, nil, discardLogger())

	_, err := driver.CreateOrder(context.Background(), chargeCommand())
	require.NoError(t, err)

	result := driver.OnCancel()

	assert.Equal(t, checkout.KindCancelled, result.Kind)
	assert.Empty(t, result.Message)
	assert.Empty(t, result.ErrorCode)
	assert.Equal(t, 0, capturer.calls, "cancellation makes no gateway call")

	_, err = driver.CreateOrder(context.Background(), chargeCommand())
	assert.NoError(t, err)
}
