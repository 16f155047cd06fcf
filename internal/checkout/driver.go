package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/application/services"
)

// ResultKind enumerates the terminal states of one checkout attempt.
type ResultKind string

const (
	KindCompleted ResultKind = "COMPLETED"
	KindFailed    ResultKind = "FAILED"
	KindCancelled ResultKind = "CANCELLED"
)

// Result replaces the success/error/cancel callback triple with one value
// the UI consumes in a single switch.
type Result struct {
	Kind           ResultKind
	GatewayOrderID string
	CaptureID      string
	ErrorCode      string
	Message        string
	RequestID      string
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, cmd services.CreateOrderCommand) (*services.CreateOrderResult, error)
}

type OrderCapturer interface {
	CaptureOrder(ctx context.Context, gatewayOrderID string) (*services.CaptureResult, error)
}

// Driver sequences one checkout session: create, wait for approval, capture.
// It enforces the ordering the orchestrators deliberately do not - capture
// is only reachable after CreateOrder returned an id.
type Driver struct {
	creator  OrderCreator
	capturer OrderCapturer
	orders   application.OrderManager
	logger   *slog.Logger

	mu              sync.Mutex
	processing      bool
	internalOrderID string
	gatewayOrderID  string
}

var ErrPaymentInProgress = errors.New("a payment is already being processed")

func NewDriver(creator OrderCreator, capturer OrderCapturer, orders application.OrderManager, logger *slog.Logger) *Driver {
	return &Driver{
		creator:  creator,
		capturer: capturer,
		orders:   orders,
		logger:   logger,
	}
}

// CreateOrder opens a gateway order for the approval widget. On failure the
// driver resets to idle so the user can retry from a clean slate.
func (d *Driver) CreateOrder(ctx context.Context, cmd services.CreateOrderCommand) (string, error) {
	d.mu.Lock()
	if d.processing {
		d.mu.Unlock()
		return "", ErrPaymentInProgress
	}
	d.processing = true
	d.internalOrderID = cmd.OrderID
	d.mu.Unlock()

	result, err := d.creator.CreateOrder(ctx, cmd)
	if err != nil {
		d.reset()
		return "", err
	}

	d.mu.Lock()
	d.gatewayOrderID = result.GatewayOrderID
	d.mu.Unlock()

	if d.orders != nil {
		if err := d.orders.RecordGatewayOrderOpened(ctx, cmd.OrderID, result.GatewayOrderID); err != nil {
			d.logger.Error("failed to record opened gateway order",
				"order_id", cmd.OrderID,
				"gateway_order_id", result.GatewayOrderID,
				"error", err,
			)
		}
	}

	return result.GatewayOrderID, nil
}

// OnApprove runs capture for the order the payer approved and collapses the
// outcome into a Result. Always returns the driver to idle.
func (d *Driver) OnApprove(ctx context.Context, approvedOrderID string) Result {
	d.mu.Lock()
	internalOrderID := d.internalOrderID
	d.mu.Unlock()

	defer d.reset()

	capture, err := d.capturer.CaptureOrder(ctx, approvedOrderID)
	if err != nil {
		return d.failure(approvedOrderID, err)
	}

	if d.orders != nil && internalOrderID != "" {
		if err := d.orders.MarkOrderPaid(ctx, internalOrderID, capture.CaptureID); err != nil {
			d.logger.Error("failed to mark order paid",
				"order_id", internalOrderID,
				"capture_id", capture.CaptureID,
				"error", err,
			)
		}
	}

	return Result{
		Kind:           KindCompleted,
		GatewayOrderID: capture.GatewayOrderID,
		CaptureID:      capture.CaptureID,
	}
}

// OnCancel reports user-initiated cancellation of the approval step. No
// gateway call is made; cancellation is terminal but not an error.
func (d *Driver) OnCancel() Result {
	d.reset()
	return Result{Kind: KindCancelled}
}

func (d *Driver) failure(gatewayOrderID string, err error) Result {
	requestID := uuid.NewString()

	// Raw upstream diagnostics stay in the logs, keyed by the request id
	// the user sees.
	d.logger.Error("checkout payment failed",
		"request_id", requestID,
		"gateway_order_id", gatewayOrderID,
		"category", application.CategorizeError(err),
		"error", err,
	)

	return Result{
		Kind:           KindFailed,
		GatewayOrderID: gatewayOrderID,
		ErrorCode:      application.ToErrorCode(err),
		Message:        application.UserFacingMessage(err),
		RequestID:      requestID,
	}
}

func (d *Driver) reset() {
	d.mu.Lock()
	d.processing = false
	d.internalOrderID = ""
	d.gatewayOrderID = ""
	d.mu.Unlock()
}
