package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/infrastructure/paypal"
)

type CaptureOrderService struct {
	client paypal.Client
	logger *slog.Logger
}

func NewCaptureOrderService(client paypal.Client, logger *slog.Logger) *CaptureOrderService {
	return &CaptureOrderService{
		client: client,
		logger: logger,
	}
}

// CaptureOrder performs the irrevocable money-movement step for a gateway
// order the payer has already approved. The service does not deduplicate
// repeated captures; tracking paid state before calling again is the
// order-management collaborator's job.
func (s *CaptureOrderService) CaptureOrder(ctx context.Context, gatewayOrderID string) (*CaptureResult, error) {
	if gatewayOrderID == "" {
		return nil, application.NewValidationError("gatewayOrderId is required")
	}

	token, err := s.client.GetAccessToken(ctx)
	if err != nil {
		return nil, mapTokenError(err)
	}

	resp, err := s.client.CaptureOrder(ctx, *token, gatewayOrderID)
	if err != nil {
		s.logger.Error("gateway capture failed",
			"gateway_order_id", gatewayOrderID,
			"error", err,
		)
		return nil, application.NewCaptureError(err)
	}

	// Partial and ambiguous states (PENDING, already captured, ...) are
	// surfaced as errors; the caller decides reconciliation policy.
	if resp.Status != paypal.OrderStatusCompleted {
		s.logger.Error("gateway capture returned unexpected status",
			"gateway_order_id", gatewayOrderID,
			"status", resp.Status,
		)
		return nil, application.NewCaptureError(
			fmt.Errorf("capture returned status %q, expected %q", resp.Status, paypal.OrderStatusCompleted))
	}

	captureID := resp.FirstCaptureID()
	if captureID == "" {
		// The gateway is authoritative on money movement: COMPLETED with a
		// missing settlement id is reported structurally, not failed.
		s.logger.Warn("capture completed without a settlement id",
			"gateway_order_id", gatewayOrderID,
		)
	}

	s.logger.Info("gateway order captured",
		"gateway_order_id", gatewayOrderID,
		"capture_id", captureID,
	)

	return &CaptureResult{
		Status:         paypal.OrderStatusCompleted,
		GatewayOrderID: gatewayOrderID,
		CaptureID:      captureID,
	}, nil
}
