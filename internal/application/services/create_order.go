package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/config"
	"github.com/fornello/payment-service/internal/infrastructure/paypal"
)

type CreateOrderService struct {
	client    paypal.Client
	currency  string
	minAmount int64
	logger    *slog.Logger
}

func NewCreateOrderService(client paypal.Client, cfg config.PayPalConfig, logger *slog.Logger) *CreateOrderService {
	return &CreateOrderService{
		client:    client,
		currency:  cfg.Currency,
		minAmount: cfg.MinAmountCents,
		logger:    logger,
	}
}

// CreateOrder validates the charge request, obtains a fresh token and opens
// a gateway order. Nothing is persisted here; recording that an order was
// opened belongs to the order-management collaborator.
func (s *CreateOrderService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*CreateOrderResult, error) {
	if cmd.AmountMinorUnits < s.minAmount {
		return nil, application.NewValidationError(
			fmt.Sprintf("amount must be at least %d minor units", s.minAmount))
	}
	if cmd.OrderID == "" {
		return nil, application.NewValidationError("orderId is required")
	}

	token, err := s.client.GetAccessToken(ctx)
	if err != nil {
		return nil, mapTokenError(err)
	}

	customID, err := buildCorrelationPayload(cmd)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	req := paypal.CreateOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypal.PurchaseUnit{
			{
				ReferenceID: cmd.OrderID,
				Description: buildDescription(cmd.PayeeName, cmd.OrderNumber),
				CustomID:    customID,
				Amount: paypal.Amount{
					CurrencyCode: s.currency,
					Value:        FormatMinorUnits(cmd.AmountMinorUnits),
				},
			},
		},
	}

	resp, err := s.client.CreateOrder(ctx, *token, req)
	if err != nil {
		s.logger.Error("gateway order creation failed",
			"order_id", cmd.OrderID,
			"error", err,
		)
		return nil, application.NewOrderCreationError(err)
	}

	s.logger.Info("gateway order created",
		"order_id", cmd.OrderID,
		"gateway_order_id", resp.ID,
		"status", resp.Status,
	)

	return &CreateOrderResult{
		GatewayOrderID: resp.ID,
		Status:         resp.Status,
	}, nil
}
