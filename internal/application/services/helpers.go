package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/infrastructure/paypal"
)

// FormatMinorUnits renders an integer cent amount as the gateway's decimal
// major-unit string. Integer arithmetic only: 1050 -> "10.50".
func FormatMinorUnits(minorUnits int64) string {
	return fmt.Sprintf("%d.%02d", minorUnits/100, minorUnits%100)
}

func buildDescription(payeeName, orderNumber string) string {
	parts := make([]string, 0, 2)
	if payeeName != "" {
		parts = append(parts, payeeName)
	}
	if orderNumber != "" {
		parts = append(parts, "Order #"+orderNumber)
	}
	return strings.Join(parts, " - ")
}

func buildCorrelationPayload(cmd CreateOrderCommand) (string, error) {
	payload := correlationPayload{
		OrderID:     cmd.OrderID,
		OrderNumber: cmd.OrderNumber,
		PayeeID:     cmd.PayeeID,
		PayeeName:   cmd.PayeeName,
		PayerName:   cmd.PayerName,
		PayerEmail:  cmd.PayerEmail,
		ChargeType:  chargeTypeStorefront,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshalling correlation payload: %w", err)
	}
	return string(data), nil
}

// mapTokenError keeps the taxonomy stable: missing credentials are a
// configuration problem, everything else from the token exchange is an auth
// failure carrying whatever the invoker already absorbed.
func mapTokenError(err error) *application.ServiceError {
	if errors.Is(err, paypal.ErrMissingCredentials) {
		return application.NewConfigurationError(err)
	}
	return application.NewAuthError(err)
}
