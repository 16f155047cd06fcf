package services

// CreateOrderCommand is a validated charge request for one internal order.
// Amounts are integer minor units (cents); conversion to the gateway's
// decimal string happens exactly once, at payload-build time.
type CreateOrderCommand struct {
	AmountMinorUnits int64
	OrderID          string
	OrderNumber      string
	PayeeID          string
	PayeeName        string
	PayerName        string
	PayerEmail       string
}

type CreateOrderResult struct {
	GatewayOrderID string
	Status         string
}

type CaptureResult struct {
	Status         string
	GatewayOrderID string
	CaptureID      string
}

// correlationPayload rides along as the purchase unit's custom id so later
// webhooks and lookups can map a gateway order back to the internal order.
type correlationPayload struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber,omitempty"`
	PayeeID     string `json:"payeeId,omitempty"`
	PayeeName   string `json:"payeeName,omitempty"`
	PayerName   string `json:"payerName,omitempty"`
	PayerEmail  string `json:"payerEmail,omitempty"`
	ChargeType  string `json:"chargeType"`
}

const chargeTypeStorefront = "storefront_order"
