package paypal

// Order lifecycle statuses reported by the gateway.
const (
	OrderStatusCreated   = "CREATED"
	OrderStatusApproved  = "APPROVED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusVoided    = "VOIDED"
)

// AccessToken is held only for the duration of one create or capture
// operation. It is never persisted or shared across requests.
type AccessToken struct {
	Value string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type PurchaseUnit struct {
	ReferenceID string `json:"reference_id"`
	Description string `json:"description,omitempty"`
	CustomID    string `json:"custom_id,omitempty"`
	Amount      Amount `json:"amount"`
}

type CreateOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type CreateOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CaptureRecord struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CapturedPayments struct {
	Captures []CaptureRecord `json:"captures"`
}

type CapturedPurchaseUnit struct {
	ReferenceID string           `json:"reference_id"`
	Payments    CapturedPayments `json:"payments"`
}

type CaptureOrderResponse struct {
	ID            string                 `json:"id"`
	Status        string                 `json:"status"`
	PurchaseUnits []CapturedPurchaseUnit `json:"purchase_units"`
}

// FirstCaptureID digs the settlement record id out of the nested capture
// response. The gateway may omit it even on a COMPLETED capture, in which
// case the empty string is returned and the caller reports it structurally.
func (r *CaptureOrderResponse) FirstCaptureID() string {
	for _, pu := range r.PurchaseUnits {
		for _, c := range pu.Payments.Captures {
			if c.ID != "" {
				return c.ID
			}
		}
	}
	return ""
}
