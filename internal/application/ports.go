package application

import "context"

// OrderManager is the port for the external order-management collaborator.
// The orchestration services never call it; the checkout driver (the caller
// of this core) records gateway orders and paid transitions through it.
type OrderManager interface {
	RecordGatewayOrderOpened(ctx context.Context, internalOrderID, gatewayOrderID string) error
	MarkOrderPaid(ctx context.Context, internalOrderID, captureID string) error
}
