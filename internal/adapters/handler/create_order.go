package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fornello/payment-service/internal/application"
	"github.com/fornello/payment-service/internal/application/services"
)

type CreateOrderRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0" example:"2500"`
	OrderID     string `json:"orderId" validate:"required" example:"ord_1"`
	OrderNumber string `json:"orderNumber" example:"1042"`
	PayeeID     string `json:"payeeId"`
	PayeeName   string `json:"payeeName" example:"Fornello Trattoria"`
	PayerName   string `json:"payerName"`
	PayerEmail  string `json:"payerEmail" validate:"omitempty,email"`
}

type CreateOrderResponse struct {
	Success        bool   `json:"success"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Status         string `json:"status"`
}

// HandleCreateOrder opens a payment-gateway order for a storefront checkout
// @Summary      Create a gateway order
// @Description  Validates the charge request and creates an order at the payment gateway. The returned id is handed to the gateway's approval widget.
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOrderRequest   true  "Charge details (amount in minor units)"
// @Success      200      {object}  CreateOrderResponse  "Gateway order created"
// @Failure      400      {object}  ErrorResponse        "Invalid charge request"
// @Failure      500      {object}  ErrorResponse        "Gateway or configuration failure"
// @Router       /payment/create-order [post]
func (h *PaymentHandler) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, application.NewValidationError("invalid request body"), h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, r, application.NewValidationError(err.Error()), h.logger)
		return
	}

	cmd := services.CreateOrderCommand{
		AmountMinorUnits: req.Amount,
		OrderID:          req.OrderID,
		OrderNumber:      req.OrderNumber,
		PayeeID:          req.PayeeID,
		PayeeName:        req.PayeeName,
		PayerName:        req.PayerName,
		PayerEmail:       req.PayerEmail,
	}

	result, err := h.createService.CreateOrder(r.Context(), cmd)
	if err != nil {
		respondWithError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, CreateOrderResponse{
		Success:        true,
		GatewayOrderID: result.GatewayOrderID,
		Status:         result.Status,
	})
}
