package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fornello/payment-service/internal/application"
)

type CaptureOrderRequest struct {
	GatewayOrderID     string `json:"gatewayOrderId" validate:"required" example:"5O190127TN364715T"`
	CorrelationOrderID string `json:"correlationOrderId" example:"ord_1"`
}

type CaptureOrderResponse struct {
	Success        bool   `json:"success"`
	Status         string `json:"status"`
	GatewayOrderID string `json:"gatewayOrderId"`
	CaptureID      string `json:"captureId"`
}

// HandleCaptureOrder captures a previously approved gateway order
// @Summary      Capture a gateway order
// @Description  Moves the money for an order the payer already approved. Capture is not repeatable after COMPLETED; the gateway enforces this.
// @Tags         payment
// @Accept       json
// @Produce      json
// @Param        request  body      CaptureOrderRequest   true  "Gateway order to capture"
// @Success      200      {object}  CaptureOrderResponse  "Funds captured"
// @Failure      400      {object}  ErrorResponse         "Missing gateway order id"
// @Failure      500      {object}  ErrorResponse         "Capture rejected or gateway failure"
// @Router       /payment/capture-order [post]
func (h *PaymentHandler) HandleCaptureOrder(w http.ResponseWriter, r *http.Request) {
	var req CaptureOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, application.NewValidationError("invalid request body"), h.logger)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, r, application.NewValidationError(err.Error()), h.logger)
		return
	}

	result, err := h.captureService.CaptureOrder(r.Context(), req.GatewayOrderID)
	if err != nil {
		respondWithError(w, r, err, h.logger)
		return
	}

	if req.CorrelationOrderID != "" {
		h.logger.Info("captured order for internal correlation",
			"correlation_order_id", req.CorrelationOrderID,
			"gateway_order_id", result.GatewayOrderID,
		)
	}

	respondWithJSON(w, http.StatusOK, CaptureOrderResponse{
		Success:        true,
		Status:         result.Status,
		GatewayOrderID: result.GatewayOrderID,
		CaptureID:      result.CaptureID,
	})
}
