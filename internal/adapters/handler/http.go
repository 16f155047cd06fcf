package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator"

	"github.com/fornello/payment-service/internal/application/services"
)

type CreateOrderService interface {
	CreateOrder(ctx context.Context, cmd services.CreateOrderCommand) (*services.CreateOrderResult, error)
}

type CaptureOrderService interface {
	CaptureOrder(ctx context.Context, gatewayOrderID string) (*services.CaptureResult, error)
}

type PaymentHandler struct {
	createService  CreateOrderService
	captureService CaptureOrderService
	validate       *validator.Validate
	logger         *slog.Logger
}

func NewPaymentHandler(
	createService CreateOrderService,
	captureService CaptureOrderService,
	logger *slog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		createService:  createService,
		captureService: captureService,
		validate:       validator.New(),
		logger:         logger,
	}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /payment/create-order", h.HandleCreateOrder)
	mux.HandleFunc("POST /payment/capture-order", h.HandleCaptureOrder)
	mux.HandleFunc("GET /healthz", h.HandleHealth)
}

func (h *PaymentHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
