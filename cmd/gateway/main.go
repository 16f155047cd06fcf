package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fornello/payment-service/internal/adapters/handler"
	"github.com/fornello/payment-service/internal/application/services"
	"github.com/fornello/payment-service/internal/config"
	"github.com/fornello/payment-service/internal/infrastructure/paypal"
	"github.com/fornello/payment-service/internal/interfaces/rest/middleware"
	"github.com/fornello/payment-service/internal/monitoring"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting payment service",
		"port", cfg.Server.Port,
		"paypal_env", cfg.PayPal.Environment,
		"log_level", cfg.Logger.Level,
	)

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)

	paypalClient := paypal.NewClient(cfg.PayPal)
	retryClient := paypal.NewRetryClient(paypalClient, cfg.Retry, metrics)

	createService := services.NewCreateOrderService(retryClient, cfg.PayPal, logger)
	captureService := services.NewCaptureOrderService(retryClient, logger)

	h := handler.NewPaymentHandler(createService, captureService, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	router := http.Handler(mux)

	wrapped := middleware.Recovery(logger)(router)
	wrapped = middleware.Logging(logger)(wrapped)
	wrapped = middleware.Timeout(cfg.Server.RequestTimeout)(wrapped)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
