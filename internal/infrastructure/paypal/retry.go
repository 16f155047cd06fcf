package paypal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fornello/payment-service/internal/config"
	"github.com/fornello/payment-service/internal/monitoring"
)

// RetryClient wraps a Client with a bounded retry loop and fixed exponential
// backoff. It is stateless and safe to share across requests.
type RetryClient struct {
	inner      Client
	baseDelay  time.Duration
	maxRetries int
	metrics    *monitoring.Metrics
}

func NewRetryClient(inner Client, cfg config.RetryConfig, metrics *monitoring.Metrics) *RetryClient {
	return &RetryClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: cfg.MaxRetries,
		metrics:    metrics,
	}
}

// GetAccessToken retries any failure. The client-credentials exchange is
// idempotent, so a flaky token endpoint is worth the extra attempts.
func (r *RetryClient) GetAccessToken(ctx context.Context) (*AccessToken, error) {
	return retry(r, ctx, "token", retryAlways, func(ctx context.Context) (*AccessToken, error) {
		return r.inner.GetAccessToken(ctx)
	})
}

// CreateOrder retries only transient failures: 5xx, 429 and timeouts.
func (r *RetryClient) CreateOrder(ctx context.Context, token AccessToken, req CreateOrderRequest) (*CreateOrderResponse, error) {
	return retry(r, ctx, "create_order", retryTransient, func(ctx context.Context) (*CreateOrderResponse, error) {
		return r.inner.CreateOrder(ctx, token, req)
	})
}

// CaptureOrder retries only transient failures. The gateway rejects a second
// capture of a COMPLETED order, so replaying a timed-out attempt is safe.
func (r *RetryClient) CaptureOrder(ctx context.Context, token AccessToken, gatewayOrderID string) (*CaptureOrderResponse, error) {
	return retry(r, ctx, "capture_order", retryTransient, func(ctx context.Context) (*CaptureOrderResponse, error) {
		return r.inner.CaptureOrder(ctx, token, gatewayOrderID)
	})
}

// retryTransient allows another attempt on 5xx, 429, timeouts and transport
// errors. Every other upstream status is terminal after one attempt.
func retryTransient(err error) bool {
	if apiErr, ok := IsAPIError(err); ok {
		return apiErr.Retryable()
	}
	// Timeouts and other transport-level failures.
	return true
}

func retryAlways(err error) bool {
	return !errors.Is(err, ErrMissingCredentials)
}

// Generic retry helper. Runs maxRetries+1 attempts with delays of
// baseDelay, 2*baseDelay, 4*baseDelay, ... between consecutive attempts.
func retry[T any](r *RetryClient, ctx context.Context, operation string, retryable func(error) bool, call func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error
	start := time.Now()

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			r.metrics.ObserveCall(operation, "cancelled", time.Since(start))
			return nil, ctx.Err()
		default:
		}

		resp, err := call(ctx)
		if err == nil {
			r.metrics.ObserveCall(operation, "success", time.Since(start))
			return resp, nil
		}

		lastErr = err

		if !retryable(err) {
			r.metrics.ObserveCall(operation, "terminal", time.Since(start))
			return nil, err
		}

		if attempt < r.maxRetries {
			r.metrics.CountRetry(operation)
			if err := sleep(ctx, r.backoff(attempt)); err != nil {
				r.metrics.ObserveCall(operation, "cancelled", time.Since(start))
				return nil, err
			}
		}
	}

	r.metrics.ObserveCall(operation, "exhausted", time.Since(start))

	if isTimeout(lastErr) {
		return nil, fmt.Errorf("%w: %v", ErrGatewayTimeout, lastErr)
	}
	return nil, fmt.Errorf("%w: %w", ErrRetriesExhausted, lastErr)
}

// Fixed exponential backoff, no jitter. Attempts are sequential, so two
// concurrent checkouts never share a schedule.
func (r *RetryClient) backoff(attempt int) time.Duration {
	return r.baseDelay * time.Duration(1<<attempt)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ Client = (*RetryClient)(nil)
