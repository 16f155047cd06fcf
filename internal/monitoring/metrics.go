package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments outbound gateway calls. One instance is shared by the
// retry layer for every operation.
type Metrics struct {
	gatewayCalls    *prometheus.CounterVec
	gatewayRetries  *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatewayCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_gateway_calls_total",
			Help: "Outbound gateway operations by final outcome.",
		}, []string{"operation", "outcome"}),
		gatewayRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "paypal_gateway_retries_total",
			Help: "Retry attempts consumed per gateway operation.",
		}, []string{"operation"}),
		gatewayDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paypal_gateway_call_duration_seconds",
			Help:    "End-to-end gateway operation latency including retries.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"operation"}),
	}
}

func (m *Metrics) ObserveCall(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.gatewayCalls.WithLabelValues(operation, outcome).Inc()
	m.gatewayDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) CountRetry(operation string) {
	if m == nil {
		return
	}
	m.gatewayRetries.WithLabelValues(operation).Inc()
}
