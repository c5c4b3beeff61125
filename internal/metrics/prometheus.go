package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exposes ledger counters on a Prometheus registry.
type PrometheusCollector struct {
	payments  *prometheus.CounterVec
	transfers *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewPrometheusCollector registers the ledger metrics on reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	factory := promauto.With(reg)
	return &PrometheusCollector{
		payments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_payments_total",
			Help: "Payment lifecycle operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		transfers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transfers_total",
			Help: "Wallet-to-wallet transfers by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Latency of ledger operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (c *PrometheusCollector) IncPayments(operation, outcome string) {
	c.payments.WithLabelValues(operation, outcome).Inc()
}

func (c *PrometheusCollector) IncTransfers(outcome string) {
	c.transfers.WithLabelValues(outcome).Inc()
}

func (c *PrometheusCollector) ObserveOperationDuration(operation string, seconds float64) {
	c.duration.WithLabelValues(operation).Observe(seconds)
}
