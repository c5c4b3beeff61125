// Package metrics defines the service-level instrumentation contract. Services
// depend on the Collector interface; production wires the Prometheus
// implementation and tests use the noop.
package metrics

// Collector records counters for ledger operations.
type Collector interface {
	// IncPayments counts payment lifecycle outcomes, labelled by operation
	// (create, verify, refund) and outcome (ok, error).
	IncPayments(operation, outcome string)
	// IncTransfers counts transfer outcomes.
	IncTransfers(outcome string)
	// ObserveOperationDuration records operation latency in seconds.
	ObserveOperationDuration(operation string, seconds float64)
}

// NoopCollector discards all measurements.
type NoopCollector struct{}

func (NoopCollector) IncPayments(string, string)               {}
func (NoopCollector) IncTransfers(string)                      {}
func (NoopCollector) ObserveOperationDuration(string, float64) {}
