// Package metrics provides the interface the user service records its
// counters and timings through, and a Prometheus implementation of it.
//
// Usage Example:
//
//	m := metrics.NewPrometheusMetrics(prometheus.NewRegistry())
//	m.RegisterWithLabels("users_operations_total", "Counter", "User operations by outcome", []string{"op", "outcome"})
//	m.RecordWithLabels("users_operations_total", 1, "create", "success")
package metrics

type Metrics interface {
	Register(name, metricType, help string)
	Record(name string, value float64)
	RegisterWithLabels(name, metricType, help string, labels []string)
	RecordWithLabels(name string, value float64, labelValues ...string)
}
