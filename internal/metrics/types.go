package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	OperationsApplied   prometheus.Counter
	OperationsRejected  prometheus.Counter
	CommandsReceived    *prometheus.CounterVec
	BroadcastsPublished prometheus.Counter
	NotifSent           prometheus.Counter
	NotifFailed         prometheus.Counter
	SnapshotsPersisted  prometheus.Counter
	OperationDuration   prometheus.Histogram
	StartupTimeSeconds  prometheus.Gauge
}
