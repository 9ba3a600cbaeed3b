package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncOperationsApplied()
	IncOperationsRejected()
	IncCommandsReceived(source string)
	IncBroadcastsPublished()
	IncNotifSent()
	IncNotifFailed()
	IncSnapshotsPersisted()
	ObserveOperationDuration(duration float64)
	SetStartupTime(duration float64)
}
