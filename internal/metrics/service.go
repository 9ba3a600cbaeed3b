package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		OperationsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_engine_operations_applied_total",
			Help: "The total number of engine operations that mutated match state.",
		}),
		OperationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_engine_operations_rejected_total",
			Help: "The total number of engine operations rejected as silent no-ops.",
		}),
		CommandsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pitchside_commands_received_total",
			Help: "The total number of remote commands received from any surface.",
		}, []string{"source"}),
		BroadcastsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_state_broadcasts_published_total",
			Help: "The total number of state updates published on the broadcast channel.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_notifications_sent_total",
			Help: "The total number of final result notifications sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_notifications_failed_total",
			Help: "The total number of final result notifications that failed to send.",
		}),
		SnapshotsPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pitchside_state_snapshots_persisted_total",
			Help: "The total number of match state snapshots written to durable storage.",
		}),
		OperationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pitchside_engine_operation_duration_seconds",
			Help:    "The duration of individual engine operations.",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pitchside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.OperationsApplied,
		s.OperationsRejected,
		s.CommandsReceived,
		s.BroadcastsPublished,
		s.NotifSent,
		s.NotifFailed,
		s.SnapshotsPersisted,
		s.OperationDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncOperationsApplied() {
	s.OperationsApplied.Inc()
}

func (s *Service) IncOperationsRejected() {
	s.OperationsRejected.Inc()
}

func (s *Service) IncCommandsReceived(source string) {
	s.CommandsReceived.WithLabelValues(source).Inc()
}

func (s *Service) IncBroadcastsPublished() {
	s.BroadcastsPublished.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) IncSnapshotsPersisted() {
	s.SnapshotsPersisted.Inc()
}

func (s *Service) ObserveOperationDuration(duration float64) {
	s.OperationDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
