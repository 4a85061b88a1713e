package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ztimer_sessions_created_total",
		Help: "Sessions accepted and stored",
	})

	sessionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ztimer_sessions_rejected_total",
		Help: "Create requests rejected by validation, by kind",
	}, []string{"kind"}) // kind=missing-field|blank-name|name-too-long

	sessionListRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ztimer_session_list_requests_total",
		Help: "List requests served",
	})
)

// RecordSessionCreated counts an accepted create.
func RecordSessionCreated() {
	sessionsCreated.Inc()
}

// RecordSessionRejected counts a rejected create.
func RecordSessionRejected(kind string) {
	sessionsRejected.WithLabelValues(kind).Inc()
}

// RecordSessionList counts a list request.
func RecordSessionList() {
	sessionListRequests.Inc()
}
