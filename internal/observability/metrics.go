package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsSubmitted counts accepted emergency requests by urgency and blood type.
	RequestsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thalanet_requests_submitted_total",
		Help: "Total number of emergency requests accepted",
	}, []string{"urgency", "blood_type"})

	// RequestsFulfilled counts requests marked fulfilled.
	RequestsFulfilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thalanet_requests_fulfilled_total",
		Help: "Total number of emergency requests marked fulfilled",
	})

	// RequestsSwept counts rows transitioned to expired by the sweeper.
	RequestsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thalanet_requests_swept_total",
		Help: "Total number of emergency requests transitioned to expired by sweeps",
	})

	// AlertsPublished counts alert notifications published per channel.
	AlertsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thalanet_alerts_published_total",
		Help: "Total number of alert notifications published",
	}, []string{"channel"})
)
