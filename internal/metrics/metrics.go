package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	EventsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "events_created_total",
			Help: "Total events created",
		},
	)

	ShareLinksIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "share_links_issued_total",
			Help: "Total public share tokens issued",
		},
	)

	AuthFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Total failed login or token verifications",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(EventsCreated)
	prometheus.MustRegister(ShareLinksIssued)
	prometheus.MustRegister(AuthFailures)
}
