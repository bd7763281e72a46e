package observability

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for APIRequestsTotal.
const (
	OutcomeOK             = "ok"
	OutcomeProtocolError  = "protocol_error"
	OutcomeTransportError = "transport_error"
)

var (
	// client metrics
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "open189_api_requests_total",
		Help: "Total open.189.cn API calls",
	}, []string{"endpoint", "outcome"})

	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "open189_api_request_duration_seconds",
		Help:    "open.189.cn API call latency",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})

	// callback receiver metrics
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "open189_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "open189_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	ActiveRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "open189_active_requests",
		Help: "Current in-flight requests",
	})

	RandcodesReceivedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "open189_randcodes_received_total",
		Help: "Platform-generated verification codes received",
	})
)

func RegisterAll(reg prometheus.Registerer) {
	reg.MustRegister(
		APIRequestsTotal, APIRequestDuration,
		HTTPRequestsTotal, HTTPRequestDuration, ActiveRequests,
		RandcodesReceivedTotal,
	)
}
