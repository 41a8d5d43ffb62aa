package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups every metric the service exports.
type Collectors struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Registrations *prometheus.CounterVec
	Uploads       *prometheus.CounterVec
	RateLimited   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "badminton_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_team_registrations_total",
			Help: "Completed team registrations by level.",
		}, []string{"level"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_uploads_total",
			Help: "File uploads by kind (photo, slip, qr) and result.",
		}, []string{"kind", "result"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "badminton_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by limiter name.",
		}, []string{"limiter"}),
	}
	if reg != nil {
		reg.MustRegister(c.HTTPRequests, c.HTTPDuration, c.Registrations, c.Uploads, c.RateLimited)
	}
	return c
}

func (c *Collectors) ObserveUpload(kind string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.Uploads.WithLabelValues(kind, result).Inc()
}

func (c *Collectors) ObserveRegistration(level string) {
	if c == nil {
		return
	}
	c.Registrations.WithLabelValues(level).Inc()
}
