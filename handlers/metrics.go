package handlers

import (
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpm_reports_generated_total",
		Help: "Offers rendered, by output format.",
	}, []string{"format"})

	offerEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cpm_offer_emails_total",
		Help: "Offer emails attempted, by result.",
	}, []string{"result"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cpm_http_request_duration_seconds",
		Help:    "API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// MetricsMiddleware records the latency of every request, labelled by route
// pattern rather than raw path.
func MetricsMiddleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		err := e.Next()

		status := e.Status()
		if status == 0 {
			status = 200
			if err != nil {
				status = apiError(err).Status
			}
		}

		route := e.Request.Pattern
		if route == "" {
			route = "unmatched"
		}

		requestDuration.
			WithLabelValues(e.Request.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
