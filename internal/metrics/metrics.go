package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labourlink_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "labourlink_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labourlink_registrations_total",
		Help: "Accounts created, by user type",
	}, []string{"user_type"})

	uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "labourlink_profile_uploads_total",
		Help: "Profile image uploads by outcome",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func ObserveRegistration(userType string) {
	registrations.WithLabelValues(userType).Inc()
}

// ObserveUpload counts an upload attempt; result is "stored", "rejected" or "failed".
func ObserveUpload(result string) {
	uploads.WithLabelValues(result).Inc()
}

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
