package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"school-erp-service/pkg/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// School login counter
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "erp_login_total",
			Help: "Total number of school login attempts",
		},
	)

	// Super admin login counter
	SuperLoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "erp_super_login_total",
			Help: "Total number of super admin login attempts",
		},
	)

	// School directory operation counter
	SchoolOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_school_operations_total",
			Help: "Total number of school directory operations",
		},
		[]string{"operation"}, // operation can be "create", "update", "delete", "list"
	)

	// Collection access counter
	CollectionOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_collection_operations_total",
			Help: "Total number of collection reads and writes",
		},
		[]string{"operation", "collection"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Error counters
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "erp_errors_total",
			Help: "Total number of authentication and store errors",
		},
		[]string{"type"}, // type can be "login_failure", "invalid_token", "no_active_school" etc.
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erp_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Snapshot store operation duration
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "erp_store_operation_duration_seconds",
			Help:    "Duration of snapshot store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "read", "replace", "profile", "directory"
	)
)

// Gauge metrics
var (
	// Registered schools
	SchoolsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "erp_schools",
			Help: "Number of schools in the tenant directory",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "erp_info",
			Help: "Information about the school ERP service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(SuperLoginCounter)
	prometheus.MustRegister(SchoolOperationCounter)
	prometheus.MustRegister(CollectionOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(StoreOperationDuration)

	// Register gauges
	prometheus.MustRegister(SchoolsGauge)
	prometheus.MustRegister(InfoGauge)
}

// InitMetrics sets the static service info after configuration is loaded.
func InitMetrics(cfg *config.Config) {
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackStoreOperation measures snapshot store operation durations
func TrackStoreOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record request duration
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			// Record metrics
			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records an authentication or store error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordSchoolOperation records a school directory operation
func RecordSchoolOperation(operation string) {
	SchoolOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordCollectionOperation records a collection read or write
func RecordCollectionOperation(operation, collection string) {
	CollectionOperationCounter.With(prometheus.Labels{
		"operation":  operation,
		"collection": collection,
	}).Inc()
}
