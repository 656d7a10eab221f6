// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Oracle metrics
	OracleFallbacks   *prometheus.CounterVec
	OracleCallLatency *prometheus.HistogramVec

	// Valuation metrics
	PublicSupplySubstitutions prometheus.Counter
	LeaderboardSize           *prometheus.GaugeVec

	// Lookup metrics
	LookupsTotal *prometheus.CounterVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance registered with reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "buxdao"
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		OracleFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "fallbacks_total",
			Help:      "Total number of oracle calls answered with the static fallback",
		}, []string{"source"}),
		OracleCallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "call_duration_seconds",
			Help:      "Outbound oracle call latency by source",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),

		PublicSupplySubstitutions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "public_supply_substitutions_total",
			Help:      "Times an empty public supply was replaced by 1",
		}),
		LeaderboardSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "valuation",
			Name:      "leaderboard_size",
			Help:      "Number of holders in the last leaderboard by type",
		}, []string{"type"}),

		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lookup",
			Name:      "requests_total",
			Help:      "Total number of NFT lookups by mode and outcome",
		}, []string{"mode", "outcome"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("", prometheus.DefaultRegisterer)

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(route, method, status string, seconds float64) {
	DefaultMetrics.HTTPRequestsTotal.WithLabelValues(route, method, status).Inc()
	DefaultMetrics.HTTPRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// RecordOracleCall records outbound oracle latency.
func RecordOracleCall(source string, seconds float64) {
	DefaultMetrics.OracleCallLatency.WithLabelValues(source).Observe(seconds)
}

// RecordOracleFallback increments the fallback counter for a source.
func RecordOracleFallback(source string) {
	DefaultMetrics.OracleFallbacks.WithLabelValues(source).Inc()
}

// RecordPublicSupplySubstitution increments the empty-supply counter.
func RecordPublicSupplySubstitution() {
	DefaultMetrics.PublicSupplySubstitutions.Inc()
}

// UpdateLeaderboardSize sets the holder count of the last leaderboard.
func UpdateLeaderboardSize(kind string, n int) {
	DefaultMetrics.LeaderboardSize.WithLabelValues(kind).Set(float64(n))
}

// RecordLookup records an NFT lookup outcome (found, not_found, invalid, error).
func RecordLookup(mode, outcome string) {
	DefaultMetrics.LookupsTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
