// Package metrics provides Prometheus metrics collection for thermogate.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/artpar/thermogate/domain/usage"
	"github.com/artpar/thermogate/ports"
)

const namespace = "thermogate"

// Collector holds all Prometheus metrics for thermogate.
type Collector struct {
	// Request metrics
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	// Auth metrics
	AuthFailures *prometheus.CounterVec

	// Key lifecycle
	KeysIssued  prometheus.Counter
	KeysRevoked *prometheus.CounterVec

	// Config metrics
	ConfigReloads      prometheus.Counter
	ConfigReloadErrors prometheus.Counter

	reg prometheus.Registerer
}

// NewWithRegistry creates a metrics collector registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of requests processed",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
		),
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Total number of rejected credentials by reason",
			},
			[]string{"reason"},
		),
		KeysIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keys_issued_total",
				Help:      "Total number of API keys issued",
			},
		),
		KeysRevoked: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "keys_revoked_total",
				Help:      "Total number of revocation attempts by result",
			},
			[]string{"result"},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reloads_total",
				Help:      "Total number of successful config reloads",
			},
		),
		ConfigReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "config_reload_errors_total",
				Help:      "Total number of config reload errors",
			},
		),
		reg: reg,
	}
}

// KeyIssued counts an issued key.
func (c *Collector) KeyIssued() { c.KeysIssued.Inc() }

// KeyRevoked counts a revocation attempt by result.
func (c *Collector) KeyRevoked(result string) { c.KeysRevoked.WithLabelValues(result).Inc() }

// AuthFailed counts a rejected credential by reason.
func (c *Collector) AuthFailed(reason string) { c.AuthFailures.WithLabelValues(reason).Inc() }

// ObserveKeyStore exports the number of live keys as thermogate_keys_active.
func (c *Collector) ObserveKeyStore(keys ports.KeyStore) {
	promauto.With(c.reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys_active",
			Help:      "Number of API keys currently valid",
		},
		func() float64 { return float64(keys.Len()) },
	)
}

// ObserveUsage exports the usage counters as thermogate_conversions_total.
func (c *Collector) ObserveUsage(counters ports.UsageCounters) {
	c.reg.MustRegister(NewUsageCollector(counters))
}

// UsageCollector reads a counter snapshot on every scrape.
type UsageCollector struct {
	counters ports.UsageCounters
	desc     *prometheus.Desc
}

// NewUsageCollector creates a collector over counters.
func NewUsageCollector(counters ports.UsageCounters) *UsageCollector {
	return &UsageCollector{
		counters: counters,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "conversions_total"),
			"Total number of accounted conversions by operation",
			[]string{"operation"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (u *UsageCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- u.desc
}

// Collect implements prometheus.Collector.
func (u *UsageCollector) Collect(ch chan<- prometheus.Metric) {
	snap := u.counters.Snapshot().WithKnown()
	for _, name := range snap.Names() {
		ch <- prometheus.MustNewConstMetric(u.desc, prometheus.CounterValue, float64(snap[usage.Operation(name)]), name)
	}
}

var dynamicRoutes = []struct{ prefix, pattern string }{
	{"/api/to-celsius/", "/api/to-celsius/{value}"},
	{"/api/to-fahrenheit/", "/api/to-fahrenheit/{value}"},
	{"/api-key/", "/api-key/{token}"},
}

// NormalizePath keeps label cardinality bounded. Callers should prefer the
// matched route pattern; raw paths are truncated after the first dynamic
// segment of the known API prefixes.
func NormalizePath(path string) string {
	for _, r := range dynamicRoutes {
		if strings.HasPrefix(path, r.prefix) {
			return r.pattern
		}
	}
	if len(path) > 50 {
		return path[:50] + "..."
	}
	return path
}
