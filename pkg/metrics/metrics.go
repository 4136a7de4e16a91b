package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a registry so several apps (tests) can coexist in one process.
type Metrics struct {
	ServiceName string

	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	statusCategory  *prometheus.CounterVec
	fetchFailures   prometheus.Counter
	staleLoads      prometheus.Counter
	contactMessages *prometheus.CounterVec
}

// New creates and registers the service collectors.
func New(serviceName string) *Metrics {
	m := &Metrics{
		ServiceName: serviceName,
		registry:    prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path", "status"},
		),
		statusCategory: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_status_category_total",
				Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"service", "category"},
		),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_fetch_failures_total",
			Help: "Catalog fetches that fell back to an empty listing",
		}),
		staleLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_stale_loads_total",
			Help: "Listing loads discarded because the same shopper started a newer load",
		}),
		contactMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contact_messages_total",
				Help: "Contact form submissions by outcome",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.statusCategory,
		m.fetchFailures,
		m.staleLoads,
		m.contactMessages,
	)
	return m
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	statusStr := strconv.Itoa(status)
	m.requests.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
	m.requestDuration.WithLabelValues(m.ServiceName, method, path, statusStr).Observe(seconds)
	if category := statusCategory(status); category != "" {
		m.statusCategory.WithLabelValues(m.ServiceName, category).Inc()
	}
}

// FetchFailed counts a catalog fetch failure.
func (m *Metrics) FetchFailed() { m.fetchFailures.Inc() }

// StaleLoad counts a discarded listing load.
func (m *Metrics) StaleLoad() { m.staleLoads.Inc() }

// ContactMessage counts a contact submission with the given outcome.
func (m *Metrics) ContactMessage(outcome string) {
	m.contactMessages.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}
