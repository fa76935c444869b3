package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service's prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestTotal    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestInFlight prometheus.Gauge

	DocumentsCreated    prometheus.Counter
	VersionsCreated     prometheus.Counter
	DocumentsDeleted    prometheus.Counter
	StorageBytesWritten prometheus.Counter
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		RequestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   "docuvault",
				Subsystem:   "http",
				Name:        "requests_total",
				Help:        "Total HTTP requests processed.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   "docuvault",
				Subsystem:   "http",
				Name:        "request_duration_seconds",
				Help:        "HTTP request duration in seconds.",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"method", "path"},
		),
		RequestInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace:   "docuvault",
				Subsystem:   "http",
				Name:        "requests_in_flight",
				Help:        "HTTP requests currently being served.",
				ConstLabels: prometheus.Labels{"service": service},
			},
		),
		DocumentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docuvault",
			Name:      "documents_created_total",
			Help:      "Documents created.",
		}),
		VersionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docuvault",
			Name:      "versions_created_total",
			Help:      "Document versions committed.",
		}),
		DocumentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docuvault",
			Name:      "documents_deleted_total",
			Help:      "Documents deleted with their versions and files.",
		}),
		StorageBytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docuvault",
			Name:      "storage_bytes_written_total",
			Help:      "Bytes written to the byte store.",
		}),
	}

	registry.MustRegister(
		m.RequestTotal,
		m.RequestDuration,
		m.RequestInFlight,
		m.DocumentsCreated,
		m.VersionsCreated,
		m.DocumentsDeleted,
		m.StorageBytesWritten,
	)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
