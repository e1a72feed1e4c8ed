package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hagiodex"

// PrometheusRecorder exports counters through a Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	accounts      *prometheus.CounterVec
	logins        *prometheus.CounterVec
	authRejected  prometheus.Counter
	catalogWrites *prometheus.CounterVec
}

// NewPrometheus creates a recorder backed by its own registry. Go runtime
// and process collectors are registered alongside the application counters.
func NewPrometheus() *PrometheusRecorder {
	p := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		accounts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_events_total",
			Help:      "Account lifecycle events by type.",
		}, []string{"event"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"status"}),
		authRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejected_total",
			Help:      "Requests rejected for a missing or invalid bearer token.",
		}),
		catalogWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_writes_total",
			Help:      "Catalog mutations by kind and operation.",
		}, []string{"kind", "op"}),
	}

	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.accounts,
		p.logins,
		p.authRejected,
		p.catalogWrites,
	)
	return p
}

// Gatherer returns the registry for exposition.
func (p *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return p.registry
}

// IncAccountRegistered increments the registration counter.
func (p *PrometheusRecorder) IncAccountRegistered() {
	p.accounts.WithLabelValues("registered").Inc()
}

// IncAccountUpdated increments the account update counter.
func (p *PrometheusRecorder) IncAccountUpdated() {
	p.accounts.WithLabelValues("updated").Inc()
}

// IncAccountDeleted increments the account deletion counter.
func (p *PrometheusRecorder) IncAccountDeleted() {
	p.accounts.WithLabelValues("deleted").Inc()
}

// IncLogin increments the login counter for status.
func (p *PrometheusRecorder) IncLogin(status string) {
	p.logins.WithLabelValues(status).Inc()
}

// IncAuthRejected increments the rejected bearer token counter.
func (p *PrometheusRecorder) IncAuthRejected() {
	p.authRejected.Inc()
}

// IncCatalogWrite increments the catalog write counter for kind and op.
func (p *PrometheusRecorder) IncCatalogWrite(kind, op string) {
	p.catalogWrites.WithLabelValues(kind, op).Inc()
}
