package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's prometheus instruments behind its own
// registry. A nil *Collector is valid and turns every record call into a
// no-op, so tests and wiring code can skip metrics entirely.
type Collector struct {
	registry *prometheus.Registry

	loansCreated     prometheus.Counter
	loansClosed      prometheus.Counter
	paymentsRecorded *prometheus.CounterVec
	notifications    *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		loansCreated: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "Total number of loans created",
		}),
		loansClosed: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "loans_closed_total",
			Help: "Total number of loans automatically closed by full repayment",
		}),
		paymentsRecorded: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Total number of repayment events recorded",
		}, []string{"type"}),
		notifications: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification dispatch outcomes",
		}, []string{"event", "outcome"}),
	}
}

func (c *Collector) LoanCreated() {
	if c == nil {
		return
	}
	c.loansCreated.Inc()
}

func (c *Collector) LoanClosed() {
	if c == nil {
		return
	}
	c.loansClosed.Inc()
}

func (c *Collector) PaymentRecorded(paymentType string) {
	if c == nil {
		return
	}
	c.paymentsRecorded.WithLabelValues(paymentType).Inc()
}

func (c *Collector) Notification(event, outcome string) {
	if c == nil {
		return
	}
	c.notifications.WithLabelValues(event, outcome).Inc()
}

// Handler exposes the registry in prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
