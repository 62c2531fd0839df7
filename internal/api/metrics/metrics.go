// Package metrics defines the custom Prometheus metrics of the loan API. It is
// the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered on the registry passed to New so every router owns
// its own set; the same registry backs the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/loandesk/loan-api/internal/core/domain"
)

const namespace = "loans"

// Metrics implements ports.LoanEvents and counts authorization denials.
type Metrics struct {
	// LoansCreatedTotal counts newly created loan requests.
	// Label:
	//   - currency: "EUR" or "USD"
	LoansCreatedTotal *prometheus.CounterVec

	// StatusTransitionsTotal counts accepted status changes, no-ops included.
	// Labels:
	//   - from, to: canonical statuses (e.g. "Pending", "Approved")
	StatusTransitionsTotal *prometheus.CounterVec

	// LoansDeletedTotal counts deleted loan requests.
	LoansDeletedTotal prometheus.Counter

	// AuthorizationDenialsTotal counts requests stopped before the handler ran.
	// Label:
	//   - reason: "unauthenticated", "role", "ownership" or "not_found"
	AuthorizationDenialsTotal *prometheus.CounterVec
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoansCreatedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Total number of loan requests created, by currency.",
		}, []string{"currency"}),
		StatusTransitionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Total number of accepted loan status changes.",
		}, []string{"from", "to"}),
		LoansDeletedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deleted_total",
			Help:      "Total number of loan requests deleted.",
		}),
		AuthorizationDenialsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_denials_total",
			Help:      "Total number of requests rejected by the authorization guard.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) LoanCreated(currency domain.Currency) {
	m.LoansCreatedTotal.WithLabelValues(string(currency)).Inc()
}

func (m *Metrics) StatusChanged(from, to domain.LoanStatus) {
	m.StatusTransitionsTotal.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) LoanDeleted() {
	m.LoansDeletedTotal.Inc()
}

// Denied records a rejected request. Safe to call on a nil *Metrics.
func (m *Metrics) Denied(reason string) {
	if m == nil {
		return
	}
	m.AuthorizationDenialsTotal.WithLabelValues(reason).Inc()
}
