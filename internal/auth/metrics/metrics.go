package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gate variants.
const (
	VariantInteractive = "interactive"
	VariantDeclarative = "declarative"
)

// Metrics provides observability for the auth module: gate decisions, login
// outcomes and ownership denials.
type Metrics struct {
	AuthDecisions     *prometheus.CounterVec
	LoginOutcomes     *prometheus.CounterVec
	OwnershipDenials  prometheus.Counter
	AuthenticateDelay prometheus.Histogram
}

// New registers the auth metrics with reg, or the default registry when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		AuthDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "screenboard_auth_decisions_total",
			Help: "Authentication gate decisions by variant and outcome",
		}, []string{"variant", "outcome"}),
		LoginOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "screenboard_login_outcomes_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		OwnershipDenials: factory.NewCounter(prometheus.CounterOpts{
			Name: "screenboard_ownership_denials_total",
			Help: "Requests refused because the principal did not own the resource",
		}),
		AuthenticateDelay: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "screenboard_authenticate_duration_seconds",
			Help:    "Duration of session token lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementAuthDecision records a gate outcome ("allow", "deny" or "error").
func (m *Metrics) IncrementAuthDecision(variant, outcome string) {
	if m != nil {
		m.AuthDecisions.WithLabelValues(variant, outcome).Inc()
	}
}

// IncrementLogin records a login outcome.
func (m *Metrics) IncrementLogin(outcome string) {
	if m != nil {
		m.LoginOutcomes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncrementOwnershipDenied() {
	if m != nil {
		m.OwnershipDenials.Inc()
	}
}

// ObserveAuthenticate records the duration of a session lookup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAuthenticate(start time.Time) {
	if m != nil {
		m.AuthenticateDelay.Observe(time.Since(start).Seconds())
	}
}
