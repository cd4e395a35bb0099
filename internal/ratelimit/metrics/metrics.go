package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AuthFailures     prometheus.Counter
	AuthLockouts     prometheus.Counter
	AuthLockedChecks prometheus.Counter
}

// New registers the lockout metrics with reg, or the default registry when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "screenboard_ratelimit_auth_failures_recorded_total",
			Help: "Total number of failed logins recorded for lockout",
		}),
		AuthLockouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "screenboard_ratelimit_auth_lockouts_total",
			Help: "Total number of times an identifier reached the failure threshold",
		}),
		AuthLockedChecks: factory.NewCounter(prometheus.CounterOpts{
			Name: "screenboard_ratelimit_auth_locked_rejections_total",
			Help: "Total number of login attempts rejected because the identifier was locked",
		}),
	}
}

func (m *Metrics) IncrementAuthFailures() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

func (m *Metrics) IncrementAuthLockouts() {
	if m != nil {
		m.AuthLockouts.Inc()
	}
}

func (m *Metrics) IncrementLockedRejections() {
	if m != nil {
		m.AuthLockedChecks.Inc()
	}
}
