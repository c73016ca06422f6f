package application

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts workflow outcomes. A nil *Metrics records nothing.
type Metrics struct {
	AuthEvents *prometheus.CounterVec
	EmailsSent *prometheus.CounterVec
}

// NewMetrics creates and registers the workflow counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_events_total",
				Help: "Account workflow calls by event and result",
			},
			[]string{"event", "result"},
		),
		EmailsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_emails_total",
				Help: "Outgoing emails by template and result",
			},
			[]string{"template", "result"},
		),
	}
	reg.MustRegister(m.AuthEvents, m.EmailsSent)
	return m
}

func (m *Metrics) event(name string, err error) {
	if m == nil {
		return
	}
	m.AuthEvents.WithLabelValues(name, resultLabel(err)).Inc()
}

func (m *Metrics) email(template string, err error) {
	if m == nil {
		return
	}
	m.EmailsSent.WithLabelValues(template, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	for _, r := range []error{ErrNotFound, ErrDuplicateEmail, ErrInvalidCredentials, ErrEmailNotVerified, ErrInvalidToken} {
		if errors.Is(err, r) {
			return "rejected"
		}
	}
	return "error"
}
