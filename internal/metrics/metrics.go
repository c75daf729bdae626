// Package metrics defines the Prometheus metrics served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Logins counts login attempts by outcome: ok, bad_password, unknown_email.
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmacore_logins_total",
			Help: "Login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	// AuthzDenials counts permission checks that ended in 403, by module.
	AuthzDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmacore_authz_denials_total",
			Help: "Authorization denials by protected module.",
		},
		[]string{"module"},
	)

	// SessionsSwept counts sessions purged by the expiry sweeper.
	SessionsSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farmacore_sessions_swept_total",
			Help: "Expired sessions removed by the sweeper.",
		},
	)
)
