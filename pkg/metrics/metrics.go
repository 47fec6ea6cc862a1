package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "accountd", Name: "auth_attempts_total", Help: "Register/login attempts by operation and outcome."},
		[]string{"op", "outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "accountd", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "accountd", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(AuthAttempts)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
