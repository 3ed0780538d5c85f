package auth

import (
	"context"

	"github.com/brightline-events/siteadmin/internal/metrics"
)

// MetricsHook counts auth results in Prometheus.
type MetricsHook struct{}

// NewMetricsHook constructs a MetricsHook.
func NewMetricsHook() *MetricsHook {
	return &MetricsHook{}
}

// OnResult increments the attempt counter and the lockout counter when applicable.
func (h *MetricsHook) OnResult(_ context.Context, result Result) {
	source := string(result.Source)
	if source == "" {
		source = "none"
	}
	outcome := "success"
	if result.Err != nil {
		outcome = string(ReasonOf(result.Err))
	}
	metrics.AuthAttemptsTotal.WithLabelValues(source, outcome).Inc()
	if result.Locked {
		metrics.AccountLockoutsTotal.Inc()
	}
}
