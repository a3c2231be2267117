// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	TimersStarted   prometheus.Counter
	TimersFinished  prometheus.Counter
	TimersStopped   prometheus.Counter
	EditsPushed     prometheus.Counter
	EditsSuppressed prometheus.Counter
	MilestonesSent  prometheus.Counter
	CommandsHandled *prometheus.CounterVec

	// Gauges
	ActiveTimersGauge prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		TimersStarted = promauto.NewCounter(prometheus.CounterOpts{Name: "timer_started_total", Help: "Number of timers started"})
		TimersFinished = promauto.NewCounter(prometheus.CounterOpts{Name: "timer_finished_total", Help: "Number of timers that ran to zero"})
		TimersStopped = promauto.NewCounter(prometheus.CounterOpts{Name: "timer_stopped_total", Help: "Number of timers stopped before expiry"})
		EditsPushed = promauto.NewCounter(prometheus.CounterOpts{Name: "timer_embed_edits_total", Help: "Number of embed edits sent to the chat API"})
		EditsSuppressed = promauto.NewCounter(prometheus.CounterOpts{Name: "timer_embed_edits_suppressed_total", Help: "Number of tick frames coalesced by the edit gate"})
		MilestonesSent = promauto.NewCounter(prometheus.CounterOpts{Name: "timer_milestones_sent_total", Help: "Number of milestone side-channel messages sent"})
		CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{Name: "bot_commands_handled_total", Help: "Commands and button interactions handled, by verb"}, []string{"verb"})
		ActiveTimersGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "timer_active", Help: "Current number of live timers"})
	})
}

// SetActiveTimers records the current live timer count.
func SetActiveTimers(n int) {
	if ActiveTimersGauge != nil {
		ActiveTimersGauge.Set(float64(n))
	}
}

// CountCommand increments the handled-command counter for a verb.
func CountCommand(verb string) {
	if CommandsHandled != nil {
		CommandsHandled.WithLabelValues(verb).Inc()
	}
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding correlation id (if absent) and the id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
