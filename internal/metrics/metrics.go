// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesWritten counts expense mutations by operation.
	ExpensesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moneta_expenses_written_total",
			Help: "Total number of expense mutations by operation",
		},
		[]string{"op"}, // create, update, delete
	)

	// BudgetAdjustments counts changes applied to budget used amounts.
	BudgetAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moneta_budget_adjustments_total",
			Help: "Total number of budget used-amount adjustments by kind",
		},
		[]string{"kind"}, // seed, add, update, subtract
	)

	// RemindersScheduled counts one-shot jobs enqueued for reminders.
	RemindersScheduled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moneta_reminders_scheduled_total",
			Help: "Total number of reminder jobs scheduled",
		},
	)

	// JobsProcessed counts deferred jobs by result.
	JobsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moneta_jobs_processed_total",
			Help: "Total number of deferred jobs processed by result",
		},
		[]string{"result"}, // done, failed
	)

	// Pushes counts push attempts by provider and result.
	Pushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moneta_pushes_total",
			Help: "Total number of push notifications by provider and result",
		},
		[]string{"provider", "result"},
	)

	// ListenerSubscribers tracks live expense listeners.
	ListenerSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moneta_listener_subscribers",
			Help: "Number of active live expense listeners",
		},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moneta_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Result maps an error to a result label.
func Result(err error) string {
	if err != nil {
		return "failed"
	}
	return "done"
}

// Middleware records the duration of every request under its route pattern.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
