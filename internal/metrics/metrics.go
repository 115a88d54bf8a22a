// Package metrics exposes domain counters for share-link issuance and reminder upkeep.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Share-link issuance outcomes.
const (
	OutcomeCreated = "created"
	OutcomeReused  = "reused"
)

// Metrics holds the domain collectors. A nil *Metrics is valid and records nothing.
//
// Metrics:
//   - projectapi_share_links_issued_total{outcome} - Ensure calls by created/reused
//   - projectapi_reminder_status_updates_total{source} - persisted status changes by sweep/read
//   - projectapi_reminder_sweeps_total{result} - sweeper runs by ok/error
type Metrics struct {
	ShareLinksIssued      *prometheus.CounterVec
	ReminderStatusUpdates *prometheus.CounterVec
	ReminderSweeps        *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ShareLinksIssued: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectapi_share_links_issued_total",
				Help: "Share link requests by outcome.",
			},
			[]string{"outcome"},
		),
		ReminderStatusUpdates: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectapi_reminder_status_updates_total",
				Help: "Reminder status changes written to the database.",
			},
			[]string{"source"},
		),
		ReminderSweeps: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectapi_reminder_sweeps_total",
				Help: "Reminder sweep runs by result.",
			},
			[]string{"result"},
		),
	}
}

// ShareLinkIssued counts one Ensure call.
func (m *Metrics) ShareLinkIssued(created bool) {
	if m == nil {
		return
	}
	outcome := OutcomeReused
	if created {
		outcome = OutcomeCreated
	}
	m.ShareLinksIssued.WithLabelValues(outcome).Inc()
}

// ReminderStatusesUpdated adds n persisted status changes attributed to source.
func (m *Metrics) ReminderStatusesUpdated(source string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.ReminderStatusUpdates.WithLabelValues(source).Add(float64(n))
}

// ReminderSweep counts one sweeper run.
func (m *Metrics) ReminderSweep(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ReminderSweeps.WithLabelValues(result).Inc()
}
