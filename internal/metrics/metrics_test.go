package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ShareLinkIssued(true)
	m.ShareLinkIssued(false)
	m.ShareLinkIssued(false)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShareLinksIssued.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ShareLinksIssued.WithLabelValues(OutcomeReused)))

	m.ReminderStatusesUpdated("sweep", 3)
	m.ReminderStatusesUpdated("sweep", 0)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ReminderStatusUpdates.WithLabelValues("sweep")))

	m.ReminderSweep(nil)
	m.ReminderSweep(errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReminderSweeps.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReminderSweeps.WithLabelValues("error")))
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ShareLinkIssued(true)
		m.ReminderStatusesUpdated("read", 1)
		m.ReminderSweep(nil)
	})
}
