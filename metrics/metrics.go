package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	permissionSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scms",
		Subsystem: "permissions",
		Name:      "saves_total",
		Help:      "Total number of folder permission saves broken down by result.",
	}, []string{"result"})

	permissionRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "scms",
		Subsystem: "permissions",
		Name:      "rows_per_save",
		Help:      "Number of permission rows in successful saves.",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	formEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scms",
		Subsystem: "permissions",
		Name:      "form_events_total",
		Help:      "Total number of permission form events broken down by kind.",
	}, []string{"kind"})

	logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "scms",
		Subsystem: "backend",
		Name:      "logins_total",
		Help:      "Total number of login attempts broken down by result.",
	}, []string{"result"})
)

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}

// RecordPermissionSave counts a save attempt. rows is observed for successful saves only.
func RecordPermissionSave(ok bool, rows int) {
	permissionSaves.WithLabelValues(result(ok)).Inc()
	if ok {
		permissionRows.Observe(float64(rows))
	}
}

func RecordFormEvent(kind string) {
	formEvents.WithLabelValues(kind).Inc()
}

func RecordLogin(ok bool) {
	logins.WithLabelValues(result(ok)).Inc()
}
