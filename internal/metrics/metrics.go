package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// metricsOnce ensures metrics are registered only once
	metricsOnce sync.Once

	// extractionRunsTotal tracks extraction runs by vendor and outcome
	extractionRunsTotal *prometheus.CounterVec

	// extractionDuration tracks fetch+extract latency per vendor
	extractionDuration *prometheus.HistogramVec

	// incidentsExtracted tracks real incidents found in the latest run
	incidentsExtracted *prometheus.GaugeVec

	// notificationsTotal tracks delivery attempts by channel and outcome
	notificationsTotal *prometheus.CounterVec
)

// Init registers all Prometheus metrics.
// This should be called once at application startup.
func Init() {
	metricsOnce.Do(func() {
		extractionRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statuswatch_extraction_runs_total",
				Help: "Total number of extraction runs by vendor and outcome",
			},
			[]string{"vendor", "outcome"},
		)

		extractionDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "statuswatch_extraction_duration_seconds",
				Help:    "Duration of fetch and extraction per vendor in seconds",
				Buckets: []float64{0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"vendor"},
		)

		incidentsExtracted = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statuswatch_incidents_extracted",
				Help: "Real (non-scheduled) incidents extracted in the latest run",
			},
			[]string{"vendor"},
		)

		notificationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statuswatch_notifications_total",
				Help: "Total notification deliveries by channel and outcome",
			},
			[]string{"channel", "outcome"},
		)
	})
}

// RecordRun records one completed extraction run.
func RecordRun(vendor string, incidents int, duration time.Duration, ok bool) {
	if extractionRunsTotal == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	extractionRunsTotal.WithLabelValues(vendor, outcome).Inc()
	extractionDuration.WithLabelValues(vendor).Observe(duration.Seconds())
	incidentsExtracted.WithLabelValues(vendor).Set(float64(incidents))
}

// RecordNotification records one delivery attempt.
func RecordNotification(channel string, err error) {
	if notificationsTotal == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	notificationsTotal.WithLabelValues(channel, outcome).Inc()
}
