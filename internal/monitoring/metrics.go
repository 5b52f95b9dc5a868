package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the extraction engine.
type Metrics struct {
	RecordsTotal      *prometheus.CounterVec
	ErrorsTotal       *prometheus.CounterVec
	ExtractionSeconds *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		RecordsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "news_records_extracted_total",
			Help: "The total number of news records extracted, per site",
		}, []string{"source"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "news_extraction_errors_total",
			Help: "The total number of extraction errors, per site and stage",
		}, []string{"source", "stage"}), // stages: resolve, init, session, listing
		ExtractionSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "news_extraction_duration_seconds",
			Help:    "Wall-clock duration of one site extraction run",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"source"}),
	}
}

func (m *Metrics) RecordsExtracted(site string, n int) {
	m.RecordsTotal.WithLabelValues(site).Add(float64(n))
}

func (m *Metrics) ExtractionError(site, stage string) {
	m.ErrorsTotal.WithLabelValues(site, stage).Inc()
}

func (m *Metrics) ObserveExtraction(site string, d time.Duration) {
	m.ExtractionSeconds.WithLabelValues(site).Observe(d.Seconds())
}
