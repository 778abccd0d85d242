package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	statementFilesProcessed   *prometheus.CounterVec
	statementFileDuration     prometheus.Histogram
	statementRowsImported     prometheus.Gauge
	suggestionsTotal          *prometheus.CounterVec
	propagationsTotal         *prometheus.CounterVec
	propagationUpdatedRows    prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		statementFilesProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "statement_files_processed_total",
				Help: "Total number of statement files processed",
			},
			[]string{"status"},
		),
		statementFileDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "statement_file_processing_duration_milliseconds",
				Help:    "Statement file processing duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		statementRowsImported: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "statement_rows_imported",
				Help: "Number of transaction rows imported by the latest upload",
			},
		),
		suggestionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "category_suggestions_total",
				Help: "Total number of category suggestions by source",
			},
			[]string{"source"},
		),
		propagationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "category_propagations_total",
				Help: "Total number of bulk category changes",
			},
			[]string{"operation"},
		),
		propagationUpdatedRows: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "category_propagation_updated_rows",
				Help:    "Number of transactions updated per bulk category change",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "statement.file.processed":
		if status := tags["status"]; status != "" {
			m.statementFilesProcessed.WithLabelValues(status).Inc()
		}
	case "category.suggestion":
		if source := tags["source"]; source != "" {
			m.suggestionsTotal.WithLabelValues(source).Inc()
		}
	case "category.propagation":
		if operation := tags["operation"]; operation != "" {
			m.propagationsTotal.WithLabelValues(operation).Inc()
		}
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "statement.file.processing":
		m.statementFileDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "statement.rows.imported":
		m.statementRowsImported.Set(value)
	case "category.propagation.updated":
		m.propagationUpdatedRows.Observe(value)
	}
}
