// Package metrics provides custom Prometheus metrics for the rock bee monitoring backend.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ClassifierMetrics contains all Prometheus metrics related to classifier operations.
type ClassifierMetrics struct {
	DetectionCounter    *prometheus.CounterVec
	PredictionDuration  prometheus.Histogram
	PredictionErrors    *prometheus.CounterVec
	ModelLoadedGauge    prometheus.Gauge

	registry *prometheus.Registry
}

// NewClassifierMetrics creates a new instance of ClassifierMetrics.
// It requires a Prometheus registry to register the metrics.
// It returns an error if metric registration fails.
func NewClassifierMetrics(registry *prometheus.Registry) (*ClassifierMetrics, error) {
	m := &ClassifierMetrics{registry: registry}
	m.initMetrics()

	collectors := []prometheus.Collector{
		m.DetectionCounter,
		m.PredictionDuration,
		m.PredictionErrors,
		m.ModelLoadedGauge,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register classifier metrics: %w", err)
		}
	}

	return m, nil
}

// initMetrics initializes all metrics for ClassifierMetrics.
func (m *ClassifierMetrics) initMetrics() {
	m.DetectionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rockbee_detections_total",
			Help: "Total number of classifications partitioned by label and status.",
		},
		[]string{"label", "status"},
	)

	m.PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rockbee_prediction_duration_seconds",
			Help:    "Time taken to preprocess an image and perform a prediction.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~1s
		},
	)

	m.PredictionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rockbee_prediction_errors_total",
			Help: "Total number of failed predictions partitioned by error category.",
		},
		[]string{"category"},
	)

	m.ModelLoadedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rockbee_model_loaded",
			Help: "Whether the TensorFlow Lite model is loaded (1) or not (0).",
		},
	)
}

// RecordDetection increments the detection counter for the given label and status.
func (m *ClassifierMetrics) RecordDetection(label, status string) {
	m.DetectionCounter.WithLabelValues(label, status).Inc()
}

// RecordPredictionDuration observes the duration of a completed prediction in seconds.
func (m *ClassifierMetrics) RecordPredictionDuration(seconds float64) {
	m.PredictionDuration.Observe(seconds)
}

// RecordPredictionError increments the prediction error counter for the given category.
func (m *ClassifierMetrics) RecordPredictionError(category string) {
	m.PredictionErrors.WithLabelValues(category).Inc()
}

// SetModelLoaded records whether the model is currently loaded.
func (m *ClassifierMetrics) SetModelLoaded(loaded bool) {
	if loaded {
		m.ModelLoadedGauge.Set(1)
	} else {
		m.ModelLoadedGauge.Set(0)
	}
}
