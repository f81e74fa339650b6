/*
Copyright (c) 2025 Odd Kin <oddkin@oddkin.co>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Registry is where the recorder registers its collectors and where the
// push gateway reads them from
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// PrometheusRecorder implements MetricsRecorder using Prometheus metrics
type PrometheusRecorder struct {
	registry            Registry
	publicationTotal    *prometheus.CounterVec
	publicationDuration *prometheus.HistogramVec
	targetTotal         *prometheus.CounterVec
	targetDuration      *prometheus.HistogramVec
	uploadedBytes       *prometheus.CounterVec
	artifactLoadTotal   *prometheus.CounterVec
	artifactLoadSeconds *prometheus.HistogramVec
	activePublications  *prometheus.GaugeVec
}

// NewPrometheusRecorder creates a new PrometheusRecorder and registers its
// metrics on registry, or on the controller-runtime registry when nil
func NewPrometheusRecorder(registry Registry) *PrometheusRecorder {
	if registry == nil {
		registry = metrics.Registry
	}

	recorder := &PrometheusRecorder{
		registry: registry,
		publicationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_publisher_publication_total",
				Help: "Total number of publication runs by terminal state",
			},
			[]string{"state"},
		),
		publicationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_publisher_publication_duration_seconds",
				Help:    "Duration of publication runs in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"state"},
		),
		targetTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_publisher_target_total",
				Help: "Total number of per-registry results by outcome",
			},
			[]string{"registry", "outcome"},
		),
		targetDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_publisher_target_duration_seconds",
				Help:    "Duration of per-registry publication in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"registry", "outcome"},
		),
		uploadedBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_publisher_uploaded_bytes_total",
				Help: "Total bytes accepted by each registry",
			},
			[]string{"registry"},
		),
		artifactLoadTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "registry_publisher_artifact_load_total",
				Help: "Total number of artifact references loaded",
			},
			[]string{"scheme", "success"},
		),
		artifactLoadSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "registry_publisher_artifact_load_duration_seconds",
				Help:    "Duration of artifact loads in seconds",
				Buckets: []float64{0.01, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"scheme", "success"},
		),
		activePublications: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "registry_publisher_active_publications",
				Help: "Number of registries currently being published to",
			},
			[]string{"registry"},
		),
	}

	registry.MustRegister(
		recorder.publicationTotal,
		recorder.publicationDuration,
		recorder.targetTotal,
		recorder.targetDuration,
		recorder.uploadedBytes,
		recorder.artifactLoadTotal,
		recorder.artifactLoadSeconds,
		recorder.activePublications,
	)

	return recorder
}

// Gatherer returns the registry the recorder writes to
func (r *PrometheusRecorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordPublication records a whole run with its terminal state
func (r *PrometheusRecorder) RecordPublication(state string, duration time.Duration) {
	r.publicationTotal.WithLabelValues(state).Inc()
	r.publicationDuration.WithLabelValues(state).Observe(duration.Seconds())
}

// RecordTargetResult records the outcome of publishing to one registry
func (r *PrometheusRecorder) RecordTargetResult(registry, outcome string, duration time.Duration, bytes int64) {
	r.targetTotal.WithLabelValues(registry, outcome).Inc()
	r.targetDuration.WithLabelValues(registry, outcome).Observe(duration.Seconds())
	if bytes > 0 {
		r.uploadedBytes.WithLabelValues(registry).Add(float64(bytes))
	}
}

// RecordArtifactLoad records loading one artifact reference
func (r *PrometheusRecorder) RecordArtifactLoad(scheme string, success bool, duration time.Duration) {
	successLabel := "false"
	if success {
		successLabel = "true"
	}

	r.artifactLoadTotal.WithLabelValues(scheme, successLabel).Inc()
	r.artifactLoadSeconds.WithLabelValues(scheme, successLabel).Observe(duration.Seconds())
}

// IncActivePublications increments the count of in-flight target publications
func (r *PrometheusRecorder) IncActivePublications(registry string) {
	r.activePublications.WithLabelValues(registry).Inc()
}

// DecActivePublications decrements the count of in-flight target publications
func (r *PrometheusRecorder) DecActivePublications(registry string) {
	r.activePublications.WithLabelValues(registry).Dec()
}
