// Package metrics exposes Prometheus collectors for prediction traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alzrisk"

// Collector implements predictor.Observer.
type Collector struct {
	predictions *prometheus.CounterVec
	duration    prometheus.Histogram
	errors      *prometheus.CounterVec
}

// New registers the prediction collectors with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Completed predictions by risk label.",
		}, []string{"label"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "prediction_duration_seconds",
			Help:      "Time spent mapping features and evaluating the model.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_errors_total",
			Help:      "Failed predictions by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(c.predictions, c.duration, c.errors)
	return c
}

func (c *Collector) ObservePrediction(label string, elapsed time.Duration) {
	c.predictions.WithLabelValues(label).Inc()
	c.duration.Observe(elapsed.Seconds())
}

func (c *Collector) ObserveError(reason string) {
	c.errors.WithLabelValues(reason).Inc()
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves the exposition format for reg.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
