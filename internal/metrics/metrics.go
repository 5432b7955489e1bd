// Package metrics counts accessor calls made by the CLI.
//
// Metrics live on a private registry so nothing leaks into the default
// Prometheus registry of a program embedding the accessors. They are written
// once at exit in text exposition format, suitable for the node-exporter
// textfile collector.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/systmms/aws-secrets/pkg/awssecrets"
)

// Operation labels
const (
	OpGetParameter = "get_parameter"
	OpGetSecret    = "get_secret"
	OpSetTag       = "set_tag"
)

// Recorder records accessor outcomes. A nil Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates a Recorder with its own registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aws_secrets_requests_total",
				Help: "Total number of accessor calls by outcome",
			},
			[]string{"operation", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aws_secrets_request_duration_seconds",
				Help:    "Duration of accessor calls in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
	}
}

// Outcome is the label value recorded for err: "success", "cancelled" for
// calls abandoned through their context, the classified reason for service
// errors, or the error kind for local failures.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	switch {
	case errors.Is(err, awssecrets.ErrDeserialize):
		return awssecrets.KindDeserialize.String()
	case errors.Is(err, awssecrets.ErrMalformedResponse):
		return awssecrets.KindMalformedResponse.String()
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	return awssecrets.Classify(err).String()
}

// Observe records one call that started at start
func (r *Recorder) Observe(operation string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.requestsTotal.WithLabelValues(operation, Outcome(err)).Inc()
	r.requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Gatherer exposes the private registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path atomically
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
