// Package metrics exposes Prometheus instrumentation for the catalog.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gameapi"

// Registry owns every collector the service exports.
type Registry struct {
	registry *prometheus.Registry

	fetchDuration *prometheus.HistogramVec
	fetchTotal    *prometheus.CounterVec
	entriesTotal  *prometheus.CounterVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "provider_fetch_duration_seconds",
			Help:      "Duration of catalog provider calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "provider_fetch_total",
			Help:      "Catalog provider calls by outcome.",
		}, []string{"provider", "outcome"}),
		entriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "provider_entries_total",
			Help:      "Entries returned by catalog providers.",
		}, []string{"provider"}),
	}
	reg.MustRegister(r.fetchDuration, r.fetchTotal, r.entriesTotal)
	return r
}

// ObserveFetch records one provider call.
func (r *Registry) ObserveFetch(provider string, d time.Duration, entries int, err error) {
	r.fetchDuration.WithLabelValues(provider).Observe(d.Seconds())
	r.fetchTotal.WithLabelValues(provider, outcome(err)).Inc()
	if err == nil {
		r.entriesTotal.WithLabelValues(provider).Add(float64(entries))
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
