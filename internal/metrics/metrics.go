// Package metrics counts the work done by an export run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "meetup_data"

// Collector holds the run counters on its own registry, so several runs in
// one process (tests) never share state.
type Collector struct {
	registry *prometheus.Registry

	pagesFetched    prometheus.Counter
	recordsFetched  prometheus.Counter
	recordsExported prometheus.Counter
	requestFailures *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its counters.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Number of pages fetched successfully.",
		}),
		recordsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_fetched_total",
			Help:      "Number of records received from the API.",
		}),
		recordsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_exported_total",
			Help:      "Number of records written to the output.",
		}),
		requestFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_failures_total",
			Help:      "Number of failed page requests by reason.",
		}, []string{"reason"}),
	}

	c.registry.MustRegister(c.pagesFetched, c.recordsFetched, c.recordsExported, c.requestFailures)
	return c
}

// PageFetched records one successful page carrying records items.
func (c *Collector) PageFetched(records int) {
	c.pagesFetched.Inc()
	c.recordsFetched.Add(float64(records))
}

// RequestFailed records a failed request. reason is one of the paginator.Reason values.
func (c *Collector) RequestFailed(reason string) {
	c.requestFailures.WithLabelValues(reason).Inc()
}

// RecordsExported records how many records reached the output.
func (c *Collector) RecordsExported(n int) {
	c.recordsExported.Add(float64(n))
}

// WriteTextfile dumps the registry in the text exposition format, the way the
// node_exporter textfile collector expects it. The file is replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
