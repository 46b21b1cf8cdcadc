// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "xlike_feed"

var (
	RecordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "records_loaded",
		Help:      "Number of records in the loaded dataset.",
	})

	LinesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loader_lines_skipped_total",
		Help:      "Input lines skipped because they could not be parsed as a record.",
	})

	DatasetLoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataset_load_failures_total",
		Help:      "Dataset loads that fell back to an empty record set.",
	})

	ViewComputeSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "view_compute_seconds",
		Help:      "Time spent filtering, sorting and paginating a view.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route template and status code.",
	}, []string{"route", "code"})
)
