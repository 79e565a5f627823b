// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

package wif

import "github.com/prometheus/client_golang/prometheus"

// Metrics cover the two request routes (info.json vs. derivative), a
// fast-path hit counter for requests served without a full decode, and
// per-status error counts for the transform pipeline.
var (
	metricRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: "wif_request_duration_seconds",
		Help: "Time spent handling IIIF requests, by route and status.",
	}, []string{"route", "status"})

	metricRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wif_requests_in_flight",
		Help: "Number of IIIF requests currently being handled.",
	})

	metricFastPathHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wif_fastpath_hits_total",
		Help: "Derivative requests served by streaming the source unmodified.",
	})

	metricPNGWindowHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wif_png_windowed_decode_hits_total",
		Help: "Derivative requests served by the PNG windowed-decode optimisation.",
	})

	metricTransformErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wif_transform_errors_total",
		Help: "Pipeline errors, by HTTP status.",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(
		metricRequestDuration,
		metricRequestsInFlight,
		metricFastPathHits,
		metricPNGWindowHits,
		metricTransformErrors,
	)
}
