// Package metrics registers the process-wide prometheus collectors for
// the ingestion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	RefreshCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ah_market_refresh_cycles_total",
		Help: "Refresh cycles per listing source and outcome.",
	}, []string{"source", "status"})

	RefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ah_market_refresh_duration_seconds",
		Help:    "Wall-clock duration of a full refresh cycle.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"source"})

	IngestedAuctions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ah_market_auctions_ingested_total",
		Help: "Decoded BIN auctions merged into a snapshot.",
	}, []string{"source"})

	DecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ah_market_decode_failures_total",
		Help: "Auctions skipped because their item payload failed to decode.",
	})

	FlipsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ah_market_flips_detected_total",
		Help: "Flips detected, counted once per auction uuid regardless of delivery.",
	})
)
