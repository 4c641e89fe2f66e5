package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ah_market/internal/decode"
	"ah_market/internal/domain/service/stats"
	"ah_market/internal/domain/value"
	"ah_market/internal/infrastructure/hypixel"
	"ah_market/internal/metrics"
	"ah_market/internal/store"
	"ah_market/pkg/contextx"
	"ah_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// EndedRefresher accumulates decoded ended auctions across refresh
// cycles into a retention-capped store. It is the statistical baseline
// for flip detection and historical averages.
type EndedRefresher struct {
	client *hypixel.Client

	mu      sync.RWMutex
	storage *store.Store
}

func NewEndedRefresher(client *hypixel.Client) *EndedRefresher {
	return &EndedRefresher{
		client:  client,
		storage: store.New(),
	}
}

// Refresh fetches the ended listing and merges it into the accumulated
// store. A fetch failure aborts the cycle and keeps prior state; a
// malformed auction is skipped, never the batch.
func (e *EndedRefresher) Refresh(ctx context.Context) error {
	start := time.Now()

	data, err := e.client.EndedAuctions(ctx)
	if err != nil {
		metrics.RefreshCycles.WithLabelValues("ended", "error").Inc()
		return fmt.Errorf("fetch ended auctions: %w", err)
	}

	var added int

	e.mu.Lock()
	for _, raw := range data.Auctions {
		parsed, err := decode.ParseAuction(raw)
		if err != nil {
			metrics.DecodeFailures.Inc()
			logger(ctx).Debug("skipping ended auction", logx.FieldAuctionUUID, raw.UUID, logx.FieldError, err)
			continue
		}
		if parsed == nil {
			continue
		}

		e.storage.Add(*parsed, true)
		added++
	}
	e.mu.Unlock()

	metrics.RefreshCycles.WithLabelValues("ended", "ok").Inc()
	metrics.RefreshDuration.WithLabelValues("ended").Observe(time.Since(start).Seconds())
	metrics.IngestedAuctions.WithLabelValues("ended").Add(float64(added))

	logger(ctx).Info("processed ended auctions",
		logx.FieldCount, added,
		logx.FieldDurationMs, time.Since(start).Milliseconds(),
	)

	return nil
}

// Average is the mean over every priced record of the item, bucket
// structure ignored.
func (e *EndedRefresher) Average(itemName string) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	buckets, ok := e.storage.Buckets(itemName)
	if !ok {
		return 0, false
	}

	return stats.Average(buckets)
}

// BucketAverages is the per-bucket mean price for the item.
func (e *EndedRefresher) BucketAverages(itemName string) (map[string]float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	buckets, ok := e.storage.Buckets(itemName)
	if !ok {
		return nil, false
	}

	return stats.BucketAverages(buckets), true
}

// AllAverages returns per-item bucket averages; items holding only the
// default bucket collapse to a scalar average.
func (e *EndedRefresher) AllAverages() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()

	averages := make(map[string]any, len(e.storage.Items()))

	for _, itemName := range e.storage.Items() {
		buckets, ok := e.storage.Buckets(itemName)
		if !ok {
			continue
		}

		bucketAverages := stats.BucketAverages(buckets)
		if avg, only := singleDefaultAverage(bucketAverages); only {
			averages[itemName] = avg
			continue
		}

		averages[itemName] = bucketAverages
	}

	return averages
}

// Summarize returns the order statistics for the item, or false when
// the sample is smaller than minSamples.
func (e *EndedRefresher) Summarize(itemName string, minSamples int) (stats.Summary, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	buckets, ok := e.storage.Buckets(itemName)
	if !ok {
		return stats.Summary{}, false
	}

	return stats.Summarize(buckets, minSamples)
}

func singleDefaultAverage(bucketAverages map[string]float64) (float64, bool) {
	if len(bucketAverages) != 1 {
		return 0, false
	}

	avg, ok := bucketAverages[value.DefaultBucket]

	return avg, ok
}
