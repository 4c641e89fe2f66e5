// Package flip detects auctions priced far enough below their
// statistical baseline to be resale opportunities.
package flip

import (
	"context"

	"github.com/patrickmn/go-cache"

	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/service/stats"
	"ah_market/internal/metrics"
	"ah_market/pkg/contextx"
	"ah_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	defaultMinProfit  = 25_000_000
	defaultMinSamples = 5
)

// Baseline provides the ended-auctions statistics a price is judged
// against. The first quartile is the trigger baseline.
type Baseline interface {
	Summarize(itemName string, minSamples int) (stats.Summary, bool)
}

// Detector compares newly decoded current auctions against the ended
// baseline and emits at most one Flip per auction uuid. Inspect is not
// safe for concurrent callers: the ingestion pipeline joins its page
// workers before merging, so a single goroutine drives detection.
type Detector struct {
	baseline   Baseline
	flips      chan<- entity.Flip
	notified   *cache.Cache
	minProfit  int64
	minSamples int
}

func NewDetector(baseline Baseline, flips chan<- entity.Flip) *Detector {
	return &Detector{
		baseline:   baseline,
		flips:      flips,
		notified:   cache.New(cache.NoExpiration, 0),
		minProfit:  defaultMinProfit,
		minSamples: defaultMinSamples,
	}
}

func (d *Detector) WithMinProfit(coins int64) *Detector {
	d.minProfit = coins
	return d
}

// Inspect evaluates one decoded auction. The uuid is marked notified
// before the event is handed off, so delivery failures downstream never
// cause a second emission.
func (d *Detector) Inspect(ctx context.Context, a entity.ParsedAuction) {
	summary, ok := d.baseline.Summarize(a.ItemName, d.minSamples)
	if !ok {
		return
	}

	price := float64(a.Record.Price)
	if price >= summary.Q1 {
		return
	}

	profit := summary.Q1 - price
	if profit < float64(d.minProfit) {
		return
	}

	if _, seen := d.notified.Get(a.Record.UUID); seen {
		return
	}
	d.notified.Set(a.Record.UUID, struct{}{}, cache.NoExpiration)

	metrics.FlipsDetected.Inc()

	event := entity.Flip{
		ItemName: a.ItemName,
		UUID:     a.Record.UUID,
		Price:    a.Record.Price,
		Baseline: summary.Q1,
		Profit:   profit,
		Median:   summary.Median,
		IQR:      summary.IQR,
	}

	select {
	case d.flips <- event:
	default:
		logger(ctx).Warn("flip channel full, dropping event",
			logx.FieldItem, a.ItemName,
			logx.FieldAuctionUUID, a.Record.UUID,
		)
	}
}
