package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"ah_market/internal/decode"
	"ah_market/internal/domain/entity"
	"ah_market/internal/infrastructure/hypixel"
	"ah_market/internal/metrics"
	"ah_market/internal/store"
	"ah_market/pkg/logx"
)

const defaultPageWorkers = 5

// Inspector sees every decoded current auction once per cycle, after
// the page workers have joined. Calls are serialized.
type Inspector interface {
	Inspect(ctx context.Context, a entity.ParsedAuction)
}

// CurrentRefresher rebuilds the current-auctions snapshot every cycle:
// page 1 synchronously, pages 2..N on a bounded worker pool, then a
// single merge and an atomic snapshot swap. Readers always see the last
// committed cycle.
type CurrentRefresher struct {
	client    *hypixel.Client
	published *store.Published
	inspector Inspector
	workers   int
}

func NewCurrentRefresher(client *hypixel.Client, published *store.Published) *CurrentRefresher {
	return &CurrentRefresher{
		client:    client,
		published: published,
		workers:   defaultPageWorkers,
	}
}

func (c *CurrentRefresher) WithInspector(inspector Inspector) *CurrentRefresher {
	c.inspector = inspector
	return c
}

func (c *CurrentRefresher) WithPageWorkers(workers int) *CurrentRefresher {
	if workers > 0 {
		c.workers = workers
	}

	return c
}

// Published exposes the reader-facing snapshot holder.
func (c *CurrentRefresher) Published() *store.Published {
	return c.published
}

// Refresh runs one full cycle. Any page-1 or worker failure aborts
// without commit, leaving the previous snapshot authoritative; a failed
// page 2..N only loses that page.
func (c *CurrentRefresher) Refresh(ctx context.Context) error {
	start := time.Now()

	firstPage, err := c.client.AuctionsPage(ctx, 1)
	if err != nil {
		metrics.RefreshCycles.WithLabelValues("current", "error").Inc()
		return fmt.Errorf("fetch page 1: %w", err)
	}

	candidate := store.New()
	merged := c.mergePage(ctx, candidate, firstPage.Auctions)

	totalPages := firstPage.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}

	pageResults := make([][]entity.ParsedAuction, totalPages+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for page := 2; page <= totalPages; page++ {
		g.Go(func() error {
			pageData, err := c.client.AuctionsPage(gctx, page)
			if err != nil {
				// One bad page never aborts the cycle.
				logger(gctx).Warn("page fetch failed", logx.FieldPage, page, logx.FieldError, err)
				return nil
			}

			pageResults[page] = c.decodePage(gctx, pageData.Auctions)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RefreshCycles.WithLabelValues("current", "error").Inc()
		return fmt.Errorf("page workers: %w", err)
	}

	for _, parsedPage := range pageResults {
		for _, parsed := range parsedPage {
			candidate.Add(parsed, false)
			c.inspect(ctx, parsed)
			merged++
		}
	}

	c.published.Swap(candidate)

	metrics.RefreshCycles.WithLabelValues("current", "ok").Inc()
	metrics.RefreshDuration.WithLabelValues("current").Observe(time.Since(start).Seconds())
	metrics.IngestedAuctions.WithLabelValues("current").Add(float64(merged))

	logger(ctx).Info("current auction cache updated",
		logx.FieldCount, merged,
		"pages", totalPages,
		logx.FieldDurationMs, time.Since(start).Milliseconds(),
	)

	return nil
}

// mergePage decodes page-1 auctions straight into the candidate store.
func (c *CurrentRefresher) mergePage(ctx context.Context, candidate *store.Store, auctions []hypixel.Auction) int {
	var merged int

	for _, parsed := range c.decodePage(ctx, auctions) {
		candidate.Add(parsed, false)
		c.inspect(ctx, parsed)
		merged++
	}

	return merged
}

// decodePage decodes every auction of one page into an isolated result
// list; malformed auctions are skipped and logged.
func (c *CurrentRefresher) decodePage(ctx context.Context, auctions []hypixel.Auction) []entity.ParsedAuction {
	parsedAuctions := make([]entity.ParsedAuction, 0, len(auctions))

	for _, raw := range auctions {
		parsed, err := decode.ParseAuction(raw)
		if err != nil {
			metrics.DecodeFailures.Inc()
			logger(ctx).Debug("skipping auction", logx.FieldAuctionUUID, raw.UUID, logx.FieldError, err)
			continue
		}
		if parsed == nil {
			continue
		}

		parsedAuctions = append(parsedAuctions, *parsed)
	}

	return parsedAuctions
}

func (c *CurrentRefresher) inspect(ctx context.Context, a entity.ParsedAuction) {
	if c.inspector != nil {
		c.inspector.Inspect(ctx, a)
	}
}
