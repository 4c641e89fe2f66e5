package modules

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Scheduler runs a job on a cron spec (with a seconds field) until the
// context is cancelled. Ticks are skipped while a previous run is still
// in flight.
type Scheduler struct {
	Spec string
}

func (s Scheduler) Run(ctx context.Context, g *errgroup.Group, job func(context.Context)) {
	g.Go(func() error {
		c := cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

		if _, err := c.AddFunc(s.Spec, func() { job(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc: %w", err)
		}

		c.Start()

		<-ctx.Done()
		<-c.Stop().Done()

		return nil
	})
}
