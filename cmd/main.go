package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"ah_market/internal/config"
	"ah_market/internal/domain/entity"
	"ah_market/internal/domain/service/flip"
	"ah_market/internal/domain/service/query"
	"ah_market/internal/infrastructure/hypixel"
	"ah_market/internal/infrastructure/notifier"
	"ah_market/internal/server"
	"ah_market/internal/store"
	"ah_market/internal/worker"
	"ah_market/pkg/application/modules"
	"ah_market/pkg/contextx"
	"ah_market/pkg/logx"
	"ah_market/pkg/middlewarex"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	client := hypixel.NewClient(cfg.Hypixel.BaseURL, cfg.Hypixel.FetchTimeout)

	ended := worker.NewEndedRefresher(client)

	flips := make(chan entity.Flip, 100)
	detector := flip.NewDetector(ended, flips).
		WithMinProfit(cfg.Flip.MinProfit)

	published := store.NewPublished()
	current := worker.NewCurrentRefresher(client, published).
		WithInspector(detector).
		WithPageWorkers(cfg.Hypixel.PageWorkers)

	// Ended auctions first: the flip baseline must exist before the
	// first current cycle inspects anything. A failed prime is not
	// fatal; the scheduler retries the same cycle every minute.
	log.Info("priming ended auctions...")
	if err := ended.Refresh(ctx); err != nil {
		log.Error("prime ended auctions failed", logx.Error(err))
	}

	log.Info("priming current auctions...")
	if err := current.Refresh(ctx); err != nil {
		log.Error("prime current auctions failed", logx.Error(err))
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Flip.WebhookURL != "" {
		webhook := notifier.NewDiscordWebhook(cfg.Flip.WebhookURL)

		g.Go(func() error {
			if err := webhook.Run(ctx, flips); err != nil && ctx.Err() == nil {
				return fmt.Errorf("webhook.Run: %w", err)
			}

			return nil
		})
	} else {
		log.Warn("no webhook configured, flip notifications disabled")
		g.Go(func() error {
			drainFlips(ctx, flips)
			return nil
		})
	}

	modules.Scheduler{Spec: cfg.Hypixel.RefreshSpec}.Run(ctx, g, func(ctx context.Context) {
		if err := ended.Refresh(ctx); err != nil {
			log.Error("ended refresh failed", logx.Error(err))
		}

		if err := current.Refresh(ctx); err != nil {
			log.Error("current refresh failed", logx.Error(err))
		}
	})

	querySvc := query.NewService(published, ended)

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID, middlewarex.Logger, middlewarex.Recovery)
	server.NewServer(querySvc, published).RegisterRoutes(router)

	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, httpServer)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeAddress,
	}.Run(ctx, g)
	modules.MetricServer{ListenAddress: cfg.HTTP.MetricsAddress}.Run(ctx, g)

	return g.Wait()
}

func drainFlips(ctx context.Context, flips <-chan entity.Flip) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-flips:
			if !ok {
				return
			}
		}
	}
}
