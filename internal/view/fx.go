package view

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/tweet-gallery/internal/card"
	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/media"
	"github.com/orgball2608/tweet-gallery/internal/refresh"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC        fx.Lifecycle
	Config    *config.Config
	Logger    logger.Logger
	Fetcher   dataset.Fetcher
	Refresher refresh.Client
	Resolver  media.Resolver
	Preloader *media.Preloader
	Prober    *media.CachingProber
}

// NewFx builds the controller and loads the first batch once the app has
// started. Loading runs in the background so a slow dataset does not hold
// up the start hooks; until it finishes the view reports not ready.
func NewFx(opts Opts) (*Controller, error) {
	pool, err := ants.NewPool(max(opts.Config.Gallery.ComposeWorkers, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to create compose pool: %w", err)
	}

	c := New(
		Config{
			BatchSize: opts.Config.Gallery.BatchSize,
			Width:     opts.Config.Gallery.ViewportWidth,
		},
		Deps{
			Fetcher:   opts.Fetcher,
			Refresher: opts.Refresher,
			Composer:  card.NewComposer(opts.Resolver, opts.Preloader),
			Preloader: opts.Preloader,
			Measurer:  card.NewEstimator(),
			Cache:     opts.Prober,
			Pool:      pool,
			Logger:    opts.Logger,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				_ = c.Init(ctx)
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			pool.Release()
			return nil
		},
	})
	return c, nil
}

// ScheduleAutoRefresh runs the reconciler on a fixed interval when
// GALLERY_AUTO_REFRESH is set.
func ScheduleAutoRefresh(lc fx.Lifecycle, cfg *config.Config, c *Controller, log logger.Logger) error {
	interval := cfg.Gallery.AutoRefresh
	if interval <= 0 {
		return nil
	}
	log = log.WithComponent("AutoRefresh")

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			taskCtx, cancel := context.WithTimeout(ctx, cfg.Refresh.Timeout+time.Minute)
			defer cancel()

			report, err := c.Refresh(taskCtx)
			if err != nil {
				log.Warn("Scheduled refresh failed", "error", err)
				return
			}
			log.Info("Scheduled refresh finished", "outcome", report.Outcome, "added", report.Added, "removed", report.Removed)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule auto refresh: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			log.Info("Auto refresh scheduled", "interval", interval.String())
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return scheduler.Shutdown()
		},
	})
	return nil
}

var Module = fx.Module("view",
	fx.Provide(NewFx),
	fx.Invoke(ScheduleAutoRefresh),
)
