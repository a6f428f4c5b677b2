package media

import (
	"context"
	"net/http"

	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

// NewPool creates the worker pool shared by image probes.
func NewPool(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (*ants.Pool, error) {
	pool, err := ants.NewPool(max(cfg.Gallery.ProbeWorkers, 1), ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("Releasing probe pool")
			pool.Release()
			return nil
		},
	})
	return pool, nil
}

var Module = fx.Module("media",
	fx.Provide(
		NewPool,
		func(cfg *config.Config) Resolver {
			return NewResolver(cfg.Gallery.MediaRoot, cfg.Gallery.AvatarRoot)
		},
		func(cfg *config.Config, log logger.Logger) *CachingProber {
			return NewCachingProber(NewSourceProber(cfg.Gallery.OutputDir, &http.Client{Timeout: cfg.Gallery.ProbeTimeout}, log))
		},
		func(p *CachingProber, pool *ants.Pool, cfg *config.Config, log logger.Logger) *Preloader {
			return NewPreloader(p, pool, cfg.Gallery.ProbeTimeout, log)
		},
	),
)
