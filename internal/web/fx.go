package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/tweet-gallery/internal/ratelimit"
	"github.com/orgball2608/tweet-gallery/internal/view"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"go.uber.org/fx"
)

func NewRouter(cfg *config.Config, c *view.Controller, log logger.Logger) *gin.Engine {
	if cfg.App.Env != "" && cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	limiter := ratelimit.NewInMemoryLimiter(
		cfg.RateLimit.RefreshRequests,
		cfg.RateLimit.RefreshPer,
		cfg.RateLimit.RefreshBurst,
	)
	h := NewHandler(c, limiter, PageConfig{
		LivePort:     cfg.Live.Port,
		PingInterval: cfg.Live.PingInterval.Milliseconds(),
	}, log)

	SetupRoutes(r, h, StaticRoots{
		OutputDir:  cfg.Gallery.OutputDir,
		MediaRoot:  cfg.Gallery.MediaRoot,
		AvatarRoot: cfg.Gallery.AvatarRoot,
	})
	return r
}

func Run(lc fx.Lifecycle, cfg *config.Config, r *gin.Engine, log logger.Logger) {
	log = log.WithComponent("Web")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("web",
	fx.Provide(NewRouter),
	fx.Invoke(Run),
)
