package live

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"go.uber.org/fx"
)

func newMonitor(registry *Registry, cfg *config.Config, shutdowner fx.Shutdowner, log logger.Logger) *Monitor {
	return NewMonitor(
		registry,
		cfg.Live.ClientTimeout,
		cfg.Live.ShutdownWait,
		func() error { return shutdowner.Shutdown() },
		log,
	)
}

func newServer(registry *Registry, monitor *Monitor, cfg *config.Config, log logger.Logger) *Server {
	var onLeave func()
	if cfg.Live.ShutdownOnIdle {
		onLeave = func() { monitor.Check(context.Background()) }
	}
	return NewServer(registry, onLeave, log)
}

// Run serves the channel on its own port and, when idle shutdown is on,
// checks for inactive clients every client timeout.
func Run(lc fx.Lifecycle, cfg *config.Config, srv *Server, monitor *Monitor, log logger.Logger) error {
	log = log.WithComponent("Live")
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Live.Port),
		Handler: srv,
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())

	if cfg.Live.ShutdownOnIdle {
		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Live.ClientTimeout),
			gocron.NewTask(func() {
				monitor.Check(ctx)
			}),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			cancel()
			return fmt.Errorf("failed to schedule client monitor: %w", err)
		}
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", httpSrv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", httpSrv.Addr, err)
			}
			go func() {
				if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Live channel server stopped", "error", err)
				}
			}()
			scheduler.Start()
			log.Info(fmt.Sprintf("Live channel listening on ws://0.0.0.0:%d", cfg.Live.Port))
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if err := scheduler.Shutdown(); err != nil {
				log.Warn("Failed to shut down client monitor", "error", err)
			}
			return httpSrv.Shutdown(stopCtx)
		},
	})
	return nil
}

var Module = fx.Module("live",
	fx.Provide(
		NewRegistry,
		newMonitor,
		newServer,
	),
	fx.Invoke(Run),
)
