package logger

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"go.uber.org/fx"
)

const sentryFlushTimeout = 2 * time.Second

var FxOption = fx.Annotate(
	func(lc fx.Lifecycle, cfg *config.Config) *Impl {
		l := New(
			Opts{
				Env:       cfg.App.Env,
				SentryDSN: cfg.App.SentryUrl,
			},
		)
		if cfg.App.SentryUrl != "" {
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					sentry.Flush(sentryFlushTimeout)
					return nil
				},
			})
		}
		return l
	},
	fx.As(new(Logger)),
)
