package refreshimpl

import (
	"net/http"

	"github.com/orgball2608/tweet-gallery/internal/refresh"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"go.uber.org/fx"
)

func New(cfg *config.Config, log logger.Logger) refresh.Client {
	if cfg.Refresh.URL == "" {
		log.Warn("REFRESH_URL is not set, refresh will never report updates")
		return Noop{}
	}
	return NewHTTP(cfg.Refresh.URL, &http.Client{Timeout: cfg.Refresh.Timeout}, log)
}

var Module = fx.Provide(New)
