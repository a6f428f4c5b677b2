package app

import (
	"github.com/orgball2608/tweet-gallery/internal/dataset/datasetimpl"
	"github.com/orgball2608/tweet-gallery/internal/live"
	"github.com/orgball2608/tweet-gallery/internal/media"
	"github.com/orgball2608/tweet-gallery/internal/refresh/refreshimpl"
	"github.com/orgball2608/tweet-gallery/internal/view"
	"github.com/orgball2608/tweet-gallery/internal/web"
	"github.com/orgball2608/tweet-gallery/pkg/config"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	media.Module,
	datasetimpl.Module,
	refreshimpl.Module,
	view.Module,
	live.Module,
	web.Module,
)
