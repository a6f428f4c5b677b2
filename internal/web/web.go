// Package web serves the gallery page and the JSON API the page drives.
package web

import (
	"context"

	"github.com/orgball2608/tweet-gallery/internal/ratelimit"
	"github.com/orgball2608/tweet-gallery/internal/view"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen -source=web.go -destination=mocks/mock.go
type Gallery interface {
	Snapshot() view.View
	OnIntersect(ctx context.Context, visible bool) (int, error)
	Resize(width int) error
	Refresh(ctx context.Context) (view.Report, error)
	CardEvent(postID string, ev view.Event, slot int) (view.CardView, error)
}

var _ Gallery = (*view.Controller)(nil)

type PageConfig struct {
	LivePort     int
	PingInterval int64
}

type Handler struct {
	gallery Gallery
	limiter ratelimit.Limiter
	page    PageConfig
	logger  logger.Logger
}

func NewHandler(gallery Gallery, limiter ratelimit.Limiter, page PageConfig, log logger.Logger) *Handler {
	return &Handler{
		gallery: gallery,
		limiter: limiter,
		page:    page,
		logger:  log.WithComponent("Web"),
	}
}
