package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/tweet-gallery/internal/view"
	"github.com/orgball2608/tweet-gallery/pkg/errors"
)

type pageData struct {
	View           view.View
	LivePort       int
	PingInterval   int64
	SentinelMargin int
}

// Index renders the page with the cards known so far.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		View:           h.gallery.Snapshot(),
		LivePort:       h.page.LivePort,
		PingInterval:   h.page.PingInterval,
		SentinelMargin: view.SentinelMargin,
	})
}

func (h *Handler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, h.gallery.Snapshot())
}

// More is called by the page when the end-of-grid sentinel intersects.
func (h *Handler) More(c *gin.Context) {
	var input struct {
		Visible bool `json:"visible"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	// A batch keeps going if the page goes away mid-request.
	ctx := context.WithoutCancel(c.Request.Context())
	added, err := h.gallery.OnIntersect(ctx, input.Visible)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "view": h.gallery.Snapshot()})
}

func (h *Handler) Layout(c *gin.Context) {
	var input struct {
		Width int `json:"width" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	if err := h.gallery.Resize(input.Width); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.gallery.Snapshot())
}

func (h *Handler) Refresh(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		h.fail(c, errors.ErrRateLimited)
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	report, err := h.gallery.Refresh(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome": report.Outcome,
		"added":   report.Added,
		"removed": report.Removed,
		"view":    h.gallery.Snapshot(),
	})
}

func (h *Handler) CardEvent(c *gin.Context) {
	var input struct {
		Type string `json:"type" binding:"required"`
		Slot int    `json:"slot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid data")
		return
	}

	card, err := h.gallery.CardEvent(c.Param("id"), view.Event(input.Type), input.Slot)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *Handler) Healthz(c *gin.Context) {
	h.logger.Debug("Health check request received", "Method", c.Request.Method, "URL", c.Request.URL.String())
	c.String(http.StatusOK, "ok")
}

// fail maps controller errors to responses.
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsRateLimited(err):
		status = http.StatusTooManyRequests
	case errors.Is(err, view.ErrBusy), errors.Is(err, view.ErrNoContainer):
		status = http.StatusConflict
	case errors.GetCode(err) == errors.CodeRefreshFailed:
		status = http.StatusBadGateway
	case errors.IsDataUnavailable(err):
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", c.FullPath(), "error", err)
	} else {
		h.logger.Debug("Request rejected", "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": errors.GetMessage(err),
		"code":  errors.GetCode(err),
	})
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
