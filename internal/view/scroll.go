package view

import (
	"context"
)

// SentinelMargin is how far, in pixels, past the viewport the end-of-grid
// sentinel is observed, so the next batch loads before the user gets there.
const SentinelMargin = 1000

// OnIntersect handles one sentinel observation. A visible sentinel with
// posts left to render requests exactly one more batch.
func (c *Controller) OnIntersect(ctx context.Context, visible bool) (int, error) {
	if !visible {
		return 0, nil
	}

	c.mu.Lock()
	if c.container == nil {
		c.mu.Unlock()
		return 0, ErrNoContainer
	}
	done := c.rendered >= c.source.Len()
	c.mu.Unlock()
	if done {
		return 0, nil
	}

	return c.appendBatch(ctx)
}
