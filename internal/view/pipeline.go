package view

import (
	"context"
	"sync"

	"github.com/orgball2608/tweet-gallery/internal/card"
	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/internal/grid"
	"github.com/orgball2608/tweet-gallery/internal/media"
)

// Append renders the next batch of not yet rendered posts at the end of the
// grid. It returns how many cards were inserted; a call made while another
// batch is still in flight, or with nothing left to render, inserts none.
func (c *Controller) Append(ctx context.Context) (int, error) {
	return c.appendBatch(ctx)
}

func (c *Controller) appendBatch(ctx context.Context) (int, error) {
	c.mu.Lock()
	if c.container == nil {
		c.mu.Unlock()
		return 0, ErrNoContainer
	}
	if c.inflight {
		c.mu.Unlock()
		c.logger.Debug("Batch already in flight, trigger dropped")
		return 0, nil
	}
	start := c.rendered
	end := min(start+c.batchSize, c.source.Len())
	if start >= end {
		c.mu.Unlock()
		return 0, nil
	}
	posts := c.source.Slice(start, end)
	// Advanced before composing so the range is never requested twice.
	c.rendered = end
	c.inflight = true
	gen := c.gen
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.gen == gen {
			c.inflight = false
		}
		c.mu.Unlock()
	}()

	c.logger.Debug("Appending batch", "from", start, "to", end)
	return c.insert(ctx, gen, posts, false)
}

// Prepend renders posts in front of the existing cards. The first given
// post becomes the first card and the given order is kept.
func (c *Controller) Prepend(ctx context.Context, posts []domain.Post) (int, error) {
	c.mu.Lock()
	if c.container == nil {
		c.mu.Unlock()
		return 0, ErrNoContainer
	}
	gen := c.gen
	c.mu.Unlock()

	return c.insert(ctx, gen, posts, true)
}

// Remove drops the given posts from the view: their cards go, the dataset
// forgets them so no later batch brings them back, and the layout re-runs.
// No image wait is needed since nothing new is shown.
func (c *Controller) Remove(ids []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.container == nil {
		return 0, ErrNoContainer
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	keep := make([]domain.Post, 0, c.source.Len())
	for _, p := range c.source.Slice(0, c.source.Len()) {
		if _, ok := drop[p.ID]; !ok {
			keep = append(keep, p)
		}
	}
	c.source = dataset.NewSource(keep)

	n := c.container.Remove(ids)
	c.layout()
	c.syncRendered()
	return n, nil
}

// insert is the shared path of Append and Prepend: compose hidden cards,
// put them in the container, wait until every image of the new cards has
// settled, then lay out once and reveal them together.
func (c *Controller) insert(ctx context.Context, gen uint64, posts []domain.Post, prepend bool) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	cards := c.composeAll(ctx, posts)
	pending := pendingSources(cards)

	c.mu.Lock()
	if c.container == nil || c.gen != gen {
		c.mu.Unlock()
		return 0, ErrNoContainer
	}
	// The dataset may have been swapped while composing.
	live := make([]*card.Card, 0, len(cards))
	for _, cd := range cards {
		if c.source.Contains(cd.PostID) {
			live = append(live, cd)
		}
	}
	var inserted []*card.Card
	if prepend {
		inserted = c.container.Prepend(live...)
	} else {
		inserted = c.container.Append(live...)
	}
	c.syncRendered()
	c.mu.Unlock()

	if len(inserted) == 0 {
		return 0, nil
	}

	settles := c.settle(ctx, pending)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.container == nil || c.gen != gen {
		return 0, ErrNoContainer
	}
	for _, cd := range inserted {
		card.ApplySettles(cd, settles)
	}
	c.layout()
	grid.Reveal(inserted)
	c.syncRendered()

	c.logger.Debug("Cards revealed", "count", len(inserted), "prepend", prepend, "rendered", c.rendered)
	return len(inserted), nil
}

func (c *Controller) settle(ctx context.Context, srcs []string) []media.Settle {
	if len(srcs) == 0 {
		return nil
	}
	return c.preloader.Preload(ctx, srcs)
}

// composeAll composes cards on the compose pool and returns them in post
// order. Without a pool, or when a submission is rejected, the card is
// composed on the calling goroutine.
func (c *Controller) composeAll(ctx context.Context, posts []domain.Post) []*card.Card {
	cards := make([]*card.Card, len(posts))
	var wg sync.WaitGroup
	for i, p := range posts {
		if c.pool == nil {
			cards[i] = c.composer.Compose(ctx, p)
			continue
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			cards[i] = c.composer.Compose(ctx, p)
		}
		if err := c.pool.Submit(task); err != nil {
			c.logger.Warn("Failed to submit compose task to pool", "post", p.ID, "error", err)
			task()
		}
	}
	wg.Wait()
	return cards
}

// pendingSources lists images not yet settled by the composer, once each.
func pendingSources(cards []*card.Card) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cd := range cards {
		for _, s := range cd.Media {
			if s.Settled {
				continue
			}
			if _, ok := seen[s.Src]; ok {
				continue
			}
			seen[s.Src] = struct{}{}
			out = append(out, s.Src)
		}
	}
	return out
}
