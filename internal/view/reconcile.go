package view

import (
	"context"

	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/pkg/errors"
)

type Outcome string

const (
	OutcomeNoChanges Outcome = "no_changes"
	OutcomeUpdated   Outcome = "updated"
	OutcomeReloaded  Outcome = "reloaded"
)

type Report struct {
	Outcome Outcome `json:"outcome"`
	Added   int     `json:"added"`
	Removed int     `json:"removed"`
}

// Refresh asks the backend to re-scrape and patches the grid with the
// difference between the known dataset and the fresh one. Only one refresh
// runs at a time; a concurrent call gets ErrBusy.
func (c *Controller) Refresh(ctx context.Context) (Report, error) {
	c.mu.Lock()
	if c.container == nil {
		c.mu.Unlock()
		return Report{}, ErrNoContainer
	}
	if c.refreshing {
		c.mu.Unlock()
		return Report{}, ErrBusy
	}
	c.refreshing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	res, err := c.refresher.Refresh(ctx)
	if err != nil {
		return Report{}, errors.WrapWithCode(err, errors.CodeRefreshFailed, "backend refresh failed")
	}
	if !res.Updated {
		c.logger.Info("Refresh found no changes")
		return Report{Outcome: OutcomeNoChanges}, nil
	}

	posts, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Error("Failed to re-fetch dataset after refresh, reloading view", "error",
			errors.WrapWithCode(err, errors.CodeReconcileFetch, "re-fetch failed"))
		if err := c.Reload(ctx); err != nil {
			return Report{}, err
		}
		return Report{Outcome: OutcomeReloaded}, nil
	}

	return c.reconcile(ctx, dataset.NewSource(posts))
}

func (c *Controller) reconcile(ctx context.Context, fresh *dataset.Source) (Report, error) {
	c.mu.Lock()
	if c.container == nil {
		c.mu.Unlock()
		return Report{}, ErrNoContainer
	}
	// Diffed against the whole known dataset, not only the rendered cards.
	delta := dataset.Diff(c.source, fresh)
	removed := c.container.Remove(delta.Removed)
	c.source = fresh
	if len(delta.Added) == 0 {
		c.layout()
	}
	c.syncRendered()
	gen := c.gen
	c.mu.Unlock()

	report := Report{Outcome: OutcomeUpdated, Removed: removed}
	if len(delta.Added) > 0 {
		added, err := c.insert(ctx, gen, delta.Added, true)
		if err != nil {
			return Report{}, err
		}
		report.Added = added
	}

	c.logger.Info("Refresh reconciled",
		"added", report.Added,
		"removed", report.Removed,
		"total", fresh.Len(),
	)
	return report, nil
}
