// Package view owns the rendered grid: the dataset it was built from, the
// card container and the counters that tie the two together.
package view

import (
	"context"
	"sync"

	"github.com/orgball2608/tweet-gallery/internal/card"
	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/internal/grid"
	"github.com/orgball2608/tweet-gallery/internal/refresh"
	"github.com/orgball2608/tweet-gallery/pkg/errors"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/panjf2000/ants/v2"
)

const DefaultBatchSize = 100

var (
	ErrNoContainer = errors.NewWithCode(errors.CodeNoContainer, "grid container is not available")
	ErrBusy        = errors.NewWithCode(errors.CodeBusy, "a refresh is already running")
)

// Composer builds one hidden card per post.
type Composer interface {
	Compose(ctx context.Context, post domain.Post) *card.Card
}

// Cache is dropped on a full reload.
type Cache interface {
	Reset()
}

type Config struct {
	BatchSize int
	Width     int
}

type Deps struct {
	Fetcher   dataset.Fetcher
	Refresher refresh.Client
	Composer  Composer
	Preloader card.Preloader
	Measurer  card.Measurer
	// Cache and Pool are optional. Without a pool cards are composed one
	// after another.
	Cache  Cache
	Pool   *ants.Pool
	Logger logger.Logger
}

// Controller serialises every mutation of the grid behind one mutex. Slow
// work (fetching, composing, waiting for images) runs without the lock and
// each structural change is applied in a single critical section.
type Controller struct {
	fetcher   dataset.Fetcher
	refresher refresh.Client
	composer  Composer
	preloader card.Preloader
	measurer  card.Measurer
	cache     Cache
	pool      *ants.Pool
	batchSize int
	logger    logger.Logger

	mu         sync.Mutex
	source     *dataset.Source
	container  *grid.Container
	rendered   int
	width      int
	inflight   bool
	refreshing bool
	initErr    error
	// gen changes on every reload so late results of an older view are
	// dropped.
	gen uint64
}

func New(cfg Config, deps Deps) *Controller {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Controller{
		fetcher:   deps.Fetcher,
		refresher: deps.Refresher,
		composer:  deps.Composer,
		preloader: deps.Preloader,
		measurer:  deps.Measurer,
		cache:     deps.Cache,
		pool:      deps.Pool,
		batchSize: cfg.BatchSize,
		width:     cfg.Width,
		logger:    deps.Logger.WithComponent("View"),
	}
}

// Init loads the dataset and renders the first batch. When the dataset is
// missing or empty the backend is asked to refresh once before giving up;
// on failure the view stays without a container and reports the error.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	posts, err := c.loadDataset(ctx)
	if err != nil {
		err = errors.WrapWithCode(err, errors.CodeDataUnavailable, "Failed to load data. Run the scraper first.")
		c.logger.Error("Failed to initialise view", "error", err)

		c.mu.Lock()
		if c.gen == gen {
			c.initErr = err
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return nil
	}
	c.source = dataset.NewSource(posts)
	c.container = grid.New()
	c.rendered = 0
	c.initErr = nil
	c.mu.Unlock()

	c.logger.Info("Dataset loaded", "posts", len(posts))

	_, err = c.appendBatch(ctx)
	return err
}

func (c *Controller) loadDataset(ctx context.Context) ([]domain.Post, error) {
	posts, err := c.fetcher.Fetch(ctx)
	if err == nil && len(posts) > 0 {
		return posts, nil
	}
	c.logger.Warn("Dataset unavailable, asking the backend to refresh", "error", err)

	if _, err := c.refresher.Refresh(ctx); err != nil {
		c.logger.Warn("Backend refresh failed", "error", err)
	}

	posts, err = c.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, dataset.ErrEmpty
	}
	return posts, nil
}

// Reload throws the current view away and initialises it again.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	c.source = nil
	c.container = nil
	c.rendered = 0
	c.inflight = false
	c.initErr = nil
	c.mu.Unlock()

	if c.cache != nil {
		c.cache.Reset()
	}
	c.logger.Info("Reloading view")
	return c.Init(ctx)
}

// Resize records the new container width and re-runs the layout.
func (c *Controller) Resize(width int) error {
	if width <= 0 {
		return errors.Wrap(errors.ErrInvalidInput, "width must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.width = width
	if c.container == nil {
		return ErrNoContainer
	}
	c.layout()
	return nil
}

// CardEvent feeds a pointer or control event to one card's blur state.
func (c *Controller) CardEvent(postID string, ev Event, slot int) (CardView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.container == nil {
		return CardView{}, ErrNoContainer
	}
	cd, ok := c.container.Get(postID)
	if !ok {
		return CardView{}, errors.Wrap(errors.ErrNotFound, "card "+postID)
	}

	switch ev {
	case EventPointerDown:
		cd.PointerDown(slot)
	case EventPointerUp:
		cd.PointerUp(slot)
	case EventClick:
		cd.PointerDown(slot)
		cd.PointerUp(slot)
	case EventHide:
		cd.Hide()
	case EventEnter:
		cd.PointerEnter()
	case EventLeave:
		cd.PointerLeave()
	default:
		return CardView{}, errors.Wrap(errors.ErrInvalidInput, "unknown card event "+string(ev))
	}
	return cardView(cd), nil
}

// syncRendered sets the rendered count to the longest dataset prefix whose
// posts all have a card. Caller holds mu.
func (c *Controller) syncRendered() {
	n := 0
	for _, id := range c.source.IDs() {
		if !c.container.Contains(id) {
			break
		}
		n++
	}
	c.rendered = n
}

// layout runs one masonry pass. Caller holds mu.
func (c *Controller) layout() {
	if !c.container.Layout(c.width, c.measurer) {
		c.logger.Debug("Container narrower than one column, layout skipped", "width", c.width)
	}
}
