package media

import (
	"context"
	"sync"
	"time"

	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/panjf2000/ants/v2"
)

// Settle is the terminal outcome of loading one image.
type Settle struct {
	Src        string
	Dimensions Dimensions
	Err        error
}

// Ratio returns the aspect ratio, or false when the image failed to load.
func (s Settle) Ratio() (float64, bool) {
	if s.Err != nil {
		return 0, false
	}
	r := s.Dimensions.Ratio()
	return r, r > 0
}

// Preloader probes images on a shared worker pool and waits until every one
// of them has settled.
type Preloader struct {
	prober  Prober
	pool    *ants.Pool
	timeout time.Duration
	logger  logger.Logger
}

func NewPreloader(prober Prober, pool *ants.Pool, timeout time.Duration, log logger.Logger) *Preloader {
	return &Preloader{
		prober:  prober,
		pool:    pool,
		timeout: timeout,
		logger:  log.WithComponent("Preloader"),
	}
}

// Preload returns one Settle per src, in src order. It never fails: a probe
// error, a timeout or a rejected pool submission settles that slot as failed.
func (p *Preloader) Preload(ctx context.Context, srcs []string) []Settle {
	out := make([]Settle, len(srcs))
	if len(srcs) == 0 {
		return out
	}

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		idx, src := i, src

		task := func() {
			defer wg.Done()
			out[idx] = p.probe(ctx, src)
		}
		if err := p.pool.Submit(task); err != nil {
			p.logger.Warn("Failed to submit probe to pool", "src", src, "error", err)
			out[idx] = Settle{Src: src, Err: err}
			wg.Done()
		}
	}

	wg.Wait()
	return out
}

func (p *Preloader) probe(ctx context.Context, src string) Settle {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	dims, err := p.prober.Probe(ctx, src)
	if err != nil {
		p.logger.Debug("Image settled as failed", "src", src, "error", err)
	}
	return Settle{Src: src, Dimensions: dims, Err: err}
}
