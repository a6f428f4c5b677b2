package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/orgball2608/tweet-gallery/pkg/retry"
	_ "golang.org/x/image/webp"
)

// ErrNoDimensions is returned for images whose header has no usable size.
var ErrNoDimensions = errors.New("image has no dimensions")

// Dimensions is the natural size of an image.
type Dimensions struct {
	Width  int
	Height int
}

// Ratio is width over height; zero when the height is unknown.
func (d Dimensions) Ratio() float64 {
	if d.Height <= 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

// Prober learns the natural size of an image without decoding its pixels.
type Prober interface {
	Probe(ctx context.Context, src string) (Dimensions, error)
}

// SourceProber probes local files under root and remote images over HTTP.
type SourceProber struct {
	root   string
	client *http.Client
	logger logger.Logger
}

func NewSourceProber(root string, client *http.Client, log logger.Logger) *SourceProber {
	if client == nil {
		client = http.DefaultClient
	}
	return &SourceProber{
		root:   root,
		client: client,
		logger: log.WithComponent("Prober"),
	}
}

var _ Prober = (*SourceProber)(nil)

func (p *SourceProber) Probe(ctx context.Context, src string) (Dimensions, error) {
	if IsRemote(src) {
		return p.probeRemote(ctx, src)
	}
	return p.probeFile(ctx, src)
}

func (p *SourceProber) probeFile(ctx context.Context, src string) (Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return Dimensions{}, err
	}
	name := filepath.Join(p.root, filepath.FromSlash(strings.TrimPrefix(src, "/")))
	f, err := os.Open(name)
	if err != nil {
		return Dimensions{}, err
	}
	defer f.Close()
	return decodeDimensions(f)
}

func (p *SourceProber) probeRemote(ctx context.Context, src string) (Dimensions, error) {
	var dims Dimensions
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("image server returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return retry.Permanent(fmt.Errorf("image server returned %d", resp.StatusCode))
		}

		dims, err = decodeDimensions(resp.Body)
		if err != nil {
			return retry.Permanent(err)
		}
		return nil
	}
	if err := retry.Do(ctx, p.logger, "ProbeImage", op, retry.ProbeConfig()); err != nil {
		return Dimensions{}, err
	}
	return dims, nil
}

func decodeDimensions(r io.Reader) (Dimensions, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return Dimensions{}, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Dimensions{}, ErrNoDimensions
	}
	return Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}

type cached struct {
	dims Dimensions
	err  error
}

// CachingProber remembers every terminal outcome, loaded or failed, so a
// second settle pass over the same images returns immediately.
type CachingProber struct {
	next Prober

	mu      sync.RWMutex
	results map[string]cached
}

func NewCachingProber(next Prober) *CachingProber {
	return &CachingProber{
		next:    next,
		results: make(map[string]cached),
	}
}

var _ Prober = (*CachingProber)(nil)

func (c *CachingProber) Probe(ctx context.Context, src string) (Dimensions, error) {
	c.mu.RLock()
	r, ok := c.results[src]
	c.mu.RUnlock()
	if ok {
		return r.dims, r.err
	}

	dims, err := c.next.Probe(ctx, src)
	// A cancelled probe never reached a terminal state.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return dims, err
	}

	c.mu.Lock()
	c.results[src] = cached{dims: dims, err: err}
	c.mu.Unlock()
	return dims, err
}

// Reset forgets every cached outcome.
func (c *CachingProber) Reset() {
	c.mu.Lock()
	c.results = make(map[string]cached)
	c.mu.Unlock()
}
