package datasetimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/orgball2608/tweet-gallery/pkg/retry"
)

// HTTPFetcher downloads the dataset from a URL, adding a cache-busting
// query parameter on every request.
type HTTPFetcher struct {
	url    string
	client *http.Client
	logger logger.Logger
	now    func() time.Time
	seq    atomic.Uint64
}

func NewHTTP(rawURL string, client *http.Client, log logger.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPFetcher{
		url:    rawURL,
		client: client,
		logger: log.WithComponent("DatasetHTTP"),
		now:    time.Now,
	}
}

var _ dataset.Fetcher = (*HTTPFetcher)(nil)

func (h *HTTPFetcher) Fetch(ctx context.Context) ([]domain.Post, error) {
	u, err := url.Parse(h.url)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset url: %w", err)
	}
	q := u.Query()
	q.Set("_", strconv.FormatInt(h.now().UnixNano(), 10)+"-"+strconv.FormatUint(h.seq.Add(1), 10))
	u.RawQuery = q.Encode()

	var posts []domain.Post
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("Cache-Control", "no-cache")

		resp, err := h.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("dataset server returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return retry.Permanent(fmt.Errorf("dataset server returned %d", resp.StatusCode))
		}

		posts, err = decodePosts(resp.Body)
		if err != nil {
			return retry.Permanent(err)
		}
		return nil
	}

	if err := retry.Do(ctx, h.logger, "FetchDataset", op, retry.DefaultConfig()); err != nil {
		return nil, err
	}
	return posts, nil
}
