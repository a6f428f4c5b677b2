package refreshimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/orgball2608/tweet-gallery/internal/refresh"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"github.com/orgball2608/tweet-gallery/pkg/retry"
)

type response struct {
	NewFound  bool              `json:"new_found"`
	Updated   bool              `json:"updated"`
	NewTweets []json.RawMessage `json:"new_tweets"`
	Error     string            `json:"error"`
}

// HTTPClient triggers a re-scrape with a POST to the backend's refresh
// endpoint.
type HTTPClient struct {
	url    string
	client *http.Client
	logger logger.Logger
}

func NewHTTP(url string, client *http.Client, log logger.Logger) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{
		url:    url,
		client: client,
		logger: log.WithComponent("Refresh"),
	}
}

var _ refresh.Client = (*HTTPClient)(nil)

func (c *HTTPClient) Refresh(ctx context.Context) (refresh.Result, error) {
	var res refresh.Result
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, nil)
		if err != nil {
			return retry.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("refresh failed with %d: %s", resp.StatusCode, errorMessage(resp))
			if resp.StatusCode >= 500 {
				return err
			}
			return retry.Permanent(err)
		}

		var body response
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return retry.Permanent(fmt.Errorf("failed to decode refresh response: %w", err))
		}

		res = refresh.Result{
			Updated:  body.NewFound || body.Updated,
			NewPosts: len(body.NewTweets),
		}
		return nil
	}

	if err := retry.Do(ctx, c.logger, "Refresh", op, retry.DefaultConfig()); err != nil {
		return refresh.Result{}, err
	}

	c.logger.Info("Backend refresh finished", "updated", res.Updated, "new_posts", res.NewPosts)
	return res, nil
}

// errorMessage pulls the "error" field from a JSON error body. Other bodies,
// such as HTML error pages, yield the status text.
func errorMessage(resp *http.Response) string {
	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return http.StatusText(resp.StatusCode)
	}
	return body.Error
}

// Noop is used when no backend is configured; it never reports an update.
type Noop struct{}

var _ refresh.Client = Noop{}

func (Noop) Refresh(context.Context) (refresh.Result, error) {
	return refresh.Result{}, nil
}
