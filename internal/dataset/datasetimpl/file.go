package datasetimpl

import (
	"context"
	"fmt"
	"os"

	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

// FileFetcher reads the dataset file written by the scraping backend.
// The file is re-read on every call.
type FileFetcher struct {
	path   string
	logger logger.Logger
}

func NewFile(path string, log logger.Logger) *FileFetcher {
	return &FileFetcher{
		path:   path,
		logger: log.WithComponent("DatasetFile"),
	}
}

var _ dataset.Fetcher = (*FileFetcher)(nil)

func (f *FileFetcher) Fetch(ctx context.Context) ([]domain.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", f.path, err)
	}
	defer file.Close()

	posts, err := decodePosts(file)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("Dataset loaded", "path", f.path, "count", len(posts))
	return posts, nil
}
