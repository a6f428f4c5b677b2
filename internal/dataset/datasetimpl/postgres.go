package datasetimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/domain"
	"github.com/orgball2608/tweet-gallery/internal/repositories/post"
)

// PostgresFetcher serves the dataset from the posts table.
type PostgresFetcher struct {
	repo post.Repository
}

func NewPostgres(repo post.Repository) *PostgresFetcher {
	return &PostgresFetcher{repo: repo}
}

var _ dataset.Fetcher = (*PostgresFetcher)(nil)

func (p *PostgresFetcher) Fetch(ctx context.Context) ([]domain.Post, error) {
	posts, err := p.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if len(posts) == 0 {
		return nil, dataset.ErrEmpty
	}
	return posts, nil
}
