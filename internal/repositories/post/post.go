package post

import (
	"context"

	"github.com/orgball2608/tweet-gallery/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// List returns every stored post in dataset order
	List(ctx context.Context) ([]domain.Post, error)

	// ReplaceAll makes the table mirror posts: rows missing from posts are
	// deleted, the rest are upserted with their new position
	ReplaceAll(ctx context.Context, posts []domain.Post) (removed int64, err error)
}
