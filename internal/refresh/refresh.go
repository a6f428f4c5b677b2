package refresh

import (
	"context"
)

// Result is what the backend reports after a re-scrape.
type Result struct {
	Updated  bool
	NewPosts int
}

//go:generate go run go.uber.org/mock/mockgen -source=refresh.go -destination=mocks/mock.go
type Client interface {
	// Refresh asks the backend to re-scrape the source and blocks until it
	// answers.
	Refresh(ctx context.Context) (Result, error)
}
