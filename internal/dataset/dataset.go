package dataset

import (
	"context"
	"errors"

	"github.com/orgball2608/tweet-gallery/internal/domain"
)

var ErrEmpty = errors.New("dataset is empty")

//go:generate go run go.uber.org/mock/mockgen -source=dataset.go -destination=mocks/mock.go

// Fetcher loads the full, ordered dataset. Every call must bypass caches.
type Fetcher interface {
	Fetch(ctx context.Context) ([]domain.Post, error)
}

// Source is a read-only view over one dataset snapshot.
type Source struct {
	posts []domain.Post
	index map[string]int
}

func NewSource(posts []domain.Post) *Source {
	s := &Source{
		posts: make([]domain.Post, len(posts)),
		index: make(map[string]int, len(posts)),
	}
	copy(s.posts, posts)
	for i, p := range s.posts {
		if _, dup := s.index[p.ID]; !dup {
			s.index[p.ID] = i
		}
	}
	return s
}

func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return len(s.posts)
}

func (s *Source) At(i int) domain.Post {
	return s.posts[i]
}

// Slice returns posts in [start, end), clamped to the dataset bounds.
func (s *Source) Slice(start, end int) []domain.Post {
	if s == nil {
		return nil
	}
	start = max(start, 0)
	end = min(end, len(s.posts))
	if start >= end {
		return nil
	}
	out := make([]domain.Post, end-start)
	copy(out, s.posts[start:end])
	return out
}

func (s *Source) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

func (s *Source) Get(id string) (domain.Post, bool) {
	if s == nil {
		return domain.Post{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return domain.Post{}, false
	}
	return s.posts[i], true
}

func (s *Source) IDs() []string {
	if s == nil {
		return nil
	}
	return domain.IDs(s.posts)
}
