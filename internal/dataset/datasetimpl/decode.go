package datasetimpl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/internal/domain"
)

func decodePosts(r io.Reader) ([]domain.Post, error) {
	var posts []domain.Post
	if err := json.NewDecoder(r).Decode(&posts); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if len(posts) == 0 {
		return nil, dataset.ErrEmpty
	}
	return posts, nil
}
