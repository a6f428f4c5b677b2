package datasetimpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/orgball2608/tweet-gallery/internal/dataset"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

const sampleDataset = `[
  {"id":"1","avatar":"a.webp","username":"Ann","handle":"ann","content":"hi https://t.co/x","media":["m1.webp"],"is_video":false,"possibly_sensitive":""},
  {"id":"2","avatar":"","username":"Bob","handle":"bob","content":"two","media":["m2.webp","m3.webp"],"is_video":true,"possibly_sensitive":true}
]`

func TestFileFetcher_ReadsDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(sampleDataset), 0o644); err != nil {
		t.Fatal(err)
	}

	posts, err := NewFile(path, logger.NewNop()).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(posts) != 2 || posts[1].ID != "2" || !posts[1].IsVideo || !bool(posts[1].Sensitive) {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestFileFetcher_EmptyDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFile(path, logger.NewNop()).Fetch(context.Background())
	if !errors.Is(err, dataset.ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestFileFetcher_MissingFile(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "nope.json"), logger.NewNop()).Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestHTTPFetcher_CacheBusts(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("_"))
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	f := NewHTTP(srv.URL+"/data.json", srv.Client(), logger.NewNop())
	if _, err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if len(seen) != 2 || seen[0] == "" || seen[0] == seen[1] {
		t.Fatalf("expected distinct cache-busting tokens, got %v", seen)
	}
}

func TestHTTPFetcher_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, srv.Client(), logger.NewNop()).Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}
