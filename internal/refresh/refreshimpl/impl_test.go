package refreshimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

func TestHTTPClient_Refresh(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantUpdated bool
		wantNew     int
	}{
		{"new found", `{"new_found": true, "new_tweets": [{"id":"1"},{"id":"2"}]}`, true, 2},
		{"updated alias", `{"updated": true}`, true, 0},
		{"nothing new", `{"new_found": false, "new_tweets": []}`, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := NewHTTP(srv.URL, srv.Client(), logger.NewNop()).Refresh(context.Background())
			if err != nil {
				t.Fatalf("Refresh() error = %v", err)
			}
			if res.Updated != tt.wantUpdated || res.NewPosts != tt.wantNew {
				t.Fatalf("Refresh() = %+v", res)
			}
		})
	}
}

func TestHTTPClient_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad"}`))
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, srv.Client(), logger.NewNop()).Refresh(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Fatalf("error = %v, want the backend message", err)
	}
}

func TestHTTPClient_ServerErrorPageIsRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html><body><h1>Error response</h1></body></html>"))
			return
		}
		_, _ = w.Write([]byte(`{"new_found": true}`))
	}))
	defer srv.Close()

	res, err := NewHTTP(srv.URL, srv.Client(), logger.NewNop()).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if !res.Updated || calls.Load() != 2 {
		t.Fatalf("Refresh() = %+v after %d calls", res, calls.Load())
	}
}

func TestNoop(t *testing.T) {
	res, err := Noop{}.Refresh(context.Background())
	if err != nil || res.Updated {
		t.Fatalf("Noop.Refresh() = %+v, %v", res, err)
	}
}
