package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orgball2608/tweet-gallery/internal/ratelimit"
	"github.com/orgball2608/tweet-gallery/internal/view"
	mock_web "github.com/orgball2608/tweet-gallery/internal/web/mocks"
	"github.com/orgball2608/tweet-gallery/pkg/errors"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, burst int) (*gin.Engine, *mock_web.MockGallery) {
	t.Helper()
	ctrl := gomock.NewController(t)
	gallery := mock_web.NewMockGallery(ctrl)

	r := gin.New()
	h := NewHandler(gallery, ratelimit.NewInMemoryLimiter(1, time.Hour, burst), PageConfig{LivePort: 8765, PingInterval: 5000}, logger.NewNop())
	SetupRoutes(r, h, StaticRoots{OutputDir: t.TempDir(), MediaRoot: "images/media", AvatarRoot: "images/avatars"})
	return r, gallery
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func readyView(ids ...string) view.View {
	v := view.View{Ready: true, Rendered: len(ids), Total: 1500, Height: 400, Columns: 4}
	for i, id := range ids {
		v.Cards = append(v.Cards, view.CardView{ID: id, Name: "Name " + id, Handle: "h" + id, Link: "#", Span: 1, X: i * 316, Width: 300, Height: 104})
	}
	return v
}

func TestIndex(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().Snapshot().Return(readyView("a", "b"))

	w := do(r, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`data-id="a"`, `data-id="b"`, "@ha", "2 of 1,500 posts", `data-sentinel-margin="1000"`, "width: 300px; height: 104px"} {
		if !strings.Contains(body, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestIndexShowsInitError(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().Snapshot().Return(view.View{Error: "Failed to load data."})

	w := do(r, http.MethodGet, "/", "")
	if !strings.Contains(w.Body.String(), "Failed to load data.") {
		t.Fatalf("inline error not rendered")
	}
}

func TestGetView(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().Snapshot().Return(readyView("a"))

	w := do(r, http.MethodGet, "/api/view", "")
	var got view.View
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Ready || len(got.Cards) != 1 || got.Cards[0].ID != "a" {
		t.Fatalf("view = %+v", got)
	}
}

func TestMore(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().OnIntersect(gomock.Any(), true).Return(50, nil)
	gallery.EXPECT().Snapshot().Return(readyView("a"))

	w := do(r, http.MethodPost, "/api/more", `{"visible": true}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"added":50`) {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestMoreWithoutContainer(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().OnIntersect(gomock.Any(), true).Return(0, view.ErrNoContainer)

	w := do(r, http.MethodPost, "/api/more", `{"visible": true}`)
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), errors.CodeNoContainer) {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestLayout(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().Resize(960).Return(nil)
	gallery.EXPECT().Snapshot().Return(readyView())

	if w := do(r, http.MethodPost, "/api/layout", `{"width": 960}`); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/layout", `{"width": 0}`); w.Code != http.StatusBadRequest {
		t.Fatalf("zero width status = %d", w.Code)
	}
}

func TestRefresh(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().Refresh(gomock.Any()).Return(view.Report{Outcome: view.OutcomeUpdated, Added: 2, Removed: 1}, nil)
	gallery.EXPECT().Snapshot().Return(readyView())

	w := do(r, http.MethodPost, "/api/refresh", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		Outcome string `json:"outcome"`
		Added   int    `json:"added"`
		Removed int    `json:"removed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Outcome != "updated" || got.Added != 2 || got.Removed != 1 {
		t.Fatalf("response = %+v", got)
	}

	// burst of one is spent
	if w := do(r, http.MethodPost, "/api/refresh", ""); w.Code != http.StatusTooManyRequests || !strings.Contains(w.Body.String(), "rate limited") {
		t.Fatalf("second refresh status = %d body = %s", w.Code, w.Body.String())
	}
}

func TestRefreshErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"busy", view.ErrBusy, http.StatusConflict},
		{"backend", errors.WrapWithCode(fmt.Errorf("down"), errors.CodeRefreshFailed, "backend refresh failed"), http.StatusBadGateway},
		{"reload failed", errors.WrapWithCode(fmt.Errorf("gone"), errors.CodeDataUnavailable, "Failed to load data."), http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, gallery := newTestRouter(t, 1)
			gallery.EXPECT().Refresh(gomock.Any()).Return(view.Report{}, tt.err)

			if w := do(r, http.MethodPost, "/api/refresh", ""); w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestCardEvent(t *testing.T) {
	r, gallery := newTestRouter(t, 1)
	gallery.EXPECT().CardEvent("42", view.EventPointerUp, 1).Return(view.CardView{ID: "42", HideVisible: true}, nil)
	gallery.EXPECT().CardEvent("42", view.EventClick, 2).Return(view.CardView{ID: "42", HideVisible: true}, nil)
	gallery.EXPECT().CardEvent("404", view.EventHide, 0).Return(view.CardView{}, errors.Wrap(errors.ErrNotFound, "card 404"))
	gallery.EXPECT().CardEvent("42", view.Event("wiggle"), 0).Return(view.CardView{}, errors.Wrap(errors.ErrInvalidInput, "unknown card event wiggle"))

	w := do(r, http.MethodPost, "/api/cards/42/events", `{"type": "mouseup", "slot": 1}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"hide_visible":true`) {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/api/cards/42/events", `{"type": "click", "slot": 2}`); w.Code != http.StatusOK {
		t.Fatalf("click status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/cards/404/events", `{"type": "hide"}`); w.Code != http.StatusNotFound {
		t.Fatalf("unknown card status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/cards/42/events", `{"type": "wiggle"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown event status = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/cards/42/events", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing type status = %d", w.Code)
	}
}

func TestHealthzAndAssets(t *testing.T) {
	r, _ := newTestRouter(t, 1)

	if w := do(r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodGet, "/assets/gallery.js", ""); w.Code != http.StatusOK {
		t.Fatalf("asset status = %d", w.Code)
	}
}
