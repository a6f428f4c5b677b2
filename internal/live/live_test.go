package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

func TestRegistry_Sweep(t *testing.T) {
	now := time.Unix(1000, 0)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	r.Join()
	now = now.Add(5 * time.Second)
	b := r.Join()

	now = now.Add(6 * time.Second)
	if removed := r.Sweep(10 * time.Second); removed != 1 {
		t.Fatalf("Sweep() = %d, want 1", removed)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d", r.Len())
	}

	r.Touch(b)
	now = now.Add(9 * time.Second)
	if removed := r.Sweep(10 * time.Second); removed != 0 || r.Len() != 1 {
		t.Fatalf("touched client was dropped")
	}
}

func TestRegistry_SweptClientComesBackOnPing(t *testing.T) {
	now := time.Unix(1000, 0)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	a := r.Join()
	b := r.Join()

	now = now.Add(11 * time.Second)
	r.Touch(b)
	if removed := r.Sweep(10 * time.Second); removed != 1 {
		t.Fatalf("Sweep() = %d, want 1", removed)
	}

	r.Touch(a)
	r.Leave(b)
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	var calls atomic.Int32
	m := NewMonitor(r, 10*time.Second, 0, func() error { calls.Add(1); return nil }, logger.NewNop())
	if m.Check(context.Background()) || calls.Load() != 0 {
		t.Fatalf("shutdown requested while a page is still pinging")
	}
}

func TestMonitor_NoShutdownBeforeFirstClient(t *testing.T) {
	var calls atomic.Int32
	m := NewMonitor(NewRegistry(), time.Second, 0, func() error { calls.Add(1); return nil }, logger.NewNop())

	if m.Check(context.Background()) || calls.Load() != 0 {
		t.Fatalf("shutdown requested before any client connected")
	}
}

func TestMonitor_ShutdownWhenIdle(t *testing.T) {
	var calls atomic.Int32
	r := NewRegistry()
	m := NewMonitor(r, time.Second, 0, func() error { calls.Add(1); return nil }, logger.NewNop())

	id := r.Join()
	if m.Check(context.Background()) {
		t.Fatalf("shutdown requested with a live client")
	}

	r.Leave(id)
	if !m.Check(context.Background()) || calls.Load() != 1 {
		t.Fatalf("shutdown not requested once idle")
	}
	// only once
	m.Check(context.Background())
	if calls.Load() != 1 {
		t.Fatalf("shutdown requested %d times", calls.Load())
	}
}

func TestMonitor_CancelledWait(t *testing.T) {
	r := NewRegistry()
	r.Leave(r.Join())
	m := NewMonitor(r, time.Second, time.Hour, func() error {
		t.Fatal("shutdown must not run")
		return nil
	}, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if m.Check(ctx) {
		t.Fatalf("cancelled check fired")
	}
}

func TestServer_PingAndClose(t *testing.T) {
	r := NewRegistry()
	left := make(chan struct{}, 1)
	srv := httptest.NewServer(NewServer(r, func() { left <- struct{}{} }, logger.NewNop()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.CloseNow()

	if err := conn.Write(ctx, websocket.MessageText, []byte(MessagePing)); err != nil {
		t.Fatalf("Write(ping) error = %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte("hello")); err != nil {
		t.Fatalf("Write(other) error = %v", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, []byte(MessageClose)); err != nil {
		t.Fatalf("Write(close) error = %v", err)
	}

	// the server answers "close" with a normal closure
	_, _, err = conn.Read(ctx)
	if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.Fatalf("Read() error = %v, want normal closure", err)
	}

	select {
	case <-left:
	case <-ctx.Done():
		t.Fatal("onLeave never ran")
	}
	if r.Len() != 0 || !r.EverSeen() {
		t.Fatalf("Len() = %d, EverSeen() = %v", r.Len(), r.EverSeen())
	}
}
