package ratelimit

import (
	"testing"
	"time"
)

func TestInMemoryLimiter_Burst(t *testing.T) {
	l := NewInMemoryLimiter(1, time.Hour, 2)

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatalf("burst of 2 must be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatalf("third request inside the window must be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatalf("keys must not share a bucket")
	}
}

func TestInMemoryLimiter_ZeroConfig(t *testing.T) {
	l := NewInMemoryLimiter(0, time.Hour, 0)
	if !l.Allow("k") {
		t.Fatalf("first request must pass")
	}
	if l.Allow("k") {
		t.Fatalf("burst defaults to 1")
	}
}
