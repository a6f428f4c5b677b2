package live

import (
	"context"
	"sync"
	"time"

	"github.com/orgball2608/tweet-gallery/pkg/logger"
)

// Monitor stops the process once every page has gone away.
type Monitor struct {
	registry *Registry
	timeout  time.Duration
	wait     time.Duration
	shutdown func() error
	logger   logger.Logger

	once sync.Once
}

func NewMonitor(registry *Registry, timeout, wait time.Duration, shutdown func() error, log logger.Logger) *Monitor {
	return &Monitor{
		registry: registry,
		timeout:  timeout,
		wait:     wait,
		shutdown: shutdown,
		logger:   log.WithComponent("LiveMonitor"),
	}
}

// Check drops inactive clients. When none remain it waits once more and,
// if still nobody is connected, requests shutdown. Nothing happens before
// the first client ever connected.
func (m *Monitor) Check(ctx context.Context) bool {
	if removed := m.registry.Sweep(m.timeout); removed > 0 {
		m.logger.Info("Removed inactive clients", "count", removed)
	}
	if !m.registry.EverSeen() || m.registry.Len() > 0 {
		return false
	}

	m.logger.Info("No active clients, waiting before shutdown", "wait", m.wait.String())
	select {
	case <-time.After(m.wait):
	case <-ctx.Done():
		return false
	}
	if m.registry.Len() > 0 {
		return false
	}

	fired := false
	m.once.Do(func() {
		fired = true
		m.logger.Info("Still no active clients, shutting down")
		if err := m.shutdown(); err != nil {
			m.logger.Error("Failed to request shutdown", "error", err)
		}
	})
	return fired
}
