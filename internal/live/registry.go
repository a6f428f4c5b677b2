// Package live runs the keepalive channel between open gallery pages and
// this process.
package live

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry tracks connected clients and when each was last heard from.
type Registry struct {
	mu       sync.Mutex
	clients  map[uuid.UUID]time.Time
	everSeen bool
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[uuid.UUID]time.Time),
		now:     time.Now,
	}
}

func (r *Registry) Join() uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = r.now()
	r.everSeen = true
	return id
}

// Touch records a keepalive. A client dropped by Sweep whose connection is
// still open is registered again.
func (r *Registry) Touch(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = r.now()
}

func (r *Registry) Leave(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// EverSeen reports whether any client has connected since start.
func (r *Registry) EverSeen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.everSeen
}

// Sweep drops clients silent for longer than timeout and returns how many
// were dropped.
func (r *Registry) Sweep(timeout time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, last := range r.clients {
		if now.Sub(last) > timeout {
			delete(r.clients, id)
			removed++
		}
	}
	return removed
}
