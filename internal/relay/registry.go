package relay

import (
	"sync"

	"github.com/google/uuid"
)

// Registry tracks every live connection by id. It is the only component
// allowed to push events toward a connection's write pump.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Add assigns the client a fresh connection id and starts tracking it.
func (r *Registry) Add(c *Client) string {
	id := uuid.NewString()
	c.id = id

	r.mu.Lock()
	r.clients[id] = c
	r.mu.Unlock()
	return id
}

// Remove forgets the connection. Subsequent Sends to the id fail with
// ErrDeadConnection.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.clients, id)
	r.mu.Unlock()
}

// Send queues an event for delivery to one connection. It never blocks: a
// client whose send buffer is full has the event dropped, which only affects
// that client.
func (r *Registry) Send(id string, ev *Event) error {
	r.mu.RLock()
	c, ok := r.clients[id]
	r.mu.RUnlock()
	if !ok {
		return ErrDeadConnection
	}

	select {
	case c.send <- ev:
	default:
		// Slow consumer; dropping beats stalling the room.
	}
	return nil
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
