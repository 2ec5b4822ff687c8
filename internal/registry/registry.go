// Package registry maps socket ids to the queues their readers fill.
package registry

import (
	"sync"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
)

// Registry is shared by the relay worker and the dispatch loop. The lock is
// only held for the map operation itself, never across a receive on a queue.
type Registry struct {
	mu     *sync.RWMutex
	queues map[domain.ConnID]<-chan domain.Event
}

func New() *Registry {
	return &Registry{
		mu:     &sync.RWMutex{},
		queues: make(map[domain.ConnID]<-chan domain.Event),
	}
}

// Register stores the queue for id, replacing any previous one.
func (r *Registry) Register(id domain.ConnID, queue <-chan domain.Event) {
	r.mu.Lock()
	r.queues[id] = queue
	r.mu.Unlock()
}

func (r *Registry) Lookup(id domain.ConnID) (<-chan domain.Event, bool) {
	r.mu.RLock()
	queue, ok := r.queues[id]
	r.mu.RUnlock()
	return queue, ok
}

func (r *Registry) Contains(id domain.ConnID) bool {
	_, ok := r.Lookup(id)
	return ok
}

// Remove deletes id only if it still maps to queue, so a stale reader can
// not unregister a connection created after it.
func (r *Registry) Remove(id domain.ConnID, queue <-chan domain.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.queues[id]
	if !ok || current != queue {
		return false
	}
	delete(r.queues, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.queues)
}
