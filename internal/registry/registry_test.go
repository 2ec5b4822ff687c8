package registry

import (
	"sync"
	"testing"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterLookupRemove(t *testing.T) {
	r := New()
	queue := make(chan domain.Event)

	_, ok := r.Lookup(0)
	assert.False(t, ok)

	r.Register(0, queue)
	got, ok := r.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, (<-chan domain.Event)(queue), got)
	assert.True(t, r.Contains(0))

	assert.True(t, r.Remove(0, queue))
	assert.False(t, r.Contains(0))
	assert.False(t, r.Remove(0, queue))
}

func TestRegistry_RemoveIgnoresReplacedQueue(t *testing.T) {
	r := New()
	stale := make(chan domain.Event)
	fresh := make(chan domain.Event)
	r.Register(1, stale)
	r.Register(1, fresh)

	assert.False(t, r.Remove(1, stale))
	got, ok := r.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, (<-chan domain.Event)(fresh), got)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		id := domain.ConnID(i)
		go func() {
			defer wg.Done()
			r.Register(id, make(chan domain.Event))
		}()
		go func() {
			defer wg.Done()
			_ = r.Contains(id)
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, r.Len())
}
