package repaint

import (
	"go.uber.org/atomic"
)

// useCase coalesces repaint requests: any number of calls between two paints
// produce a single wake-up on C.
type useCase struct {
	dirty    *atomic.Bool
	requests *atomic.Uint64
	ch       chan struct{}
}

func New() *useCase {
	return &useCase{
		dirty:    atomic.NewBool(false),
		requests: atomic.NewUint64(0),
		ch:       make(chan struct{}, 1),
	}
}

func (u *useCase) RequestRepaint() {
	u.requests.Inc()
	if !u.dirty.CompareAndSwap(false, true) {
		return
	}
	select {
	case u.ch <- struct{}{}:
	default:
	}
}

func (u *useCase) C() <-chan struct{} {
	return u.ch
}

// Take reports whether a repaint is pending and clears the request.
func (u *useCase) Take() bool {
	return u.dirty.CompareAndSwap(true, false)
}

func (u *useCase) Requests() uint64 {
	return u.requests.Load()
}
