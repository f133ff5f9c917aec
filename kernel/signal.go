package kernel

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"
)

// Signal is a counting wake-up flag.
//
// Post is safe from interrupt context: it only bumps an atomic counter and
// never blocks. The cooperative loop consumes posts with TryWait or Wait.
type Signal struct {
	n atomic.Int32
}

// Post adds one wake-up.
func (s *Signal) Post() {
	s.n.Add(1)
}

// Pending returns the number of unconsumed posts.
func (s *Signal) Pending() int {
	return int(s.n.Load())
}

// TryWait consumes one post, returning false if none is pending.
func (s *Signal) TryWait() bool {
	for {
		n := s.n.Load()
		if n <= 0 {
			return false
		}
		if s.n.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// Wait consumes one post, yielding between polls until ctx is done.
func (s *Signal) Wait(ctx context.Context) error {
	for spins := 0; ; spins++ {
		if s.TryWait() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if spins < 64 {
			runtime.Gosched()
			continue
		}
		time.Sleep(100 * time.Microsecond)
	}
}
