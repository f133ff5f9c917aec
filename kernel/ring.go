package kernel

import (
	"runtime"
	"sync/atomic"
)

// DefaultRingSlots is the capacity used when NewRing is given zero.
const DefaultRingSlots = 32

// Ring is a fixed-size single-producer, single-consumer queue.
//
// The producer may run on a different execution context than the consumer
// (an input driver goroutine or interrupt handler). It is designed for
// bare-metal use: no allocations after construction, no locks.
type Ring[T any] struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	mask  uint32
	slots []T
}

// NewRing returns a ring with room for at least n entries.
// The capacity is rounded up to a power of two.
func NewRing[T any](n int) *Ring[T] {
	if n <= 0 {
		n = DefaultRingSlots
	}
	size := uint32(1)
	for size < uint32(n) {
		size <<= 1
	}
	return &Ring[T]{mask: size - 1, slots: make([]T, size)}
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int { return len(r.slots) }

// Len returns the number of queued entries.
func (r *Ring[T]) Len() int {
	return int(r.head.Load() - r.tail.Load())
}

// TryPush appends v, returning false if the ring is full.
func (r *Ring[T]) TryPush(v T) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if head-tail > r.mask {
		return false
	}
	r.slots[head&r.mask] = v
	r.head.Store(head + 1)
	return true
}

// Push appends v, yielding until a slot frees up.
func (r *Ring[T]) Push(v T) {
	for !r.TryPush(v) {
		runtime.Gosched()
	}
}

// TryPop removes the oldest entry, returning false if the ring is empty.
func (r *Ring[T]) TryPop() (T, bool) {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail == head {
		var zero T
		return zero, false
	}
	v := r.slots[tail&r.mask]
	r.tail.Store(tail + 1)
	return v, true
}

// Drain pops every queued entry, oldest first, until fn returns false.
// It returns the number of entries consumed.
func (r *Ring[T]) Drain(fn func(T) bool) int {
	n := 0
	for {
		v, ok := r.TryPop()
		if !ok {
			return n
		}
		n++
		if !fn(v) {
			return n
		}
	}
}
