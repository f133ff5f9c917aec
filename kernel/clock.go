package kernel

import "sync/atomic"

// Clock is a monotonic millisecond counter advanced by an external tick
// source (a timer interrupt on the board, a ticker goroutine on the host).
type Clock struct {
	ms atomic.Uint64
}

// Advance moves the clock forward by n milliseconds and returns the new value.
func (c *Clock) Advance(n uint64) uint64 {
	return c.ms.Add(n)
}

// AdvanceTo moves the clock to ms if ms is ahead of it. Stale values are ignored.
func (c *Clock) AdvanceTo(ms uint64) {
	for {
		cur := c.ms.Load()
		if ms <= cur {
			return
		}
		if c.ms.CompareAndSwap(cur, ms) {
			return
		}
	}
}

// Millis returns the current counter value.
func (c *Clock) Millis() uint64 {
	return c.ms.Load()
}
