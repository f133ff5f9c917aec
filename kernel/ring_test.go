package kernel

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestRingTryPopEmpty(t *testing.T) {
	r := NewRing[int](4)

	_, ok := r.TryPop()
	if ok {
		t.Fatalf("TryPop() ok = true, want false")
	}
}

func TestRingCapacityRoundsUp(t *testing.T) {
	if got := NewRing[int](5).Cap(); got != 8 {
		t.Fatalf("Cap() = %d, want 8", got)
	}
	if got := NewRing[int](0).Cap(); got != DefaultRingSlots {
		t.Fatalf("Cap() = %d, want %d", got, DefaultRingSlots)
	}
}

func TestRingTryPushFull(t *testing.T) {
	r := NewRing[int](4)

	for i := 0; i < r.Cap(); i++ {
		if ok := r.TryPush(i); !ok {
			t.Fatalf("TryPush() ok = false at slot %d, want true", i)
		}
	}
	if ok := r.TryPush(99); ok {
		t.Fatalf("TryPush() ok = true when full, want false")
	}
	if got := r.Len(); got != r.Cap() {
		t.Fatalf("Len() = %d, want %d", got, r.Cap())
	}

	for i := 0; i < r.Cap(); i++ {
		v, ok := r.TryPop()
		if !ok {
			t.Fatalf("TryPop() ok = false at slot %d, want true", i)
		}
		if v != i {
			t.Fatalf("TryPop() = %d, want %d (FIFO)", v, i)
		}
	}
}

func TestRingDrainStopsEarly(t *testing.T) {
	r := NewRing[int](8)
	for i := 0; i < 5; i++ {
		r.TryPush(i)
	}

	var got []int
	n := r.Drain(func(v int) bool {
		got = append(got, v)
		return v < 2
	})
	if n != 3 {
		t.Fatalf("Drain() = %d, want 3", n)
	}
	if r.Len() != 2 {
		t.Fatalf("Len() after partial drain = %d, want 2", r.Len())
	}
}

func TestRingConcurrentProducer(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(2)
	defer runtime.GOMAXPROCS(oldProcs)

	const total = 20_000
	r := NewRing[uint32](16)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint32(0); i < total; i++ {
			r.Push(i)
		}
	}()

	next := uint32(0)
	for next < total {
		v, ok := r.TryPop()
		if !ok {
			runtime.Gosched()
			continue
		}
		if v != next {
			t.Fatalf("TryPop() = %d, want %d", v, next)
		}
		next++
	}
	wg.Wait()
}

func TestSignalCounts(t *testing.T) {
	var s Signal
	if s.TryWait() {
		t.Fatalf("TryWait() = true on fresh signal, want false")
	}
	s.Post()
	s.Post()
	if got := s.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	if !s.TryWait() || !s.TryWait() {
		t.Fatalf("TryWait() should consume both posts")
	}
	if s.TryWait() {
		t.Fatalf("TryWait() = true after consuming all posts")
	}
}

func TestSignalWaitFromOtherGoroutine(t *testing.T) {
	var s Signal
	go func() {
		time.Sleep(time.Millisecond)
		s.Post()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("Wait() = %v, want nil", err)
	}
}

func TestSignalWaitCanceled(t *testing.T) {
	var s Signal
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Wait(ctx); err != context.Canceled {
		t.Fatalf("Wait() = %v, want context.Canceled", err)
	}
}

func TestClockAdvanceTo(t *testing.T) {
	var c Clock
	c.Advance(5)
	c.AdvanceTo(3)
	if got := c.Millis(); got != 5 {
		t.Fatalf("Millis() = %d, want 5", got)
	}
	c.AdvanceTo(12)
	if got := c.Millis(); got != 12 {
		t.Fatalf("Millis() = %d, want 12", got)
	}
}
