//go:build !tinygo

package hal

import (
	"testing"
	"time"
)

func TestHostTimeStepAccumulates(t *testing.T) {
	now := time.Unix(0, 0)
	ht := newHostTimeWithClock(func() time.Time { return now })

	ht.step()
	if got := <-ht.Ticks(); got != 1 {
		t.Fatalf("first tick = %d, want 1", got)
	}

	now = now.Add(500 * time.Microsecond)
	ht.step()
	select {
	case got := <-ht.Ticks():
		t.Fatalf("tick %d emitted before a full millisecond elapsed", got)
	default:
	}

	now = now.Add(2600 * time.Microsecond) // 3.1ms since start
	ht.step()
	if got := <-ht.Ticks(); got != 4 {
		t.Fatalf("tick = %d, want 4", got)
	}
}

func TestHostTouchReportsOnlyChanges(t *testing.T) {
	tc := newHostTouch()

	tc.report(TouchEvent{X: 1, Y: 1})
	tc.report(TouchEvent{X: 2, Y: 2})
	tc.report(TouchEvent{X: 3, Y: 3, Pressed: true})
	tc.report(TouchEvent{X: 3, Y: 3, Pressed: true})
	tc.report(TouchEvent{X: 4, Y: 3, Pressed: true})
	tc.report(TouchEvent{X: 4, Y: 3})

	want := []TouchEvent{
		{X: 1, Y: 1},
		{X: 3, Y: 3, Pressed: true},
		{X: 4, Y: 3, Pressed: true},
		{X: 4, Y: 3},
	}
	for i, w := range want {
		select {
		case got := <-tc.Events():
			if got != w {
				t.Fatalf("event %d = %+v, want %+v", i, got, w)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}
	select {
	case got := <-tc.Events():
		t.Fatalf("unexpected event %+v", got)
	default:
	}
}
