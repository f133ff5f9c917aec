package gui

import "ember/list"

// Timer addresses a software timer owned by a Context.
type Timer int32

// NoTimer is the null timer handle.
const NoTimer Timer = -1

// TimerFunc runs on the loop when a timer expires.
type TimerFunc func(c *Context, t Timer)

type timer struct {
	links    list.Links
	used     bool
	dead     bool
	running  bool
	periodic bool
	period   uint64
	due      uint64
	fn       TimerFunc
}

type timers []timer

func (ts timers) Links(i list.Index) *list.Links {
	if i < 0 || int(i) >= len(ts) || !ts[i].used {
		return nil
	}
	return &ts[i].links
}

func (c *Context) timer(t Timer) *timer {
	if t < 0 || int(t) >= len(c.timers) {
		return nil
	}
	tm := &c.timers[t]
	if !tm.used || tm.dead {
		return nil
	}
	return tm
}

// NewTimer allocates a stopped timer firing fn every period milliseconds
// (once if periodic is false). It returns NoTimer when the arena is full.
func (c *Context) NewTimer(period uint32, periodic bool, fn TimerFunc) Timer {
	if fn == nil || len(c.timerFree) == 0 {
		return NoTimer
	}
	t := c.timerFree[len(c.timerFree)-1]
	c.timerFree = c.timerFree[:len(c.timerFree)-1]
	c.timers[t] = timer{
		links:    list.Unlinked(),
		used:     true,
		periodic: periodic,
		period:   uint64(period),
		fn:       fn,
	}
	list.Add(c.timers, &c.timerList, list.Index(t))
	return t
}

// StartTimer arms t one period from now. Starting a running timer keeps its
// deadline.
func (c *Context) StartTimer(t Timer) bool {
	tm := c.timer(t)
	if tm == nil {
		return false
	}
	if !tm.running {
		tm.running = true
		tm.due = c.clock.Millis() + tm.period
	}
	return true
}

// ResetTimer re-arms t one period from now, starting it if needed.
func (c *Context) ResetTimer(t Timer) bool {
	tm := c.timer(t)
	if tm == nil {
		return false
	}
	tm.running = true
	tm.due = c.clock.Millis() + tm.period
	return true
}

func (c *Context) StopTimer(t Timer) bool {
	tm := c.timer(t)
	if tm == nil {
		return false
	}
	tm.running = false
	return true
}

// TimerRunning reports whether t is armed.
func (c *Context) TimerRunning(t Timer) bool {
	tm := c.timer(t)
	return tm != nil && tm.running
}

// DeleteTimer frees t. A timer may delete itself from its callback.
func (c *Context) DeleteTimer(t Timer) bool {
	tm := c.timer(t)
	if tm == nil {
		return false
	}
	tm.running = false
	tm.dead = true
	if c.inTimers {
		c.timerReaps++
		return true
	}
	c.reapTimer(t)
	return true
}

func (c *Context) reapTimer(t Timer) {
	list.Remove(c.timers, &c.timerList, list.Index(t))
	c.timers[t] = timer{}
	c.timerFree = append(c.timerFree, t)
}

// processTimers runs every timer due at now and returns how many fired.
func (c *Context) processTimers(now uint64) int {
	c.inTimers = true
	fired := 0
	for i := list.Next(c.timers, &c.timerList, list.Nil); i != list.Nil; i = list.Next(c.timers, &c.timerList, i) {
		tm := &c.timers[i]
		if tm.dead || !tm.running || now < tm.due {
			continue
		}
		if tm.periodic && tm.period > 0 {
			tm.due += tm.period
			if tm.due <= now {
				tm.due = now + tm.period
			}
		} else {
			tm.running = false
		}
		fired++
		tm.fn(c, Timer(i))
	}
	c.inTimers = false

	if c.timerReaps > 0 {
		c.timerReaps = 0
		list.Walk(c.timers, &c.timerList, func(i list.Index) bool {
			if c.timers[i].dead {
				c.reapTimer(Timer(i))
			}
			return true
		})
	}
	return fired
}
