package gui

// Stats summarises one Process call.
type Stats struct {
	Timers    int
	Keys      int
	Touches   int
	Collected int
	Painted   int
}

// Process runs one iteration of the cooperative loop: expired timers, then
// queued keys, then queued touches in arrival order, then collection of
// removed widgets, then one redraw pass unless a layer switch is pending.
// It never blocks and returns the number of widgets painted.
func (c *Context) Process() int {
	return c.Step().Painted
}

// Step is Process with per-phase counts.
func (c *Context) Step() Stats {
	var st Stats
	st.Timers = c.processTimers(c.clock.Millis())
	st.Keys = c.keyQ.Drain(func(k KeySample) bool {
		c.processKey(k)
		return true
	})
	st.Touches = c.touchQ.Drain(func(s TouchSample) bool {
		c.processTouch(s)
		return true
	})
	st.Collected = c.collect()
	st.Painted = c.Redraw()
	return st
}
