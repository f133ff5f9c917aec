package gui

import "ember/list"

// processKey routes one key to the focused widget. Tab and Shift+Tab move
// focus among the focused widget's siblings instead.
func (c *Context) processKey(k KeySample) {
	if c.focused == None {
		return
	}
	if k.Rune() == KeyTab {
		c.cycleFocus(k.Flags&KeyShift != 0)
		return
	}
	c.send(c.focused, CmdKeyPress, &Event{OK: true, Key: k})
}

// cycleFocus moves focus to the next (or previous) focusable sibling,
// wrapping at the list ends. It returns false if no other sibling can take
// focus.
func (c *Context) cycleFocus(back bool) bool {
	cur := c.focused
	r := c.siblings(cur)
	if r == nil {
		return false
	}
	step := list.Next
	if back {
		step = list.Prev
	}
	for i := step(c.nodes, r, cur.idx()); ; i = step(c.nodes, r, i) {
		if i == list.Nil {
			i = step(c.nodes, r, list.Nil)
		}
		if i == cur.idx() || i == list.Nil {
			return false
		}
		if c.focusable(Handle(i)) {
			c.Focus(Handle(i))
			return true
		}
	}
}
