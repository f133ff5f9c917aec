package gui

import (
	"ember/gfx"
	"ember/list"
)

// processTouch runs the touch state machine for one sample.
//
// A press edge with no owner hit-tests the tree from the top. While a
// widget owns the touch every pressed sample is a move and the release
// edge ends the touch. A released sample always leaves no owner.
func (c *Context) processTouch(s TouchSample) {
	was := c.lastTouch.Pressed
	c.lastTouch = s

	switch {
	case s.Pressed && !was && c.active == None:
		c.touchDown(s)
	case s.Pressed && c.active != None:
		c.sendTouch(c.active, CmdTouchMove, s)
	case !s.Pressed && was && c.active != None:
		c.sendTouch(c.active, CmdTouchEnd, s)
	}
	if !s.Pressed && c.active != None {
		c.clearActive()
	}
}

func (c *Context) touchInfo(h Handle, s TouchSample) TouchInfo {
	r := c.Rect(h)
	x, y := int(s.X[0]), int(s.Y[0])
	return TouchInfo{
		X:     x - r.X,
		Y:     y - r.Y,
		AbsX:  x,
		AbsY:  y,
		Count: int(s.Count),
		Time:  s.Time,
	}
}

func (c *Context) sendTouch(h Handle, cmd Command, s TouchSample) Result {
	return c.send(h, cmd, &Event{OK: true, Touch: c.touchInfo(h, s)})
}

func (c *Context) touchDown(s TouchSample) {
	x, y := int(s.X[0]), int(s.Y[0])

	var h Handle
	var res Result
	if d := c.topDialog(); d != None {
		h, res = c.hitWidget(d, x, y, s, c.screen)
	} else {
		h, res = c.hitList(&c.desktop, x, y, s, c.screen)
	}

	switch res {
	case Handled:
		c.grab(h)
	case HandledNoFocus:
		c.clearFocus()
		c.clearActive()
	default:
		c.debugf("gui: touch at %d,%d not handled", x, y)
	}
}

// topDialog returns the topmost visible top-level dialog base, or None.
func (c *Context) topDialog() Handle {
	for i := list.Prev(c.nodes, &c.desktop, list.Nil); i != list.Nil; i = list.Prev(c.nodes, &c.desktop, i) {
		n := &c.nodes[i]
		if n.caps&CapDialog != 0 && n.flags&(FlagHidden|FlagRemove) == 0 {
			return Handle(i)
		}
	}
	return None
}

// hitList offers the touch to the widgets of r from the topmost down.
func (c *Context) hitList(r *list.Root, x, y int, s TouchSample, clip gfx.Rect) (Handle, Result) {
	for i := list.Prev(c.nodes, r, list.Nil); i != list.Nil; i = list.Prev(c.nodes, r, i) {
		if h, res := c.hitWidget(Handle(i), x, y, s, clip); h != None {
			return h, res
		}
	}
	return None, Continue
}

// hitWidget offers the touch to the children of h first, then to h.
func (c *Context) hitWidget(h Handle, x, y int, s TouchSample, clip gfx.Rect) (Handle, Result) {
	n := &c.nodes[h]
	if n.flags&(FlagHidden|FlagDisabled|FlagRemove) != 0 {
		return None, Continue
	}
	r := c.Rect(h).Intersect(clip)
	if !r.Contains(x, y) {
		return None, Continue
	}
	if n.children != nil {
		if got, res := c.hitList(&n.children.root, x, y, s, r); got != None {
			return got, res
		}
	}
	switch res := c.sendTouch(h, CmdTouchStart, s); res {
	case Handled, HandledNoFocus:
		return h, res
	}
	return None, Continue
}

// grab makes h the focused and active widget and brings it and its
// ancestors to the top of their z-groups.
func (c *Context) grab(h Handle) {
	if c.focused != h {
		c.clearFocus()
		c.setFocus(h)
	}
	if c.active != h {
		c.clearActive()
		c.setActive(h)
	}
	c.Raise(h)
}
