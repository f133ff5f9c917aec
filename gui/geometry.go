package gui

import (
	"ember/gfx"
	"ember/list"
)

// Rect returns the absolute rectangle of h, unclipped.
func (c *Context) Rect(h Handle) gfx.Rect {
	n := c.node(h)
	if n == nil {
		return gfx.Rect{}
	}
	pr := c.screen
	var sx, sy int
	if n.parent != None {
		pr = c.Rect(n.parent)
		if p := c.node(n.parent); p != nil && p.children != nil {
			sx, sy = int(p.children.scrollX), int(p.children.scrollY)
		}
	}
	if n.expanded {
		return pr
	}
	x, y := int(n.x), int(n.y)
	return gfx.Rect{
		X: pr.X + x - sx,
		Y: pr.Y + y - sy,
		W: n.w.resolve(pr.W, x),
		H: n.h.resolve(pr.H, y),
	}
}

// Bounds returns the rectangle of h relative to its parent.
func (c *Context) Bounds(h Handle) gfx.Rect {
	r := c.Rect(h)
	n := c.node(h)
	if n == nil {
		return r
	}
	if n.parent == None {
		return r
	}
	pr := c.Rect(n.parent)
	return r.Translate(-pr.X, -pr.Y)
}

// visible returns the part of h not clipped away by its ancestors or the
// screen.
func (c *Context) visible(h Handle) gfx.Rect {
	r := c.Rect(h)
	for p := c.Parent(h); p != None; p = c.Parent(p) {
		r = r.Intersect(c.Rect(p))
	}
	return r.Intersect(c.screen)
}

// Invalidate marks h for repaint, extends the display clip by its visible
// area and marks later overlapping siblings at every ancestor level, since
// they paint over h. It returns false if h is not alive or ignores
// invalidation.
func (c *Context) Invalidate(h Handle) bool {
	n := c.node(h)
	if n == nil || n.flags&FlagIgnoreInvalidate != 0 {
		return false
	}
	n.flags |= FlagRedraw
	area := c.visible(h)
	if area.Empty() {
		return true
	}
	c.clip = c.clip.Union(area)

	for cur := h; cur != None; cur = c.Parent(cur) {
		r := c.siblings(cur)
		for s := list.Next(c.nodes, r, cur.idx()); s != list.Nil; s = list.Next(c.nodes, r, s) {
			sn := &c.nodes[s]
			if sn.flags&(FlagHidden|FlagRedraw) != 0 {
				continue
			}
			if c.Rect(Handle(s)).Overlaps(area) {
				sn.flags |= FlagRedraw
			}
		}
	}
	return true
}

// InvalidateRect repaints everything visible inside r, in screen
// coordinates.
func (c *Context) InvalidateRect(r gfx.Rect) {
	c.invalidateArea(r)
}

// invalidateArea is used when something leaves an area: every widget that
// shows through it is marked dirty.
func (c *Context) invalidateArea(area gfx.Rect) {
	area = area.Intersect(c.screen)
	if area.Empty() {
		return
	}
	c.clip = c.clip.Union(area)
	c.Walk(func(h Handle, _ int) bool {
		n := &c.nodes[h]
		if n.flags&(FlagHidden|FlagRemove) != 0 {
			return false
		}
		if !c.visible(h).Overlaps(area) {
			return false
		}
		if n.flags&FlagIgnoreInvalidate == 0 {
			n.flags |= FlagRedraw
		}
		return n.flags&FlagRedraw == 0
	})
}
