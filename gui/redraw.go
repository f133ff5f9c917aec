package gui

import (
	"ember/gfx"
	"ember/list"
)

// Dirty returns how many widgets the next pass would repaint. A dirty
// container counts once since its whole subtree is repainted with it.
func (c *Context) Dirty() int {
	return c.countDirty(&c.desktop)
}

func (c *Context) countDirty(r *list.Root) int {
	count := 0
	for i := list.Next(c.nodes, r, list.Nil); i != list.Nil; i = list.Next(c.nodes, r, i) {
		n := &c.nodes[i]
		if n.flags&(FlagHidden|FlagRemove) != 0 {
			continue
		}
		if n.flags&FlagRedraw != 0 {
			count++
			continue
		}
		if n.children != nil {
			count += c.countDirty(&n.children.root)
		}
	}
	return count
}

// Redraw runs one redraw pass and returns the number of widgets painted.
//
// Nothing is drawn while a layer switch is pending or the driver is busy.
// With two layers a pass that painted anything ends in a layer switch.
func (c *Context) Redraw() int {
	if c.layers.Busy() {
		return 0
	}
	if c.Dirty() == 0 {
		c.clip = gfx.Rect{}
		return 0
	}
	if !c.lcd.IsReady() {
		return 0
	}
	c.layers.prepare()

	clip := c.clip.Intersect(c.screen)
	drawn := c.drawList(&c.desktop, clip)
	c.clip = gfx.Rect{}

	if drawn > 0 && c.layers.Count() > 1 {
		if c.layers.RequestSwap() {
			c.debugf("gui: %d painted, layer %d pending", drawn, c.layers.Active())
		} else {
			c.logf("gui: layer switch to %d refused", c.layers.Drawing())
		}
	}
	return drawn
}

func (c *Context) drawList(r *list.Root, clip gfx.Rect) int {
	drawn := 0
	for i := list.Next(c.nodes, r, list.Nil); i != list.Nil; i = list.Next(c.nodes, r, i) {
		h := Handle(i)
		n := &c.nodes[h]
		if n.flags&(FlagHidden|FlagRemove) != 0 {
			continue
		}
		dirty := n.flags&FlagRedraw != 0
		n.flags &^= FlagRedraw
		if dirty && c.paint(h, clip) {
			drawn++
		}
		if n.children == nil {
			continue
		}
		if dirty {
			// Children sit on top of the freshly painted parent.
			for ch := list.Next(c.nodes, &n.children.root, list.Nil); ch != list.Nil; ch = list.Next(c.nodes, &n.children.root, ch) {
				c.nodes[ch].flags |= FlagRedraw
			}
		}
		// Recurse even with an empty clip so child flags are cleared.
		drawn += c.drawList(&n.children.root, clip.Intersect(c.Rect(h)))
	}
	return drawn
}

// paint sends CmdDraw to h if it is drawable and intersects clip.
func (c *Context) paint(h Handle, clip gfx.Rect) bool {
	n := &c.nodes[h]
	if n.behavior == nil {
		return false
	}
	r := c.Rect(h)
	vis := r.Intersect(clip)
	if vis.Empty() {
		return false
	}
	c.send(h, CmdDraw, &Event{
		OK:     true,
		Canvas: gfx.NewCanvas(c.lcd, c.layers.Drawing(), r, vis),
	})
	return true
}
