package gui

import (
	"ember/gfx"
	"ember/list"
)

// Create adds a widget under parent (None for the desktop) at the end of
// its z-group.
//
// When the arena is full Create returns ErrNoMemory and the tree is
// unchanged. When the behavior's init step fails Create returns the live
// handle together with ErrInitFailed; the caller decides whether to Remove
// it.
func (c *Context) Create(parent Handle, spec Spec) (Handle, error) {
	var pr *list.Root
	if parent == None {
		pr = &c.desktop
	} else {
		p := c.node(parent)
		if p == nil || p.children == nil || p.flags&FlagRemove != 0 {
			return None, ErrBadParent
		}
		pr = &p.children.root
	}
	if len(c.free) == 0 {
		return None, ErrNoMemory
	}
	h := c.free[len(c.free)-1]
	c.free = c.free[:len(c.free)-1]

	c.nodes[h] = node{
		links:    list.Unlinked(),
		used:     true,
		id:       spec.ID,
		caps:     spec.Caps,
		flags:    spec.Flags & specFlags,
		behavior: spec.Behavior,
		parent:   parent,
		x:        spec.X,
		y:        spec.Y,
		w:        spec.Width,
		h:        spec.Height,
		z:        spec.ZIndex,
		expanded: spec.Expanded,
	}
	n := &c.nodes[h]
	if spec.Caps&CapChildren != 0 {
		n.children = &children{root: list.NewRoot()}
	}

	c.notify(h, CmdPreInit)
	c.insertByZ(pr, h)
	c.Invalidate(h)

	e := Event{OK: true}
	c.send(h, CmdInit, &e)
	if !e.OK {
		c.debugf("gui: widget %d (id %d) init failed", h, spec.ID)
		return h, ErrInitFailed
	}
	return h, nil
}

// insertByZ links h before the first sibling with a higher z-index.
func (c *Context) insertByZ(r *list.Root, h Handle) {
	z := c.nodes[h].z
	at := list.Nil
	for i := list.Next(c.nodes, r, list.Nil); i != list.Nil; i = list.Next(c.nodes, r, i) {
		if c.nodes[i].z > z {
			at = i
			break
		}
	}
	list.InsertBefore(c.nodes, r, h.idx(), at)
}

// Remove schedules h and its subtree for deletion. It returns false if h
// is not alive or its behavior vetoes removal. Focus and active references
// into the subtree are dropped immediately; the widgets themselves are
// collected by the next Process.
func (c *Context) Remove(h Handle) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.flags&FlagRemove != 0 {
		return true
	}
	e := Event{OK: true}
	c.send(h, CmdCanRemove, &e)
	if !e.OK {
		return false
	}
	c.markRemoved(h)
	c.removals++
	return true
}

func (c *Context) markRemoved(h Handle) {
	n := &c.nodes[h]
	n.flags |= FlagRemove
	if c.focused == h {
		c.clearFocus()
	}
	if c.active == h {
		c.clearActive()
	}
	if n.children != nil {
		list.Walk(c.nodes, &n.children.root, func(i list.Index) bool {
			c.markRemoved(Handle(i))
			return true
		})
	}
}

// collect frees every widget marked for removal.
func (c *Context) collect() int {
	if c.removals == 0 {
		return 0
	}
	c.removals = 0
	return c.collectList(&c.desktop)
}

func (c *Context) collectList(r *list.Root) int {
	freed := 0
	list.Walk(c.nodes, r, func(i list.Index) bool {
		h := Handle(i)
		n := &c.nodes[h]
		if n.flags&FlagRemove != 0 {
			area := c.visible(h)
			freed += c.destroy(h)
			c.invalidateArea(area)
			return true
		}
		if n.children != nil {
			freed += c.collectList(&n.children.root)
		}
		return true
	})
	return freed
}

// destroy unlinks and frees h and its subtree, children first.
func (c *Context) destroy(h Handle) int {
	n := &c.nodes[h]
	freed := 0
	if n.children != nil {
		list.Walk(c.nodes, &n.children.root, func(i list.Index) bool {
			freed += c.destroy(Handle(i))
			return true
		})
	}
	c.notify(h, CmdRemove)
	if c.focused == h {
		c.focused = None
	}
	if c.active == h {
		c.active = None
	}
	list.Remove(c.nodes, c.siblings(h), h.idx())
	c.debugf("gui: collected widget %d (id %d)", h, n.id)
	c.nodes[h] = node{}
	c.free = append(c.free, h)
	return freed + 1
}

// Parent returns the parent of h, or None for top-level widgets.
func (c *Context) Parent(h Handle) Handle {
	n := c.node(h)
	if n == nil {
		return None
	}
	return n.parent
}

// Children returns the direct children of h in paint order. None lists the
// desktop.
func (c *Context) Children(h Handle) []Handle {
	r := c.childList(h)
	if r == nil {
		return nil
	}
	out := make([]Handle, 0, r.Len)
	for i := list.Next(c.nodes, r, list.Nil); i != list.Nil; i = list.Next(c.nodes, r, i) {
		out = append(out, Handle(i))
	}
	return out
}

// FirstChild returns the bottom-most child of h (desktop for None).
func (c *Context) FirstChild(h Handle) Handle {
	r := c.childList(h)
	if r == nil {
		return None
	}
	return Handle(list.Next(c.nodes, r, list.Nil))
}

// LastChild returns the topmost child of h (desktop for None).
func (c *Context) LastChild(h Handle) Handle {
	r := c.childList(h)
	if r == nil {
		return None
	}
	return Handle(list.Prev(c.nodes, r, list.Nil))
}

func (c *Context) NextSibling(h Handle) Handle {
	r := c.siblings(h)
	if r == nil {
		return None
	}
	return Handle(list.Next(c.nodes, r, h.idx()))
}

func (c *Context) PrevSibling(h Handle) Handle {
	r := c.siblings(h)
	if r == nil {
		return None
	}
	return Handle(list.Prev(c.nodes, r, h.idx()))
}

// Walk visits every widget depth-first in paint order. Returning false from
// fn skips the widget's children.
func (c *Context) Walk(fn func(h Handle, depth int) bool) {
	c.walk(&c.desktop, 0, fn)
}

func (c *Context) walk(r *list.Root, depth int, fn func(Handle, int) bool) {
	for i := list.Next(c.nodes, r, list.Nil); i != list.Nil; i = list.Next(c.nodes, r, i) {
		n := &c.nodes[i]
		if fn(Handle(i), depth) && n.children != nil {
			c.walk(&n.children.root, depth+1, fn)
		}
	}
}

// Find returns the first widget with id in paint order.
func (c *Context) Find(id ID) Handle {
	found := None
	c.Walk(func(h Handle, _ int) bool {
		if found != None {
			return false
		}
		if c.nodes[h].id == id && c.nodes[h].flags&FlagRemove == 0 {
			found = h
			return false
		}
		return true
	})
	return found
}

func (c *Context) ID(h Handle) ID {
	if n := c.node(h); n != nil {
		return n.id
	}
	return 0
}

func (c *Context) Flags(h Handle) Flags {
	if n := c.node(h); n != nil {
		return n.flags
	}
	return 0
}

func (c *Context) Caps(h Handle) Caps {
	if n := c.node(h); n != nil {
		return n.caps
	}
	return 0
}

func (c *Context) ZIndex(h Handle) int32 {
	if n := c.node(h); n != nil {
		return n.z
	}
	return 0
}

// Behavior returns the behavior h was created with.
func (c *Context) Behavior(h Handle) Behavior {
	if n := c.node(h); n != nil {
		return n.behavior
	}
	return nil
}

func (c *Context) IsHidden(h Handle) bool   { return c.Flags(h)&FlagHidden != 0 }
func (c *Context) IsDisabled(h Handle) bool { return c.Flags(h)&FlagDisabled != 0 }
func (c *Context) IsFocused(h Handle) bool  { return c.Flags(h)&FlagFocused != 0 }
func (c *Context) IsActive(h Handle) bool   { return c.Flags(h)&FlagActive != 0 }
func (c *Context) Is3D(h Handle) bool       { return c.Flags(h)&Flag3D != 0 }

// IsVisible reports whether h and all of its ancestors are shown.
func (c *Context) IsVisible(h Handle) bool {
	for n := c.node(h); n != nil; n = c.node(n.parent) {
		if n.flags&(FlagHidden|FlagRemove) != 0 {
			return false
		}
	}
	return c.Alive(h)
}

// Focused returns the widget holding keyboard focus.
func (c *Context) Focused() Handle { return c.focused }

// Active returns the widget owning the current touch.
func (c *Context) Active() Handle { return c.active }

func (c *Context) Show(h Handle) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.flags&FlagHidden != 0 {
		n.flags &^= FlagHidden
		c.Invalidate(h)
	}
	return true
}

func (c *Context) Hide(h Handle) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.flags&FlagHidden != 0 {
		return true
	}
	area := c.visible(h)
	n.flags |= FlagHidden
	c.dropInputIn(h)
	c.invalidateArea(area)
	return true
}

func (c *Context) Enable(h Handle) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.flags&FlagDisabled != 0 {
		n.flags &^= FlagDisabled
		c.Invalidate(h)
	}
	return true
}

func (c *Context) Disable(h Handle) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.flags&FlagDisabled == 0 {
		n.flags |= FlagDisabled
		c.dropInputIn(h)
		c.Invalidate(h)
	}
	return true
}

// dropInputIn releases focus and touch ownership held by h or a descendant.
func (c *Context) dropInputIn(h Handle) {
	if c.focused != None && c.isWithin(c.focused, h) {
		c.clearFocus()
	}
	if c.active != None && c.isWithin(c.active, h) {
		c.clearActive()
	}
}

// isWithin reports whether w is h or one of its descendants.
func (c *Context) isWithin(w, h Handle) bool {
	for cur := w; cur != None; cur = c.Parent(cur) {
		if cur == h {
			return true
		}
	}
	return false
}

// Set3D toggles the 3D drawing style flag.
func (c *Context) Set3D(h Handle, on bool) bool {
	return c.setFlag(h, Flag3D, on)
}

// SetIgnoreInvalidate suppresses Invalidate for h while on.
func (c *Context) SetIgnoreInvalidate(h Handle, on bool) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if on {
		n.flags |= FlagIgnoreInvalidate
	} else {
		n.flags &^= FlagIgnoreInvalidate
	}
	return true
}

func (c *Context) setFlag(h Handle, f Flags, on bool) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	was := n.flags&f != 0
	if was == on {
		return true
	}
	if on {
		n.flags |= f
	} else {
		n.flags &^= f
	}
	c.Invalidate(h)
	return true
}

// SetPosition moves h relative to its parent's inner area.
func (c *Context) SetPosition(h Handle, x, y int16) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.x == x && n.y == y {
		return true
	}
	area := c.visible(h)
	n.x, n.y = x, y
	c.invalidateArea(area)
	c.Invalidate(h)
	return true
}

func (c *Context) SetSize(h Handle, w, hgt Dim) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.w == w && n.h == hgt {
		return true
	}
	area := c.visible(h)
	n.w, n.h = w, hgt
	c.invalidateArea(area)
	c.Invalidate(h)
	return true
}

// SetExpanded makes h cover its parent's full inner area while on.
func (c *Context) SetExpanded(h Handle, on bool) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.expanded == on {
		return true
	}
	area := c.visible(h)
	n.expanded = on
	c.invalidateArea(area)
	c.Invalidate(h)
	return true
}

func (c *Context) IsExpanded(h Handle) bool {
	n := c.node(h)
	return n != nil && n.expanded
}

// SetZIndex moves h to the end of its new z-group.
func (c *Context) SetZIndex(h Handle, z int32) bool {
	n := c.node(h)
	if n == nil {
		return false
	}
	if n.z == z {
		return true
	}
	r := c.siblings(h)
	list.Remove(c.nodes, r, h.idx())
	n.z = z
	c.insertByZ(r, h)
	c.invalidateArea(c.visible(h))
	return true
}

// SetParent moves h under parent (None for the desktop). Moving a widget
// into its own subtree is refused.
func (c *Context) SetParent(h, parent Handle) error {
	n := c.node(h)
	if n == nil {
		return ErrBadParent
	}
	if parent == n.parent {
		return nil
	}
	if parent != None {
		p := c.node(parent)
		if p == nil || p.children == nil || p.flags&FlagRemove != 0 || c.isWithin(parent, h) {
			return ErrBadParent
		}
	}
	area := c.visible(h)
	list.Remove(c.nodes, c.siblings(h), h.idx())
	n.parent = parent
	c.insertByZ(c.childList(parent), h)
	c.invalidateArea(area)
	c.Invalidate(h)
	return nil
}

// SetScroll offsets the children of container h.
func (c *Context) SetScroll(h Handle, x, y int16) bool {
	n := c.node(h)
	if n == nil || n.children == nil {
		return false
	}
	if n.children.scrollX == x && n.children.scrollY == y {
		return true
	}
	n.children.scrollX, n.children.scrollY = x, y
	c.Invalidate(h)
	return true
}

func (c *Context) Scroll(h Handle) (x, y int16) {
	n := c.node(h)
	if n == nil || n.children == nil {
		return 0, 0
	}
	return n.children.scrollX, n.children.scrollY
}

// Focus gives keyboard focus to h. Hidden, disabled and removed widgets
// cannot take focus.
func (c *Context) Focus(h Handle) bool {
	if !c.focusable(h) {
		return false
	}
	if c.focused == h {
		return true
	}
	c.clearFocus()
	c.setFocus(h)
	return true
}

// Unfocus drops keyboard focus.
func (c *Context) Unfocus() {
	c.clearFocus()
}

func (c *Context) focusable(h Handle) bool {
	n := c.node(h)
	return n != nil && n.flags&(FlagHidden|FlagDisabled|FlagRemove) == 0
}

func (c *Context) setFocus(h Handle) {
	c.nodes[h].flags |= FlagFocused
	c.focused = h
	c.notify(h, CmdFocusIn)
	c.Invalidate(h)
}

func (c *Context) clearFocus() {
	h := c.focused
	if h == None {
		return
	}
	c.focused = None
	if n := c.node(h); n != nil {
		n.flags &^= FlagFocused
		c.notify(h, CmdFocusOut)
		c.Invalidate(h)
	}
}

func (c *Context) setActive(h Handle) {
	c.nodes[h].flags |= FlagActive
	c.active = h
	c.notify(h, CmdActiveIn)
	c.Invalidate(h)
}

func (c *Context) clearActive() {
	h := c.active
	if h == None {
		return
	}
	c.active = None
	if n := c.node(h); n != nil {
		n.flags &^= FlagActive
		c.notify(h, CmdActiveOut)
		c.Invalidate(h)
	}
}

// raise moves h to the end of its z-group. It reports whether h moved.
func (c *Context) raise(h Handle) bool {
	r := c.siblings(h)
	if r == nil {
		return false
	}
	z := c.nodes[h].z
	moved := false
	for {
		next := list.Next(c.nodes, r, h.idx())
		if next == list.Nil || c.nodes[next].z > z {
			break
		}
		if !list.MoveTowardTail(c.nodes, r, h.idx()) {
			break
		}
		moved = true
	}
	if moved {
		c.Invalidate(h)
	}
	return moved
}

// Raise moves h and then each ancestor to the end of its z-group.
func (c *Context) Raise(h Handle) bool {
	if !c.Alive(h) {
		return false
	}
	for cur := h; cur != None; cur = c.Parent(cur) {
		c.raise(cur)
	}
	return true
}

// Canvas returns a canvas over h on the drawing layer. It is meant for
// tests and tools; widgets paint through CmdDraw.
func (c *Context) Canvas(h Handle) *gfx.Canvas {
	return gfx.NewCanvas(c.lcd, c.layers.Drawing(), c.Rect(h), c.visible(h))
}
