// Package gui is the widget-tree, redraw and input-dispatch engine.
//
// All widgets of one GUI live in a fixed-size arena owned by a Context and
// are addressed by Handle. Siblings form an ordered list whose order is the
// paint order (head is painted first) and, reversed, the hit-test order.
// A Context is driven by calling Process repeatedly from a single
// cooperative execution context; only ConfirmLayer, PushTouch and PushKey
// may be called from elsewhere.
package gui

import (
	"errors"

	"ember/list"
)

var (
	ErrNoDriver   = errors.New("gui: no display driver")
	ErrNoMemory   = errors.New("gui: widget arena exhausted")
	ErrInitFailed = errors.New("gui: widget init failed")
	ErrBadParent  = errors.New("gui: parent cannot hold children")
)

// Handle addresses a widget inside its Context. Handles of collected
// widgets are recycled.
type Handle int32

// None is the null widget handle.
const None Handle = -1

func (h Handle) idx() list.Index { return list.Index(h) }

// ID is an application-chosen widget identifier. It need not be unique.
type ID uint32

// Caps describes what a widget kind can do.
type Caps uint8

const (
	// CapChildren marks a container that owns a child list.
	CapChildren Caps = 1 << iota
	// CapDialog marks a modal dialog base: while one is visible at top
	// level, touches only reach it and its descendants.
	CapDialog
)

// Flags is the widget state bitset.
type Flags uint16

const (
	FlagRedraw Flags = 1 << iota
	FlagHidden
	FlagDisabled
	FlagActive
	FlagFocused
	Flag3D
	FlagIgnoreInvalidate
	FlagRemove
)

// Flags a Spec may set at creation time.
const specFlags = FlagHidden | FlagDisabled | Flag3D | FlagIgnoreInvalidate

func (f Flags) String() string {
	names := [...]string{"redraw", "hidden", "disabled", "active", "focused", "3d", "ignore-invalidate", "remove"}
	s := ""
	for i, name := range names {
		if f&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "|"
		}
		s += name
	}
	if s == "" {
		return "none"
	}
	return s
}

// SizeMode selects how a Dim is resolved against the parent.
type SizeMode uint8

const (
	SizePixels SizeMode = iota
	SizePercent
	SizeFill
)

// Dim is one widget dimension.
type Dim struct {
	Value int16
	Mode  SizeMode
}

// Px is a fixed size in pixels.
func Px(v int16) Dim { return Dim{Value: v, Mode: SizePixels} }

// Percent is a size relative to the parent's size.
func Percent(v int16) Dim { return Dim{Value: v, Mode: SizePercent} }

// Fill stretches from the widget position to the parent's far edge.
func Fill() Dim { return Dim{Mode: SizeFill} }

func (d Dim) resolve(parent, pos int) int {
	var v int
	switch d.Mode {
	case SizePercent:
		v = parent * int(d.Value) / 100
	case SizeFill:
		v = parent - pos
	default:
		v = int(d.Value)
	}
	if v < 0 {
		return 0
	}
	return v
}

// Spec describes a widget to Create.
type Spec struct {
	ID       ID
	Caps     Caps
	Behavior Behavior
	X, Y     int16
	Width    Dim
	Height   Dim
	ZIndex   int32
	// Flags may carry FlagHidden, FlagDisabled, Flag3D and
	// FlagIgnoreInvalidate; other bits are ignored.
	Flags    Flags
	Expanded bool
}

type children struct {
	root    list.Root
	scrollX int16
	scrollY int16
}

type node struct {
	links    list.Links
	used     bool
	id       ID
	caps     Caps
	flags    Flags
	behavior Behavior
	parent   Handle
	x, y     int16
	w, h     Dim
	z        int32
	expanded bool

	// children is nil for leaf widgets.
	children *children
}

// nodes is the widget arena. It is allocated once, so list operations may
// hold it by value.
type nodes []node

func (ns nodes) Links(i list.Index) *list.Links {
	if i < 0 || int(i) >= len(ns) || !ns[i].used {
		return nil
	}
	return &ns[i].links
}
