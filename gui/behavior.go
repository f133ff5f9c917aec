package gui

import "ember/gfx"

// Command is sent to a widget's Behavior.
type Command uint8

const (
	CmdPreInit Command = iota + 1
	CmdInit
	CmdDraw
	CmdCanRemove
	CmdRemove
	CmdFocusIn
	CmdFocusOut
	CmdActiveIn
	CmdActiveOut
	CmdTouchStart
	CmdTouchMove
	CmdTouchEnd
	CmdKeyPress
)

func (c Command) String() string {
	switch c {
	case CmdPreInit:
		return "pre-init"
	case CmdInit:
		return "init"
	case CmdDraw:
		return "draw"
	case CmdCanRemove:
		return "can-remove"
	case CmdRemove:
		return "remove"
	case CmdFocusIn:
		return "focus-in"
	case CmdFocusOut:
		return "focus-out"
	case CmdActiveIn:
		return "active-in"
	case CmdActiveOut:
		return "active-out"
	case CmdTouchStart:
		return "touch-start"
	case CmdTouchMove:
		return "touch-move"
	case CmdTouchEnd:
		return "touch-end"
	case CmdKeyPress:
		return "key-press"
	default:
		return "unknown"
	}
}

// Result is a Behavior's answer to a command.
type Result uint8

const (
	// Unhandled asks the core to apply its default processing.
	Unhandled Result = iota
	// Handled consumes the command. For CmdTouchStart the widget also
	// becomes focused and active.
	Handled
	// HandledNoFocus consumes CmdTouchStart without taking focus.
	HandledNoFocus
	// Continue declines the command. For CmdTouchStart hit-testing moves
	// on to the next candidate below the widget.
	Continue
)

func (r Result) String() string {
	switch r {
	case Unhandled:
		return "unhandled"
	case Handled:
		return "handled"
	case HandledNoFocus:
		return "handled-no-focus"
	case Continue:
		return "continue"
	default:
		return "unknown"
	}
}

// TouchInfo is the touch input of CmdTouchStart/Move/End.
type TouchInfo struct {
	// X, Y are relative to the widget's top-left corner.
	X, Y int
	// AbsX, AbsY are screen coordinates.
	AbsX, AbsY int
	Count      int
	Time       uint32
}

// Event carries one command to a Behavior.
type Event struct {
	Context *Context
	Widget  Handle
	Cmd     Command

	// Canvas is set for CmdDraw.
	Canvas *gfx.Canvas
	// Touch is set for touch commands.
	Touch TouchInfo
	// Key is set for CmdKeyPress.
	Key KeySample

	// OK is an output for CmdInit (success) and CmdCanRemove (permission).
	// The core presets it to true.
	OK bool
}

// Behavior implements one widget kind.
type Behavior interface {
	Handle(e *Event) Result
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(e *Event) Result

func (f BehaviorFunc) Handle(e *Event) Result { return f(e) }

// Default applies the core's default processing to e. Behaviors may call
// it to extend rather than replace the defaults.
func Default(e *Event) Result {
	switch e.Cmd {
	case CmdTouchStart, CmdTouchMove, CmdTouchEnd:
		return Handled
	case CmdKeyPress:
		return Continue
	default:
		return Handled
	}
}

// send delivers cmd to h and resolves Unhandled through Default.
func (c *Context) send(h Handle, cmd Command, e *Event) Result {
	n := c.node(h)
	if n == nil {
		return Continue
	}
	e.Context = c
	e.Widget = h
	e.Cmd = cmd

	res := Unhandled
	if n.behavior != nil {
		res = n.behavior.Handle(e)
	}
	if res == Unhandled {
		res = Default(e)
	}
	return res
}

func (c *Context) notify(h Handle, cmd Command) {
	c.send(h, cmd, &Event{OK: true})
}
