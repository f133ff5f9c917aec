package app

import (
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"ember/gfx"
	"ember/hal"
)

// guard turns a panic raised while stepping into a *PanicError, logs it with
// its stack and paints the panic screen on the shown layer. Later steps
// return the same error.
func (a *App) guard(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	a.failed = &PanicError{Value: v, Stack: stack}
	*err = a.failed

	lines := []string{
		"Ember Panic:",
		fmt.Sprintf("step: %d", a.steps),
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}
	for _, line := range lines {
		a.logf("%s", line)
	}

	if d := a.h.Display(); d != nil && d.LCD() != nil {
		paintPanic(d.LCD(), a.gui.Layers().Active(), a.gui.Display().Width, a.gui.Display().Height, lines)
	}
}

// PanicError carries a recovered panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// paintPanic fills layer with white and writes lines in black, wrapped to
// the screen width, until the screen is full.
func paintPanic(lcd hal.LCD, layer, width, height int, lines []string) {
	r := gfx.Rect{W: width, H: height}
	cv := gfx.NewCanvas(lcd, layer, r, r)
	cv.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})

	fg := color.RGBA{A: 255}
	lh := gfx.LineHeight(nil)
	cw := gfx.TextWidth(nil, "0")
	if lh <= 0 || cw <= 0 {
		return
	}
	cols := width / cw
	if cols <= 0 {
		cols = 1
	}

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+lh > height {
				return
			}
			chunk, rest := takeRunes(line, cols)
			cv.Text(0, y+lh*3/4, chunk, nil, fg)
			y += lh
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
