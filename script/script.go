// Package script replays scripted touch and key input, one command per
// loop tick.
//
//	# open the menu and type into the console
//	tap 20 35
//	wait 5
//	key "hello world"
//	key enter
//	key tab shift
//	press 100 10
//	move 120 30
//	release
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/shlex"

	"ember/gui"
)

var ErrSyntax = errors.New("syntax error")

// SyntaxError reports the offending script line.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("script line %d: %s (%q)", e.Line, e.Msg, e.Text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Op is a script command.
type Op uint8

const (
	OpPress Op = iota + 1
	OpMove
	OpRelease
	OpTap
	OpKey
	OpWait
)

// Command is one parsed script line.
type Command struct {
	Op    Op
	X, Y  int16
	Keys  []rune
	Shift bool
	Ticks int
	Line  int
}

var keyNames = map[string]rune{
	"tab":       gui.KeyTab,
	"enter":     gui.KeyReturn,
	"return":    gui.KeyReturn,
	"esc":       gui.KeyEscape,
	"escape":    gui.KeyEscape,
	"backspace": gui.KeyBackspace,
	"bs":        gui.KeyBackspace,
	"up":        gui.KeyUp,
	"down":      gui.KeyDown,
	"left":      gui.KeyLeft,
	"right":     gui.KeyRight,
	"space":     ' ',
}

// Parse reads a whole script.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := parseLine(line, text)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cmds, nil
}

func parseLine(line int, text string) (Command, error) {
	fail := func(format string, args ...any) (Command, error) {
		return Command{}, &SyntaxError{Line: line, Text: text, Msg: fmt.Sprintf(format, args...)}
	}
	args, err := shlex.Split(text)
	if err != nil {
		return fail("%v", err)
	}
	if len(args) == 0 {
		return fail("empty command")
	}

	cmd := Command{Line: line}
	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "press", "move", "tap":
		if len(args) != 2 {
			return fail("%s wants X Y", name)
		}
		x, errX := strconv.ParseInt(args[0], 10, 16)
		y, errY := strconv.ParseInt(args[1], 10, 16)
		if errX != nil || errY != nil {
			return fail("bad coordinates")
		}
		cmd.X, cmd.Y = int16(x), int16(y)
		cmd.Op = map[string]Op{"press": OpPress, "move": OpMove, "tap": OpTap}[name]
	case "release":
		if len(args) != 0 {
			return fail("release takes no arguments")
		}
		cmd.Op = OpRelease
	case "wait":
		if len(args) != 1 {
			return fail("wait wants a tick count")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fail("bad tick count")
		}
		cmd.Op, cmd.Ticks = OpWait, n
	case "key":
		if len(args) == 2 && strings.EqualFold(args[1], "shift") {
			cmd.Shift = true
			args = args[:1]
		}
		if len(args) != 1 || args[0] == "" {
			return fail("key wants NAME or TEXT")
		}
		cmd.Op = OpKey
		if r, ok := keyNames[strings.ToLower(args[0])]; ok {
			cmd.Keys = []rune{r}
		} else if utf8.ValidString(args[0]) {
			cmd.Keys = []rune(args[0])
		} else {
			return fail("key text is not UTF-8")
		}
	default:
		return fail("unknown command %q", name)
	}
	return cmd, nil
}

// Sink receives the replayed input. *gui.Context implements it.
type Sink interface {
	PushTouch(s gui.TouchSample) bool
	PushKey(k gui.KeySample) bool
}

// Player feeds commands to a sink.
type Player struct {
	cmds    []Command
	pc      int
	wait    int
	x, y    int16
	dropped int
}

func NewPlayer(cmds []Command) *Player {
	return &Player{cmds: cmds}
}

// Done reports whether every command has been replayed.
func (p *Player) Done() bool { return p.pc >= len(p.cmds) && p.wait == 0 }

// Dropped returns how many samples the sink refused.
func (p *Player) Dropped() int { return p.dropped }

// Step replays at most one command. now stamps the samples.
func (p *Player) Step(s Sink, now uint32) {
	if p.wait > 0 {
		p.wait--
		return
	}
	if p.pc >= len(p.cmds) {
		return
	}
	cmd := p.cmds[p.pc]
	p.pc++

	switch cmd.Op {
	case OpPress, OpMove:
		p.x, p.y = cmd.X, cmd.Y
		p.touch(s, gui.Touch(cmd.X, cmd.Y, true, now))
	case OpRelease:
		p.touch(s, gui.Touch(p.x, p.y, false, now))
	case OpTap:
		p.x, p.y = cmd.X, cmd.Y
		p.touch(s, gui.Touch(cmd.X, cmd.Y, true, now))
		p.touch(s, gui.Touch(cmd.X, cmd.Y, false, now))
	case OpKey:
		var flags gui.KeyFlags
		if cmd.Shift {
			flags |= gui.KeyShift
		}
		for _, r := range cmd.Keys {
			if !s.PushKey(gui.Key(r, flags, now)) {
				p.dropped++
			}
		}
	case OpWait:
		p.wait = cmd.Ticks
	}
}

func (p *Player) touch(s Sink, t gui.TouchSample) {
	if !s.PushTouch(t) {
		p.dropped++
	}
}
