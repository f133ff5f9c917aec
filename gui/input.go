package gui

import "unicode/utf8"

// MaxTouches is the number of simultaneous contacts a sample can carry.
const MaxTouches = 2

// TouchSample is one reading from the touch controller.
type TouchSample struct {
	Count   uint8
	X, Y    [MaxTouches]int16
	Pressed bool
	Time    uint32
}

// Touch builds a single-contact sample.
func Touch(x, y int16, pressed bool, time uint32) TouchSample {
	s := TouchSample{Pressed: pressed, Time: time}
	if pressed {
		s.Count = 1
	}
	s.X[0], s.Y[0] = x, y
	return s
}

// KeyFlags qualifies a key sample.
type KeyFlags uint8

const KeyShift KeyFlags = 1 << 0

// Control codes carried in KeySample.
const (
	KeyBackspace rune = 0x08
	KeyTab       rune = 0x09
	KeyReturn    rune = 0x0D
	KeyUp        rune = 0x11
	KeyDown      rune = 0x12
	KeyLeft      rune = 0x13
	KeyRight     rune = 0x14
	KeyEscape    rune = 0x1B
)

// KeySample is one key press: a UTF-8 encoded code point.
type KeySample struct {
	Keys  [utf8.UTFMax]byte
	Flags KeyFlags
	Time  uint32
}

// Key encodes r as a sample.
func Key(r rune, flags KeyFlags, time uint32) KeySample {
	k := KeySample{Flags: flags, Time: time}
	utf8.EncodeRune(k.Keys[:], r)
	return k
}

// Rune decodes the sample. An empty sample yields utf8.RuneError.
func (k KeySample) Rune() rune {
	n := 0
	for n < len(k.Keys) && k.Keys[n] != 0 {
		n++
	}
	r, _ := utf8.DecodeRune(k.Keys[:n])
	return r
}

// PushTouch queues a touch sample. It never blocks and returns false when
// the queue is full. Safe to call from one producer outside the loop.
func (c *Context) PushTouch(s TouchSample) bool {
	if !c.touchQ.TryPush(s) {
		return false
	}
	c.signal.Post()
	return true
}

// PushKey queues a key sample. It never blocks and returns false when the
// queue is full. Safe to call from one producer outside the loop.
func (c *Context) PushKey(k KeySample) bool {
	if !c.keyQ.TryPush(k) {
		return false
	}
	c.signal.Post()
	return true
}
