// Package keyevent decodes a raw terminal byte stream into key events
// (spec §6 "Key events"), adapted from the teacher's channel-fed
// tui/key.go + tui/input.go into a pull-based Decoder.Next; cmd/ped calls
// it from a dedicated input goroutine that forwards each event to the
// control loop (spec §5) over a channel.
package keyevent

import (
	"bufio"
	"io"
	"time"

	"github.com/dledwards/ped/internal/editorerr"
)

// Key enumerates the event categories of spec §6.
type Key int

const (
	None Key = iota
	Control
	Char
	ShiftTab
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Function
)

// Mods is a bitmask; spec §6 fixes Shift = bit0, Ctrl = bit2 — a
// different layout than the teacher's own ModCtrl/ModAlt/ModShift order,
// followed here exactly since the spec calls it out explicitly.
type Mods uint8

const (
	Shift Mods = 1 << 0
	Ctrl  Mods = 1 << 2
)

// Event is one decoded key event.
type Event struct {
	Key  Key
	Rune rune
	FN   int // set when Key == Function
	Mods Mods
}

// escTimeout is how long Decoder waits for follow-up bytes after a bare
// ESC before reporting it as a standalone Escape control event, matching
// the teacher's 10ms bare-ESC disambiguation window.
const escTimeout = 10 * time.Millisecond

// csiTimeout bounds how long Decoder waits for the remainder of a CSI/SS3
// sequence once ESC [ or ESC O has been seen.
const csiTimeout = 50 * time.Millisecond

// Decoder pulls one Event at a time from a byte source. It is not
// goroutine-safe: Next must not be called from more than one goroutine at
// a time.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r for key decoding.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks for and returns the next decoded event.
func (d *Decoder) Next() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Event{}, err
	}
	if b == 0x1b {
		return d.decodeEsc()
	}
	return d.decodeChar(b), nil
}

func (d *Decoder) readByteTimeout(timeout time.Duration) (byte, bool) {
	type result struct {
		b   byte
		err error
	}
	ch := make(chan result, 1)
	go func() {
		b, err := d.r.ReadByte()
		ch <- result{b, err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return 0, false
		}
		return r.b, true
	case <-time.After(timeout):
		return 0, false
	}
}

func (d *Decoder) decodeEsc() (Event, error) {
	next, ok := d.readByteTimeout(escTimeout)
	if !ok {
		return Event{Key: Control, Rune: 0x1b}, nil
	}
	switch next {
	case '[':
		return d.parseCSI(), nil
	case 'O':
		return d.parseSS3(), nil
	default:
		return Event{Key: Char, Rune: rune(next)}, nil
	}
}

func (d *Decoder) decodeChar(b byte) Event {
	switch {
	case b == 0x0d:
		return Event{Key: Control, Rune: '\r'}
	case b == 0x09:
		return Event{Key: Control, Rune: '\t'}
	case b == 0x08 || b == 0x7f:
		return Event{Key: Control, Rune: 0x7f}
	case b <= 0x1f:
		return Event{Key: Char, Rune: rune(b + 0x60), Mods: Ctrl}
	default:
		return Event{Key: Char, Rune: rune(b)}
	}
}

func (d *Decoder) parseCSI() Event {
	var params []byte
	for {
		b, ok := d.readByteTimeout(csiTimeout)
		if !ok {
			return Event{Key: None}
		}
		if b >= 0x40 && b <= 0x7e {
			return dispatchCSI(params, b)
		}
		params = append(params, b)
	}
}

func dispatchCSI(params []byte, final byte) Event {
	p := string(params)
	mods := csiMods(p)

	switch final {
	case 'A':
		return Event{Key: Up, Mods: mods}
	case 'B':
		return Event{Key: Down, Mods: mods}
	case 'C':
		return Event{Key: Right, Mods: mods}
	case 'D':
		return Event{Key: Left, Mods: mods}
	case 'H':
		return Event{Key: Home, Mods: mods}
	case 'F':
		return Event{Key: End, Mods: mods}
	case 'Z':
		return Event{Key: ShiftTab}
	case '~':
		return dispatchTilde(p, mods)
	}
	return Event{Key: None}
}

// csiMods extracts the modifier parameter after a semicolon (e.g. "1;5A"
// or "3;2~" → "5"/"2") and reinterprets it using spec's xterm modifier
// convention (value-1 is a bitmask of Shift/Alt/Ctrl/Meta).
func csiMods(p string) Mods {
	i := indexOfSemi(p)
	if i < 0 {
		return 0
	}
	v := parseIntPrefix(p[i+1:])
	if v <= 0 {
		return 0
	}
	bits := v - 1
	var m Mods
	if bits&0x1 != 0 {
		m |= Shift
	}
	if bits&0x4 != 0 {
		m |= Ctrl
	}
	return m
}

func dispatchTilde(p string, mods Mods) Event {
	key := p
	if i := indexOfSemi(p); i >= 0 {
		key = p[:i]
	}
	switch key {
	case "1":
		return Event{Key: Home, Mods: mods}
	case "2":
		return Event{Key: None, Mods: mods}
	case "3":
		return Event{Key: Control, Rune: 0x7f, Mods: mods}
	case "4":
		return Event{Key: End, Mods: mods}
	case "5":
		return Event{Key: PageUp, Mods: mods}
	case "6":
		return Event{Key: PageDown, Mods: mods}
	case "15":
		return Event{Key: Function, FN: 5, Mods: mods}
	case "17":
		return Event{Key: Function, FN: 6, Mods: mods}
	case "18":
		return Event{Key: Function, FN: 7, Mods: mods}
	case "19":
		return Event{Key: Function, FN: 8, Mods: mods}
	case "20":
		return Event{Key: Function, FN: 9, Mods: mods}
	case "21":
		return Event{Key: Function, FN: 10, Mods: mods}
	case "23":
		return Event{Key: Function, FN: 11, Mods: mods}
	case "24":
		return Event{Key: Function, FN: 12, Mods: mods}
	}
	return Event{Key: None}
}

func (d *Decoder) parseSS3() Event {
	b, ok := d.readByteTimeout(csiTimeout)
	if !ok {
		return Event{Key: None}
	}
	switch b {
	case 'A':
		return Event{Key: Up}
	case 'B':
		return Event{Key: Down}
	case 'C':
		return Event{Key: Right}
	case 'D':
		return Event{Key: Left}
	case 'P':
		return Event{Key: Function, FN: 1}
	case 'Q':
		return Event{Key: Function, FN: 2}
	case 'R':
		return Event{Key: Function, FN: 3}
	case 'S':
		return Event{Key: Function, FN: 4}
	case 'H':
		return Event{Key: Home}
	case 'F':
		return Event{Key: End}
	}
	return Event{Key: None}
}

func indexOfSemi(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			return i
		}
	}
	return -1
}

func parseIntPrefix(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// ParseKeyName is a small helper for config-driven keymaps (spec §7
// InvalidKey): it recognizes the names "up", "down", "left", "right",
// "home", "end", "pageup" and "pagedown" plus any single character, and
// returns the Event template they decode to, or ErrInvalidKey. Modifier
// forms such as "ctrl+x" are not recognized.
func ParseKeyName(raw string) (Event, error) {
	switch raw {
	case "up":
		return Event{Key: Up}, nil
	case "down":
		return Event{Key: Down}, nil
	case "left":
		return Event{Key: Left}, nil
	case "right":
		return Event{Key: Right}, nil
	case "home":
		return Event{Key: Home}, nil
	case "end":
		return Event{Key: End}, nil
	case "pageup":
		return Event{Key: PageUp}, nil
	case "pagedown":
		return Event{Key: PageDown}, nil
	}
	if len(raw) == 0 {
		return Event{}, &editorerr.ErrInvalidKey{Raw: raw}
	}
	r := []rune(raw)
	if len(r) == 1 {
		return Event{Key: Char, Rune: r[0]}, nil
	}
	return Event{}, &editorerr.ErrInvalidKey{Raw: raw}
}
