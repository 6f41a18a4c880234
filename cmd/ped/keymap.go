package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dledwards/ped/internal/keyevent"
)

// ActionKind enumerates what the control loop does after a dispatch,
// mirroring original_source/src/op.rs's Action enum exactly (Nothing,
// Continue, Alert(text), UndefinedKey, Quit).
type ActionKind int

const (
	ActionNothing ActionKind = iota
	ActionContinue
	ActionAlert
	ActionUndefinedKey
	ActionQuit
)

// Action is the result of dispatching one bound operation.
type Action struct {
	Kind ActionKind
	Text string
}

func alert(format string, args ...any) Action {
	return Action{Kind: ActionAlert, Text: fmt.Sprintf(format, args...)}
}

// Bindings maps key sequences (spec §6 events, not raw bytes) to editing
// operation names, following original_source/src/bind.rs's Bindings: a
// bind_map for exact sequences and a bind_prefixes set so the control loop
// can tell "undefined" apart from "still typing a longer sequence."
type Bindings struct {
	exact    map[string]string
	prefixes map[string]bool
}

// binding pairs a colon-separated key-sequence name (as in bind.rs's
// DEFAULT_BINDINGS, e.g. "ctrl-[:o:t") with the operation it runs.
type binding struct {
	seq string
	op  string
}

// defaultBindings is a Go transcription of bind.rs's 60-entry
// DEFAULT_BINDINGS table. Sequences starting "ctrl-[" rely on the bare-ESC
// path of internal/keyevent.Decoder (a deliberate, non-immediate Escape
// keystroke): a fast Alt/Meta-chord that arrives within the decoder's 10ms
// window decodes as a single Char event instead and will not match these
// multi-key entries — an accepted limitation of the pull-based decoder,
// not something this table works around.
var defaultBindings = []binding{
	// exit
	{"ctrl-q", "quit"},

	// navigation and selection
	{"ctrl-b", "move-left"},
	{"left", "move-left"},
	{"shift-left", "move-left-select"},
	{"ctrl-f", "move-right"},
	{"right", "move-right"},
	{"shift-right", "move-right-select"},
	{"ctrl-p", "move-up"},
	{"up", "move-up"},
	{"shift-up", "move-up-select"},
	{"ctrl-n", "move-down"},
	{"down", "move-down"},
	{"shift-down", "move-down-select"},
	{"ctrl-[:p", "move-up-page"},
	{"page-up", "move-up-page"},
	{"shift-page-up", "move-up-page-select"},
	{"ctrl-[:n", "move-down-page"},
	{"page-down", "move-down-page"},
	{"shift-page-down", "move-down-page-select"},
	{"ctrl-a", "move-start"},
	{"home", "move-start"},
	{"shift-home", "move-start-select"},
	{"ctrl-e", "move-end"},
	{"end", "move-end"},
	{"shift-end", "move-end-select"},
	{"ctrl-home", "move-top"},
	{"ctrl-[:a", "move-top"},
	{"shift-ctrl-home", "move-top-select"},
	{"ctrl-end", "move-bottom"},
	{"ctrl-[:e", "move-bottom"},
	{"shift-ctrl-end", "move-bottom-select"},
	{"shift-ctrl-up", "scroll-up"},
	{"shift-ctrl-down", "scroll-down"},
	{"ctrl-l", "scroll-center"},
	{"ctrl-@", "set-mark"},
	{"ctrl-_", "goto-line"},

	// insertion and removal
	{"ctrl-m", "insert-line"},
	{"ctrl-d", "remove-right"},
	{"ctrl-?", "remove-left"},
	{"ctrl-h", "remove-left"},
	{"ctrl-j", "remove-start"},
	{"ctrl-k", "remove-end"},

	// selection actions
	{"ctrl-c", "copy"},
	{"ctrl-v", "paste"},
	{"ctrl-x", "cut"},

	// file handling
	{"ctrl-o", "open-file"},
	{"ctrl-[:o:t", "open-file-top"},
	{"ctrl-[:o:b", "open-file-bottom"},
	{"ctrl-[:o:p", "open-file-above"},
	{"ctrl-[:o:n", "open-file-below"},
	{"ctrl-s", "save-file"},
	{"ctrl-[:s", "save-file-as"},

	// window handling
	{"ctrl-w", "kill-window"},
	{"ctrl-[:w:w", "close-window"},
	{"ctrl-[:w:t", "top-window"},
	{"ctrl-[:w:b", "bottom-window"},
	{"ctrl-[:w:p", "prev-window"},
	{"ctrl-[:w:n", "next-window"},
}

// NewBindings compiles defaultBindings into exact/prefix lookup tables.
func NewBindings() *Bindings {
	b := &Bindings{exact: map[string]string{}, prefixes: map[string]bool{}}
	for _, bd := range defaultBindings {
		keys, ok := parseKeySeq(bd.seq)
		if !ok {
			panic(fmt.Sprintf("keymap: invalid key sequence %q", bd.seq))
		}
		b.exact[seqKey(keys)] = bd.op
		for n := 1; n < len(keys); n++ {
			b.prefixes[seqKey(keys[:n])] = true
		}
	}
	return b
}

// Find returns the operation bound to the exact sequence keys, if any.
func (b *Bindings) Find(keys []keyevent.Event) (string, bool) {
	op, ok := b.exact[seqKey(keys)]
	return op, ok
}

// IsPrefix reports whether keys is a strict prefix of some bound sequence.
func (b *Bindings) IsPrefix(keys []keyevent.Event) bool {
	return b.prefixes[seqKey(keys)]
}

// seqKey renders a key sequence into a comparable map key; Event isn't
// hashable via a slice directly (Go maps can't key on []T), so each event
// is serialized by its four fields.
func seqKey(keys []keyevent.Event) string {
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('|')
		}
		fmt.Fprintf(&sb, "%d:%d:%d:%d", k.Key, k.Rune, k.FN, k.Mods)
	}
	return sb.String()
}

// parseKeySeq splits a colon-separated bind.rs-style sequence name into the
// keyevent.Events it decodes to.
func parseKeySeq(names string) ([]keyevent.Event, bool) {
	parts := strings.Split(names, ":")
	out := make([]keyevent.Event, 0, len(parts))
	for _, p := range parts {
		ev, ok := keyNameToEvent(p)
		if !ok {
			return nil, false
		}
		out = append(out, ev)
	}
	return out, true
}

// keyNameToEvent mirrors internal/keyevent.Decoder's own encoding decisions
// so a binding name decodes to exactly the Event the decoder would produce
// for that keystroke.
func keyNameToEvent(name string) (keyevent.Event, bool) {
	switch name {
	case "left":
		return keyevent.Event{Key: keyevent.Left}, true
	case "right":
		return keyevent.Event{Key: keyevent.Right}, true
	case "up":
		return keyevent.Event{Key: keyevent.Up}, true
	case "down":
		return keyevent.Event{Key: keyevent.Down}, true
	case "home":
		return keyevent.Event{Key: keyevent.Home}, true
	case "end":
		return keyevent.Event{Key: keyevent.End}, true
	case "page-up":
		return keyevent.Event{Key: keyevent.PageUp}, true
	case "page-down":
		return keyevent.Event{Key: keyevent.PageDown}, true
	case "shift-left":
		return keyevent.Event{Key: keyevent.Left, Mods: keyevent.Shift}, true
	case "shift-right":
		return keyevent.Event{Key: keyevent.Right, Mods: keyevent.Shift}, true
	case "shift-up":
		return keyevent.Event{Key: keyevent.Up, Mods: keyevent.Shift}, true
	case "shift-down":
		return keyevent.Event{Key: keyevent.Down, Mods: keyevent.Shift}, true
	case "shift-home":
		return keyevent.Event{Key: keyevent.Home, Mods: keyevent.Shift}, true
	case "shift-end":
		return keyevent.Event{Key: keyevent.End, Mods: keyevent.Shift}, true
	case "shift-page-up":
		return keyevent.Event{Key: keyevent.PageUp, Mods: keyevent.Shift}, true
	case "shift-page-down":
		return keyevent.Event{Key: keyevent.PageDown, Mods: keyevent.Shift}, true
	case "ctrl-home":
		return keyevent.Event{Key: keyevent.Home, Mods: keyevent.Ctrl}, true
	case "ctrl-end":
		return keyevent.Event{Key: keyevent.End, Mods: keyevent.Ctrl}, true
	case "shift-ctrl-home":
		return keyevent.Event{Key: keyevent.Home, Mods: keyevent.Shift | keyevent.Ctrl}, true
	case "shift-ctrl-end":
		return keyevent.Event{Key: keyevent.End, Mods: keyevent.Shift | keyevent.Ctrl}, true
	case "shift-ctrl-up":
		return keyevent.Event{Key: keyevent.Up, Mods: keyevent.Shift | keyevent.Ctrl}, true
	case "shift-ctrl-down":
		return keyevent.Event{Key: keyevent.Down, Mods: keyevent.Shift | keyevent.Ctrl}, true
	case "ctrl-[":
		return keyevent.Event{Key: keyevent.Control, Rune: 0x1b}, true
	}

	if rest, ok := strings.CutPrefix(name, "ctrl-"); ok {
		r := []rune(rest)
		if len(r) == 1 {
			return ctrlCharEvent(r[0]), true
		}
		return keyevent.Event{}, false
	}

	r := []rune(name)
	if len(r) == 1 {
		return keyevent.Event{Key: keyevent.Char, Rune: r[0]}, true
	}
	return keyevent.Event{}, false
}

// ctrlCharEvent reproduces Decoder.decodeChar's byte-level special cases
// (0x0d, 0x08/0x7f) alongside the generic b<=0x1f "+0x60" control-code
// arithmetic for every other ctrl-letter.
func ctrlCharEvent(c rune) keyevent.Event {
	switch c {
	case '@':
		return keyevent.Event{Key: keyevent.Char, Rune: '`', Mods: keyevent.Ctrl}
	case '?':
		return keyevent.Event{Key: keyevent.Control, Rune: 0x7f}
	case '_':
		return keyevent.Event{Key: keyevent.Char, Rune: 0x7f, Mods: keyevent.Ctrl}
	case 'm':
		return keyevent.Event{Key: keyevent.Control, Rune: '\r'}
	case 'h':
		return keyevent.Event{Key: keyevent.Control, Rune: 0x7f}
	default:
		return keyevent.Event{Key: keyevent.Char, Rune: unicode.ToLower(c), Mods: keyevent.Ctrl}
	}
}

// displayKeySeq formats a pending key sequence for the alert line, the Go
// equivalent of control.rs's KeySeq Display wrapper.
func displayKeySeq(seq []keyevent.Event) string {
	parts := make([]string, len(seq))
	for i, ev := range seq {
		parts[i] = displayKey(ev)
	}
	return strings.Join(parts, " ")
}

func displayKey(ev keyevent.Event) string {
	prefix := ""
	if ev.Mods&keyevent.Ctrl != 0 {
		prefix += "ctrl-"
	}
	if ev.Mods&keyevent.Shift != 0 {
		prefix += "shift-"
	}
	switch ev.Key {
	case keyevent.Control:
		if ev.Rune == 0x1b {
			return prefix + "esc"
		}
		return prefix + fmt.Sprintf("%q", ev.Rune)
	case keyevent.Char:
		return prefix + string(ev.Rune)
	case keyevent.Up:
		return prefix + "up"
	case keyevent.Down:
		return prefix + "down"
	case keyevent.Left:
		return prefix + "left"
	case keyevent.Right:
		return prefix + "right"
	case keyevent.Home:
		return prefix + "home"
	case keyevent.End:
		return prefix + "end"
	case keyevent.PageUp:
		return prefix + "page-up"
	case keyevent.PageDown:
		return prefix + "page-down"
	case keyevent.Function:
		return fmt.Sprintf("%sf%d", prefix, ev.FN)
	default:
		return prefix + "?"
	}
}
