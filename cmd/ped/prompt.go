package main

import (
	"strconv"

	"github.com/dledwards/ped/internal/editor"
	"github.com/dledwards/ped/internal/keyevent"
	"github.com/dledwards/ped/internal/workspace"
)

// promptKind names which single-line prompt is active; the "capture before,
// restore after" behavior spec §4.3 describes for search/goto-line is
// implemented here via editor.Capture/Restore around the prompt's
// lifetime.
type promptKind int

const (
	promptGotoLine promptKind = iota
	promptSaveAs
	promptOpenFile
)

func (k promptKind) label() string {
	switch k {
	case promptGotoLine:
		return "goto line: "
	case promptSaveAs:
		return "save as: "
	case promptOpenFile:
		return "open file: "
	default:
		return ""
	}
}

// promptState holds an in-progress single-line prompt: what it's for, the
// text typed so far, the place a file-open prompt should land its new
// view, and the editor capture to restore on cancel.
type promptState struct {
	kind     promptKind
	buf      []rune
	place    *workspace.Placement // nil means "open-file": reuse the active view
	capture  editor.Capture
	targetID int
}

func (a *App) beginPrompt(kind promptKind, initial string) {
	a.prompt = &promptState{
		kind:     kind,
		buf:      []rune(initial),
		capture:  a.active().Capture(),
		targetID: a.activeID,
	}
	a.setAlert(kind.label() + initial)
}

func (a *App) beginOpenPrompt(place *workspace.Placement) {
	a.prompt = &promptState{
		kind:     promptOpenFile,
		place:    place,
		capture:  a.active().Capture(),
		targetID: a.activeID,
	}
	a.setAlert(promptOpenFile.label())
}

// dispatchPrompt routes one key event while a prompt is active: printable
// characters append, backspace edits, Escape cancels (restoring the
// captured view state), Enter submits.
func (a *App) dispatchPrompt(ev keyevent.Event) {
	p := a.prompt
	switch {
	case ev.Key == keyevent.Control && ev.Rune == 0x1b:
		a.cancelPrompt()
		return
	case ev.Key == keyevent.Control && (ev.Rune == '\r' || ev.Rune == '\n'):
		a.submitPrompt()
		return
	case ev.Key == keyevent.Control && ev.Rune == 0x7f:
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
	case ev.Key == keyevent.Char && ev.Mods == 0:
		p.buf = append(p.buf, ev.Rune)
	default:
		return
	}
	a.setAlert(p.kind.label() + string(p.buf))
}

func (a *App) cancelPrompt() {
	if ed, ok := a.editors[a.prompt.targetID]; ok {
		ed.Restore(a.prompt.capture)
	}
	a.prompt = nil
	a.resetAlert()
}

func (a *App) submitPrompt() {
	p := a.prompt
	text := string(p.buf)
	a.prompt = nil

	switch p.kind {
	case promptGotoLine:
		n, err := strconv.Atoi(text)
		if err != nil || n < 1 {
			a.setAlert("invalid line number: " + text)
			return
		}
		a.active().MoveLine(n-1, editor.Center())
		a.resetAlert()
	case promptSaveAs:
		if text == "" {
			a.resetAlert()
			return
		}
		if err := a.writeToPath(a.active(), text); err != nil {
			a.setAlert("save failed: " + err.Error())
			return
		}
		a.active().SetSource(sourceForPath(text))
		a.setAlert("saved " + text)
	case promptOpenFile:
		if text == "" {
			a.resetAlert()
			return
		}
		a.applyAction(a.openFileAt(text, p.place))
	}
}
