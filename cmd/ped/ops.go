package main

import (
	"os"
	"path/filepath"

	"github.com/dledwards/ped/internal/editor"
	"github.com/dledwards/ped/internal/source"
	"github.com/dledwards/ped/internal/workspace"
)

// opFn is the Go analogue of original_source/src/op.rs's OpFn: an editing
// operation bound to a key sequence, returning the Action the control loop
// should take next.
type opFn func(*App) Action

var opTable = map[string]opFn{
	"quit": func(a *App) Action { return Action{Kind: ActionQuit} },

	"move-left":         func(a *App) Action { a.active().MoveBackward(1); return Action{} },
	"move-left-select":  func(a *App) Action { a.active().SetSoftMark(); a.active().MoveBackward(1); return Action{} },
	"move-right":        func(a *App) Action { a.active().MoveForward(1); return Action{} },
	"move-right-select": func(a *App) Action { a.active().SetSoftMark(); a.active().MoveForward(1); return Action{} },
	"move-up":           func(a *App) Action { a.active().MoveUp(1, false); return Action{} },
	"move-up-select":    func(a *App) Action { a.active().SetSoftMark(); a.active().MoveUp(1, false); return Action{} },
	"move-down":         func(a *App) Action { a.active().MoveDown(1, false); return Action{} },
	"move-down-select":  func(a *App) Action { a.active().SetSoftMark(); a.active().MoveDown(1, false); return Action{} },

	"move-up-page":        func(a *App) Action { a.active().MoveUp(a.pageRows(), true); return Action{} },
	"move-up-page-select": func(a *App) Action { a.active().SetSoftMark(); a.active().MoveUp(a.pageRows(), true); return Action{} },
	"move-down-page":      func(a *App) Action { a.active().MoveDown(a.pageRows(), true); return Action{} },
	"move-down-page-select": func(a *App) Action {
		a.active().SetSoftMark()
		a.active().MoveDown(a.pageRows(), true)
		return Action{}
	},

	"move-start":        func(a *App) Action { a.active().MoveStart(); return Action{} },
	"move-start-select": func(a *App) Action { a.active().SetSoftMark(); a.active().MoveStart(); return Action{} },
	"move-end":          func(a *App) Action { a.active().MoveEnd(); return Action{} },
	"move-end-select":   func(a *App) Action { a.active().SetSoftMark(); a.active().MoveEnd(); return Action{} },
	"move-top":          func(a *App) Action { a.active().MoveTop(); return Action{} },
	"move-top-select":   func(a *App) Action { a.active().SetSoftMark(); a.active().MoveTop(); return Action{} },
	"move-bottom":       func(a *App) Action { a.active().MoveBottom(); return Action{} },
	"move-bottom-select": func(a *App) Action {
		a.active().SetSoftMark()
		a.active().MoveBottom()
		return Action{}
	},

	"scroll-up":     func(a *App) Action { a.active().ScrollUp(1); return Action{} },
	"scroll-down":   func(a *App) Action { a.active().ScrollDown(1); return Action{} },
	"scroll-center": func(a *App) Action { a.active().MoveTo(a.active().Pos(), editor.Center()); return Action{} },

	"set-mark":  func(a *App) Action { a.active().SetHardMark(); return alert("mark set") },
	"goto-line": func(a *App) Action { a.beginPrompt(promptGotoLine, ""); return Action{Kind: ActionContinue} },

	"insert-line": func(a *App) Action { a.active().InsertChar('\n'); return Action{} },
	"remove-right": func(a *App) Action {
		if a.active().Mark() != nil {
			a.active().RemoveMark()
		} else {
			a.active().RemoveAfter()
		}
		return Action{}
	},
	"remove-left": func(a *App) Action {
		if a.active().Mark() != nil {
			a.active().RemoveMark()
		} else {
			a.active().RemoveBefore()
		}
		return Action{}
	},
	"remove-start": func(a *App) Action { a.active().RemoveStart(); return Action{} },
	"remove-end":   func(a *App) Action { a.active().RemoveEnd(); return Action{} },

	"copy": func(a *App) Action {
		if text := a.active().CopyMark(); text != nil {
			a.clipboard = text
		}
		a.active().ClearSoftMark()
		return alert("copied")
	},
	"paste": func(a *App) Action {
		if len(a.clipboard) > 0 {
			a.active().Insert(a.clipboard)
		}
		return Action{}
	},
	"cut": func(a *App) Action {
		if text := a.active().CopyMark(); text != nil {
			a.clipboard = text
			a.active().RemoveMark()
		}
		return alert("cut")
	},

	"open-file": func(a *App) Action { a.beginOpenPrompt(nil); return Action{Kind: ActionContinue} },
	"open-file-top": func(a *App) Action {
		p := workspace.AtTop()
		a.beginOpenPrompt(&p)
		return Action{Kind: ActionContinue}
	},
	"open-file-bottom": func(a *App) Action {
		p := workspace.AtBottom()
		a.beginOpenPrompt(&p)
		return Action{Kind: ActionContinue}
	},
	"open-file-above": func(a *App) Action {
		p := workspace.AboveView(a.activeID)
		a.beginOpenPrompt(&p)
		return Action{Kind: ActionContinue}
	},
	"open-file-below": func(a *App) Action {
		p := workspace.BelowView(a.activeID)
		a.beginOpenPrompt(&p)
		return Action{Kind: ActionContinue}
	},

	"save-file":    func(a *App) Action { return a.saveActive() },
	"save-file-as": func(a *App) Action { a.beginPrompt(promptSaveAs, a.active().Source().Display()); return Action{Kind: ActionContinue} },

	"kill-window":  func(a *App) Action { return a.closeActiveView() },
	"close-window": func(a *App) Action { return a.closeActiveView() },
	"top-window":   func(a *App) Action { a.activeID = a.ws.TopView().ID; return Action{} },
	"bottom-window": func(a *App) Action {
		a.activeID = a.ws.BottomView().ID
		return Action{}
	},
	"prev-window": func(a *App) Action {
		if v := a.ws.AboveView(a.activeID); v != nil {
			a.activeID = v.ID
		}
		return Action{}
	},
	"next-window": func(a *App) Action {
		if v := a.ws.BelowView(a.activeID); v != nil {
			a.activeID = v.ID
		}
		return Action{}
	},
}

// dispatch runs op's bound function, defaulting to UndefinedKey for a
// binding name that (should never, but defensively) isn't registered.
func (a *App) dispatch(op string) Action {
	fn, ok := opTable[op]
	if !ok {
		return Action{Kind: ActionUndefinedKey}
	}
	return fn(a)
}

// pageRows is the try_rows argument for a page-up/page-down move: the
// active view's canvas height.
func (a *App) pageRows() int {
	rows, _ := a.activeView().Win.Size()
	if rows < 1 {
		return 1
	}
	return rows
}

// saveActive writes the active editor's buffer to its Source path,
// prompting for one first if the buffer has none (spec §6 "Source
// identity": an Ephemeral/Null source has nothing to overwrite).
func (a *App) saveActive() Action {
	ed := a.active()
	if !ed.Source().IsFile() {
		a.beginPrompt(promptSaveAs, "")
		return Action{Kind: ActionContinue}
	}
	if err := a.writeToPath(ed, ed.Source().Path); err != nil {
		return alert("save failed: %v", err)
	}
	return alert("saved %s", ed.Source().Path)
}

func (a *App) writeToPath(ed *editor.Editor, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := ed.Buffer().Write(f, a.cfg.CRLF); err != nil {
		return err
	}
	ed.MarkSaved()
	return nil
}

func sourceForPath(path string) source.Source {
	return source.NewFile(absPath(path), nil)
}

// closeActiveView removes the active view (refusing when it's the last
// one, matching workspace.RemoveView), moving focus to the view it
// returns as next in line.
func (a *App) closeActiveView() Action {
	closingID := a.activeID
	nextID, ok := a.ws.RemoveView(closingID)
	if !ok {
		return alert("cannot close the only window")
	}
	delete(a.editors, closingID)
	a.activeID = nextID
	for _, v := range a.ws.Views() {
		if ed := a.editors[v.ID]; ed != nil {
			ed.Attach(v.Win)
		}
	}
	return Action{}
}

// openFileAt loads path into a freshly placed view, or the active view when
// place is nil (the plain "open-file" binding).
func (a *App) openFileAt(path string, place *workspace.Placement) Action {
	src := source.NewFile(absPath(path), nil)
	syntax := guessSyntax(path)

	if place == nil {
		ed, err := a.openInView(a.activeView(), src, syntax)
		if err != nil {
			return alert("open failed: %v", err)
		}
		a.editors[a.activeID] = ed
		return alert("opened %s", path)
	}

	view, ok := a.ws.AddView(*place)
	if !ok {
		return alert("no room for another window")
	}
	ed, err := a.openInView(view, src, syntax)
	if err != nil {
		return alert("open failed: %v", err)
	}
	a.activeID = view.ID
	_ = ed
	for _, v := range a.ws.Views() {
		if e := a.editors[v.ID]; e != nil {
			e.Attach(v.Win)
		}
	}
	return alert("opened %s", path)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
