package main

import (
	"bufio"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dledwards/ped/internal/config"
	"github.com/dledwards/ped/internal/editor"
	"github.com/dledwards/ped/internal/grid"
	"github.com/dledwards/ped/internal/keyevent"
	"github.com/dledwards/ped/internal/source"
	"github.com/dledwards/ped/internal/term"
	"github.com/dledwards/ped/internal/workspace"
)

// App is the control point coordinating user interaction and editing
// operations, mirroring original_source/src/control.rs's Controller: a
// keyboard decoder, a key-binding table, and a session (here: a Workspace
// plus the Editors it tiles), run from a single cooperative loop (spec §5).
type App struct {
	cfg *config.Config
	log *zap.Logger

	ws       *workspace.Workspace
	editors  map[int]*editor.Editor
	activeID int

	bindings  *Bindings
	keySeq    []keyevent.Event
	alertSet  bool
	clipboard []rune
	prompt    *promptState

	decoder  *keyevent.Decoder
	rawState *term.State
	out      *bufio.Writer

	front *grid.Grid
	watch *fileWatch

	quit bool
}

// NewApp builds a Workspace sized to the current terminal, attaches a
// single Editor over src to its initial view, and prepares (without yet
// enabling raw mode or starting any goroutines) the control loop.
func NewApp(cfg *config.Config, log *zap.Logger, src source.Source, syntaxName string) (*App, error) {
	rows, cols := term.Size(os.Stdout)
	ws := workspace.New(rows, cols)

	a := &App{
		cfg:      cfg,
		log:      log,
		ws:       ws,
		editors:  make(map[int]*editor.Editor),
		bindings: NewBindings(),
		out:      bufio.NewWriterSize(os.Stdout, 64*1024),
		front:    grid.New(rows, cols),
		decoder:  keyevent.NewDecoder(os.Stdin),
	}

	view := ws.TopView()
	ed, err := a.openInView(view, src, syntaxName)
	if err != nil {
		return nil, err
	}
	a.activeID = view.ID
	_ = ed
	return a, nil
}

// openInView creates (or replaces) the Editor backing view, loading src's
// file contents when it names an existing file.
func (a *App) openInView(view *workspace.View, src source.Source, syntaxName string) (*editor.Editor, error) {
	ed, err := editor.New(a.cfg, a.log, src, syntaxName)
	if err != nil {
		return nil, err
	}
	if src.IsFile() {
		if f, openErr := os.Open(src.Path); openErr == nil {
			defer f.Close()
			if loadErr := ed.Load(f); loadErr != nil {
				return nil, loadErr
			}
		}
		// A missing file is a new, not-yet-saved buffer: spec §6's Source
		// identity carries a path with nothing backing it yet.
	}
	ed.Attach(view.Win)
	a.editors[view.ID] = ed
	return ed, nil
}

// active returns the Editor behind the currently focused view.
func (a *App) active() *editor.Editor { return a.editors[a.activeID] }

func (a *App) activeView() *workspace.View {
	for _, v := range a.ws.Views() {
		if v.ID == a.activeID {
			return v
		}
	}
	return a.ws.TopView()
}

// Run enables raw mode, starts the input/resize/watch goroutines, and
// drives the control loop until a "quit" action or a fatal input error
// (spec §5: cmd/ped owns all concurrency; the core stays single-threaded).
func (a *App) Run() error {
	rawState, err := term.EnableRaw(os.Stdin)
	if err != nil {
		return err
	}
	a.rawState = rawState
	defer term.DisableRaw(os.Stdin, a.rawState)

	a.out.WriteString("\x1b[?25l") // hide cursor while we draw
	defer func() {
		a.out.WriteString("\x1b[?25h")
		a.out.Flush()
	}()

	a.watch = newFileWatch(a.active().Source(), a.log)
	defer a.watch.Close()

	type inputResult struct {
		ev  keyevent.Event
		err error
	}
	inputCh := make(chan inputResult, 1)
	go func() {
		for {
			ev, err := a.decoder.Next()
			inputCh <- inputResult{ev, err}
			if err != nil {
				return
			}
		}
	}()

	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	defer signal.Stop(resizeCh)

	a.render()

	for !a.quit {
		select {
		case r := <-inputCh:
			if r.err != nil {
				return nil
			}
			a.handleEvent(r.ev)
		case <-resizeCh:
			a.handleResize()
		case changed := <-a.watch.Events():
			a.handleExternalChange(changed)
		}
		a.render()
	}
	return nil
}

func (a *App) handleResize() {
	rows, cols := term.Size(os.Stdout)
	a.ws.Resize(rows, cols)
	for _, v := range a.ws.Views() {
		ed := a.editors[v.ID]
		if ed != nil {
			ed.Attach(v.Win)
		}
	}
	a.front = grid.New(rows, cols)
}

func (a *App) handleExternalChange(path string) {
	a.setAlert(path + ": modified on disk")
}

// handleEvent implements the fast-path/key-seq dispatch of
// original_source/src/control.rs's Controller::run: a bare character with
// no pending sequence inserts directly; otherwise the event is appended to
// the pending sequence and looked up against the binding table.
func (a *App) handleEvent(ev keyevent.Event) {
	if ev.Key == keyevent.None {
		return
	}

	if a.prompt != nil {
		a.dispatchPrompt(ev)
		return
	}

	var action Action
	if len(a.keySeq) == 0 && ev.Key == keyevent.Char && ev.Mods == 0 {
		a.active().InsertChar(ev.Rune)
		action = Action{Kind: ActionNothing}
	} else {
		a.keySeq = append(a.keySeq, ev)
		if op, ok := a.bindings.Find(a.keySeq); ok {
			action = a.dispatch(op)
		} else if a.bindings.IsPrefix(a.keySeq) {
			action = Action{Kind: ActionContinue}
		} else {
			action = Action{Kind: ActionUndefinedKey}
		}
	}
	a.applyAction(action)
}

func (a *App) applyAction(action Action) {
	switch action.Kind {
	case ActionNothing:
		a.resetAlert()
		a.keySeq = a.keySeq[:0]
	case ActionContinue:
		if a.prompt != nil {
			// the sequence opened a prompt: it is complete, and the alert
			// line keeps the label beginPrompt put there
			a.keySeq = a.keySeq[:0]
			break
		}
		a.setAlert(displayKeySeq(a.keySeq))
	case ActionAlert:
		a.setAlert(action.Text)
		a.keySeq = a.keySeq[:0]
	case ActionUndefinedKey:
		a.setAlert(undefinedKeyText(a.keySeq))
		a.keySeq = a.keySeq[:0]
	case ActionQuit:
		a.quit = true
	}
}

func (a *App) setAlert(text string) {
	a.ws.SetAlert(text)
	a.alertSet = true
}

func (a *App) resetAlert() {
	if a.alertSet {
		a.ws.SetAlert("")
		a.alertSet = false
	}
}

func undefinedKeyText(seq []keyevent.Event) string {
	kind := "key"
	if len(seq) > 1 {
		kind = "key sequence"
	}
	return displayKeySeq(seq) + ": undefined " + kind
}
