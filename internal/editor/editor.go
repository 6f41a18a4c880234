package editor

import (
	"io"
	"unicode"

	"go.uber.org/zap"

	"github.com/dledwards/ped/internal/buffer"
	"github.com/dledwards/ped/internal/config"
	"github.com/dledwards/ped/internal/source"
	"github.com/dledwards/ped/internal/token"
	"github.com/dledwards/ped/internal/window"
)

// undoHardCap and undoSoftCap bound the undo stack (spec §4.3 "Undo/
// redo"): once the stack exceeds the hard cap, the oldest entries are
// drained down to the soft cap.
const (
	undoHardCap = 1280
	undoSoftCap = 1024
)

// Editor is the kernel: owns a gap buffer, a tokenizer, and the undo/redo
// stacks, and renders onto a weakly-attached Window (spec §3 ownership).
type Editor struct {
	cfg *config.Config
	log *zap.Logger

	buf       *buffer.Buffer
	tokenizer *token.Tokenizer
	tokCursor token.Cursor

	clock         int
	tokenizeClock int
	dirty         bool

	curPos      int
	topLine     Line
	curLine     Line
	snapCol     *int
	cursorPoint Point
	mark        *Mark

	win        *window.Window
	rows, cols int // effective text area, excluding the margin
	marginCols int

	undo []Change
	redo []Change

	src        source.Source
	syntaxName string
}

// New returns an editor over an empty buffer, attached to a zombie window
// until Attach is called.
func New(cfg *config.Config, log *zap.Logger, src source.Source, syntaxName string) (*Editor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rules, _ := cfg.Syntax(syntaxName)
	tok, err := token.New(rules)
	if err != nil {
		return nil, err
	}
	e := &Editor{
		cfg:        cfg,
		log:        log,
		buf:        buffer.New(),
		tokenizer:  tok,
		win:        window.Zombie(),
		src:        src,
		syntaxName: syntaxName,
	}
	e.tokCursor, _ = tok.Tokenize(e.buf)
	e.resetLineState()
	return e, nil
}

func (e *Editor) resetLineState() {
	e.curLine = findLine(e.buf, 0, e.effCols())
	e.topLine = e.curLine
	e.curPos = 0
	e.cursorPoint = Point{}
	e.snapCol = nil
}

func (e *Editor) effCols() int {
	if e.cols <= 0 {
		return 1
	}
	return e.cols
}

// Buffer exposes the underlying gap buffer for I/O and inspection.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Dirty reports whether the buffer has unsaved changes.
func (e *Editor) Dirty() bool { return e.dirty }

// MarkSaved clears the dirty flag after a successful write to the
// buffer's source, without touching undo/redo history.
func (e *Editor) MarkSaved() { e.dirty = false }

// Pos returns the current cursor position.
func (e *Editor) Pos() int { return e.curPos }

// Source returns the buffer's backing identity.
func (e *Editor) Source() source.Source { return e.src }

// SetSource replaces the buffer's backing identity (e.g. after save-as).
func (e *Editor) SetSource(s source.Source) { e.src = s }

// CursorPoint returns the on-screen (row, col) the cursor currently
// occupies within the attached window's text area.
func (e *Editor) CursorPoint() Point { return e.cursorPoint }

// CursorScreenCol returns the cursor's on-screen column including the
// line-number margin, i.e. the column Render() actually draws the
// cursor's cell at — what a terminal renderer needs to place the real
// cursor, since CursorPoint().Col is margin-relative.
func (e *Editor) CursorScreenCol() int { return e.marginCols + e.cursorPoint.Col }

// Attach binds the editor to win, recomputing the effective text area
// from the window's canvas size and the configured margin, then
// re-deriving line state at the (clamped) current position (spec §6
// "Window attachment... The editor calls these on attach and again after
// a resize").
func (e *Editor) Attach(win *window.Window) {
	e.win = win
	rows, cols := win.Size()
	e.marginCols = e.computeMargin(cols)
	e.rows = rows
	e.cols = cols - e.marginCols
	if e.cols < 1 {
		e.cols = 1
	}
	pos := clamp(e.curPos, 0, e.buf.Size())
	e.curLine = findLine(e.buf, pos, e.effCols())
	e.topLine = findLine(e.buf, e.topLine.LinePos, e.effCols())
	e.curPos = pos
	e.realignTokenizer()
}

func (e *Editor) computeMargin(cols int) int {
	if !e.cfg.ShowLineNumbers {
		return 0
	}
	if cols < 2*config.MarginCols {
		return 0
	}
	return config.MarginCols
}

// Load replaces the buffer's contents by reading r, resets line/undo
// state, and runs an initial full tokenization.
func (e *Editor) Load(r io.Reader) error {
	if err := e.buf.Read(r); err != nil {
		return err
	}
	e.undo = nil
	e.redo = nil
	e.dirty = false
	e.mark = nil
	e.resetLineState()
	cur, err := e.tokenizer.Tokenize(e.buf)
	if err != nil {
		return err
	}
	e.tokCursor = cur
	e.tokenizeClock = e.clock
	return nil
}

// Tokenize runs a full re-tokenization if the change clock has advanced
// past the last tokenize clock, then realigns the syntax cursor to the
// top of the display (spec §4.3).
func (e *Editor) Tokenize() {
	if e.tokenizeClock == e.clock {
		return
	}
	cur, err := e.tokenizer.Tokenize(e.buf)
	if err != nil {
		e.log.Warn("tokenize failed, keeping stale spans", zap.Error(err))
		return
	}
	e.tokCursor = cur
	e.tokenizeClock = e.clock
	e.realignTokenizer()
}

func (e *Editor) realignTokenizer() {
	e.tokCursor = e.tokenizer.Find(e.tokCursor, e.topLine.RowPos)
}

// --- Navigation ---

func (e *Editor) curCol() int {
	return clamp(e.curPos-e.curLine.RowPos, 0, e.curLine.EndCol())
}

// MoveBackward moves the cursor back up to n characters.
func (e *Editor) MoveBackward(n int) { e.moveTo(clamp(e.curPos-n, 0, e.buf.Size()), Auto()) }

// MoveForward moves the cursor forward up to n characters.
func (e *Editor) MoveForward(n int) { e.moveTo(clamp(e.curPos+n, 0, e.buf.Size()), Auto()) }

func isSpace(c rune) bool { return unicode.IsSpace(c) }

// MoveBackwardWord skips whitespace then non-whitespace backward, landing
// just after the last skipped character.
func (e *Editor) MoveBackwardWord() {
	it := e.buf.Backward(e.curPos)
	pos := e.curPos
	for {
		p, c, ok := it.IndexNext()
		if !ok {
			pos = 0
			break
		}
		if !isSpace(c) {
			pos = p
			break
		}
	}
	for {
		p, c, ok := it.IndexNext()
		if !ok {
			pos = 0
			break
		}
		if isSpace(c) {
			pos = p + 1
			break
		}
	}
	e.moveTo(pos, Auto())
}

// MoveForwardWord skips whitespace then non-whitespace forward, landing on
// the whitespace character that follows the word (or end of buffer).
func (e *Editor) MoveForwardWord() {
	it := e.buf.Forward(e.curPos)
	pos := e.curPos
	for {
		p, c, ok := it.IndexNext()
		if !ok {
			pos = e.buf.Size()
			break
		}
		if !isSpace(c) {
			pos = p
			break
		}
	}
	for {
		p, c, ok := it.IndexNext()
		if !ok {
			pos = e.buf.Size()
			break
		}
		if isSpace(c) {
			pos = p
			break
		}
	}
	e.moveTo(pos, Auto())
}

func (e *Editor) ensureSnapCol() int {
	if e.snapCol == nil {
		c := e.curCol()
		e.snapCol = &c
	}
	return *e.snapCol
}

// clearSnapCol is called by every non-vertical-motion operation per spec
// §4.3's "on any non-vertical op, clear it."
func (e *Editor) clearSnapCol() { e.snapCol = nil }

// MoveUp moves the cur_line up by up to tryRows display rows. If pin, the
// cursor stays on the same screen row and top_line scrolls with it (as far
// as top_line can scroll; once it reaches the buffer start the cursor row
// moves up instead); else the cursor moves freely until it would leave
// the visible region.
func (e *Editor) MoveUp(tryRows int, pin bool) {
	col := e.ensureSnapCol()
	line := e.curLine
	moved := 0
	for moved < tryRows {
		pl, ok := prevLine(e.buf, line, e.effCols())
		if !ok {
			break
		}
		line = pl
		moved++
	}
	if moved == 0 {
		return
	}
	e.curLine = line
	e.curPos = line.RowPos + clamp(col, 0, line.EndCol())

	if pin {
		top := e.topLine
		topMoved := 0
		for topMoved < moved {
			pl, ok := prevLine(e.buf, top, e.effCols())
			if !ok {
				break
			}
			top = pl
			topMoved++
		}
		e.topLine = top
		e.cursorPoint.Row -= moved - topMoved
	} else if e.cursorPoint.Row-moved < 0 {
		e.topLine = line
		e.cursorPoint.Row = 0
	} else {
		e.cursorPoint.Row -= moved
	}
	e.cursorPoint.Col = e.curPos - line.RowPos
	e.realignTokenizer()
}

// MoveDown is MoveUp's mirror.
func (e *Editor) MoveDown(tryRows int, pin bool) {
	col := e.ensureSnapCol()
	line := e.curLine
	moved := 0
	for moved < tryRows {
		nl, ok := nextLine(e.buf, line, e.effCols())
		if !ok {
			break
		}
		line = nl
		moved++
	}
	if moved == 0 {
		return
	}
	e.curLine = line
	e.curPos = line.RowPos + clamp(col, 0, line.EndCol())

	if pin {
		top := e.topLine
		for i := 0; i < moved; i++ {
			nl, ok := nextLine(e.buf, top, e.effCols())
			if !ok {
				break
			}
			top = nl
		}
		e.topLine = top
	} else if e.cursorPoint.Row+moved > e.rows-1 {
		e.setTopAndRow(line, e.rows-1)
	} else {
		e.cursorPoint.Row += moved
	}
	e.cursorPoint.Col = e.curPos - line.RowPos
	e.realignTokenizer()
}

// MoveStart positions the cursor at column 0 of the current row.
func (e *Editor) MoveStart() { e.moveTo(e.curLine.RowPos, Auto()) }

// MoveEnd positions the cursor at the current row's end column.
func (e *Editor) MoveEnd() {
	e.moveTo(e.curLine.RowPos+e.curLine.EndCol(), Auto())
}

// MoveTop positions the cursor at buffer position 0, pinned to the top
// row.
func (e *Editor) MoveTop() { e.moveTo(0, Top()) }

// MoveBottom positions the cursor at the buffer end, pinned to the bottom
// row.
func (e *Editor) MoveBottom() { e.moveTo(e.buf.Size(), Bottom()) }

// MoveLine positions the cursor at the start of 0-based line n.
func (e *Editor) MoveLine(n int, align Align) { e.moveTo(e.buf.FindLine(n), align) }

// MoveTo is the unified positioning path (spec §4.3 "move_to").
func (e *Editor) MoveTo(pos int, align Align) { e.moveTo(pos, align) }

func (e *Editor) moveTo(pos int, align Align) {
	pos = clamp(pos, 0, e.buf.Size())
	e.curPos = pos
	e.curLine = findLine(e.buf, pos, e.effCols())

	switch align.Kind {
	case AlignTop:
		e.topLine = e.curLine
		e.cursorPoint = Point{Row: 0, Col: e.curCol()}
	case AlignCenter:
		e.setTopAndRow(e.curLine, e.rows/2)
	case AlignBottom:
		e.setTopAndRow(e.curLine, e.rows-1)
	case AlignRow:
		e.setTopAndRow(e.curLine, clamp(align.Row, 0, maxRow(e.rows)))
	default:
		e.moveToAuto(pos)
	}
	e.clearSnapCol()
	e.realignTokenizer()
}

func maxRow(rows int) int {
	if rows <= 0 {
		return 0
	}
	return rows - 1
}

func (e *Editor) setTopAndRow(line Line, desiredRow int) {
	row := 0
	for row < desiredRow {
		pl, ok := prevLine(e.buf, line, e.effCols())
		if !ok {
			break
		}
		line = pl
		row++
	}
	e.topLine = line
	e.cursorPoint = Point{Row: row, Col: e.curCol()}
}

func (e *Editor) moveToAuto(pos int) {
	if pos < e.topLine.RowPos {
		e.topLine = e.curLine
		e.cursorPoint = Point{Row: 0, Col: e.curCol()}
		return
	}
	line := e.topLine
	for row := 0; row < e.rows; row++ {
		if line.RowPos == e.curLine.RowPos {
			e.cursorPoint = Point{Row: row, Col: pos - line.RowPos}
			return
		}
		nl, ok := nextLine(e.buf, line, e.effCols())
		if !ok {
			break
		}
		line = nl
	}
	e.setTopAndRow(e.curLine, maxRow(e.rows))
}

// ScrollUp moves top_line up by n display rows, preserving cur_pos where
// possible; if the cursor would scroll off-screen it is repositioned to
// the nearest visible row.
func (e *Editor) ScrollUp(n int) {
	top := e.topLine
	moved := 0
	for moved < n {
		pl, ok := prevLine(e.buf, top, e.effCols())
		if !ok {
			break
		}
		top = pl
		moved++
	}
	e.topLine = top
	e.reflowAfterScroll()
}

// ScrollDown is ScrollUp's mirror.
func (e *Editor) ScrollDown(n int) {
	top := e.topLine
	moved := 0
	for moved < n {
		nl, ok := nextLine(e.buf, top, e.effCols())
		if !ok {
			break
		}
		top = nl
		moved++
	}
	e.topLine = top
	e.reflowAfterScroll()
}

func (e *Editor) reflowAfterScroll() {
	if e.curPos < e.topLine.RowPos {
		e.curPos = e.topLine.RowPos
		e.curLine = e.topLine
		e.cursorPoint = Point{Row: 0, Col: 0}
		e.realignTokenizer()
		return
	}
	line := e.topLine
	for row := 0; row < e.rows; row++ {
		if line.RowPos == e.curLine.RowPos {
			e.cursorPoint = Point{Row: row, Col: e.curPos - line.RowPos}
			e.curLine = line
			e.realignTokenizer()
			return
		}
		nl, ok := nextLine(e.buf, line, e.effCols())
		if !ok {
			break
		}
		line = nl
	}
	// Cursor scrolled off the bottom: snap it to the last visible row.
	e.curLine = line
	e.curPos = clamp(e.curPos, line.RowPos, line.RowPos+line.EndCol())
	e.cursorPoint = Point{Row: maxRow(e.rows), Col: e.curPos - line.RowPos}
	e.realignTokenizer()
}

// SetFocus is the mouse-click hook: clamps p to the text area and derives
// a new cur_line/cur_pos by walking down from top_line by p.Row rows.
func (e *Editor) SetFocus(p Point) {
	row := clamp(p.Row, 0, maxRow(e.rows))
	line := e.topLine
	for i := 0; i < row; i++ {
		nl, ok := nextLine(e.buf, line, e.effCols())
		if !ok {
			break
		}
		line = nl
	}
	col := clamp(p.Col, 0, line.EndCol())
	e.curLine = line
	e.curPos = line.RowPos + col
	e.cursorPoint = Point{Row: row, Col: col}
	e.clearSnapCol()
	e.realignTokenizer()
}

// --- Selection ---

// SetHardMark replaces any existing mark with a hard mark at the current
// position.
func (e *Editor) SetHardMark() { e.mark = &Mark{Pos: e.curPos, Soft: false} }

// SetSoftMark installs a soft mark at the current position, leaving an
// existing mark (of either kind) untouched.
func (e *Editor) SetSoftMark() {
	if e.mark == nil {
		e.mark = &Mark{Pos: e.curPos, Soft: true}
	}
}

// SetSoftMarkAt installs a soft mark at pos, leaving an existing mark
// untouched.
func (e *Editor) SetSoftMarkAt(pos int) {
	if e.mark == nil {
		e.mark = &Mark{Pos: pos, Soft: true}
	}
}

// ClearSoftMark clears the mark only if it is soft.
func (e *Editor) ClearSoftMark() {
	if e.mark != nil && e.mark.Soft {
		e.mark = nil
	}
}

// ClearMark clears the mark unconditionally.
func (e *Editor) ClearMark() { e.mark = nil }

// Mark returns the current mark, or nil if none is set.
func (e *Editor) Mark() *Mark { return e.mark }

// CopyMark returns the characters between the mark and the cursor,
// without mutation. Returns nil if no mark is set.
func (e *Editor) CopyMark() []rune {
	if e.mark == nil {
		return nil
	}
	return e.buf.Copy(e.mark.Pos, e.curPos)
}

// CopyLine returns the characters of the buffer line containing the
// cursor, including its trailing '\n' if any.
func (e *Editor) CopyLine() []rune {
	return e.buf.Copy(e.curLine.LinePos, e.curLine.LinePos+e.curLine.LineLen)
}

// Copy returns the characters between a and b, without mutation.
func (e *Editor) Copy(a, b int) []rune { return e.buf.Copy(a, b) }

// Capture snapshots enough state to restore the view after an external
// prompt (search, goto-line) cancels (spec §4.3 "capture/restore").
type Capture struct {
	pos  int
	row  Point
	mark *Mark
}

// Capture returns a snapshot of the current position, on-screen row, and
// mark.
func (e *Editor) Capture() Capture {
	var m *Mark
	if e.mark != nil {
		cp := *e.mark
		m = &cp
	}
	return Capture{pos: e.curPos, row: e.cursorPoint, mark: m}
}

// Restore reverts to a previously captured position/row/mark.
func (e *Editor) Restore(c Capture) {
	e.moveTo(c.pos, RowAlign(c.row.Row))
	e.mark = c.mark
}
