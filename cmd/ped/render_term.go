package main

import (
	"strconv"

	"github.com/dledwards/ped/internal/grid"
)

// render composes one frame from every view's canvas+banner plus the
// workspace alert line, diffs it against the previously flushed frame, and
// writes only the changed cells — the same clear/draw/diff-and-flush
// sequence as the teacher's Screen.Frame, adapted to grid.Grid/grid.Update
// instead of writing escapes directly inside the diff loop.
func (a *App) render() {
	back := a.composeFrame()
	updates := a.front.Reconcile(back)
	a.out.WriteString("\x1b[?25l")
	a.flush(updates)
	a.positionCursor()
	a.out.WriteString("\x1b[?25h")
	a.out.Flush()
}

// composeFrame lays out every view's canvas rows followed by its one
// banner row at the view's origin, then the workspace's shared alert line
// on the terminal's last row (spec §4.6's "one row reserved for a shared
// alert line").
func (a *App) composeFrame() *grid.Grid {
	rows, cols := a.ws.Rows(), a.ws.Cols()
	back := grid.New(rows, cols)

	for _, v := range a.ws.Views() {
		if ed := a.editors[v.ID]; ed != nil {
			ed.Render()
		}
		canvas := v.Win.Canvas()
		for r := 0; r < canvas.Rows && v.Origin+r < rows; r++ {
			copyRow(back.Row(v.Origin+r), canvas.Row(r))
		}
		bannerRow := v.Origin + canvas.Rows
		if bannerRow < rows {
			copyRow(back.Row(bannerRow), v.Win.Banner().Draw(canvas.Cols))
		}
	}

	if alertRow := rows - 1; alertRow >= 0 {
		a.drawAlertRow(back, alertRow)
	}
	return back
}

func copyRow(dst, src []grid.Cell) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
}

func (a *App) drawAlertRow(back *grid.Grid, row int) {
	cells := back.Row(row)
	fg, bg := a.cfg.Colors.TextFg, a.cfg.Colors.TextBg
	for i := range cells {
		cells[i] = grid.Cell{Rune: ' ', Fg: fg, Bg: bg}
	}
	for i, r := range []rune(a.ws.Alert()) {
		if i >= len(cells) {
			break
		}
		cells[i] = grid.Cell{Rune: r, Fg: fg, Bg: bg}
	}
}

// flush writes the minimal set of cursor-move + color + rune escapes
// needed to bring the terminal's actual contents to the diffed updates,
// tracking the last-written position/color the way the teacher's
// renderUnlocked avoids redundant escapes.
func (a *App) flush(updates []grid.Update) {
	curRow, curCol := -1, -1
	var lastFg, lastBg uint8
	styleActive := false

	for _, u := range updates {
		if u.Point.Row != curRow || u.Point.Col != curCol {
			a.writeCursorPos(u.Point.Row+1, u.Point.Col+1)
		}
		if !styleActive || u.Cell.Fg != lastFg || u.Cell.Bg != lastBg {
			a.writeColor(u.Cell.Fg, u.Cell.Bg)
			lastFg, lastBg = u.Cell.Fg, u.Cell.Bg
			styleActive = true
		}
		r := u.Cell.Rune
		if r == 0 {
			r = ' '
		}
		a.out.WriteRune(r)
		curRow, curCol = u.Point.Row, u.Point.Col+1
	}
	if styleActive {
		a.out.WriteString("\x1b[0m")
	}
}

func (a *App) writeCursorPos(row, col int) {
	buf := make([]byte, 0, 16)
	buf = append(buf, '\x1b', '[')
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	buf = append(buf, 'H')
	a.out.Write(buf)
}

func (a *App) writeColor(fg, bg uint8) {
	buf := make([]byte, 0, 24)
	buf = append(buf, "\x1b[38;5;"...)
	buf = strconv.AppendInt(buf, int64(fg), 10)
	buf = append(buf, 'm')
	buf = append(buf, "\x1b[48;5;"...)
	buf = strconv.AppendInt(buf, int64(bg), 10)
	buf = append(buf, 'm')
	a.out.Write(buf)
}

// positionCursor places the real terminal cursor where the active
// editor's own cursor is drawn, translated from window-local to
// workspace-global coordinates by the active view's origin.
func (a *App) positionCursor() {
	view := a.activeView()
	ed := a.active()
	row := view.Origin + ed.CursorPoint().Row
	col := ed.CursorScreenCol()
	a.writeCursorPos(row+1, col+1)
}
