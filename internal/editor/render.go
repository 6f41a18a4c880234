package editor

import (
	"fmt"
	"strings"

	"github.com/dledwards/ped/internal/grid"
)

// selectSpan is the half-open [lo, hi) character range drawn with the
// selection background, derived from the mark and the cursor.
type selectSpan struct {
	lo, hi int
	active bool
}

func (e *Editor) computeSelectSpan() selectSpan {
	if e.mark == nil {
		return selectSpan{}
	}
	lo, hi := e.mark.Pos, e.curPos
	if lo > hi {
		lo, hi = hi, lo
	}
	return selectSpan{lo: lo, hi: hi, active: true}
}

func (s selectSpan) contains(pos int) bool {
	return s.active && pos >= s.lo && pos < s.hi
}

// glyphFor maps a raw buffer character to the rune actually drawn,
// following spec §4.3's "\n to a configurable glyph ... \t and other
// ASCII control to configurable glyphs."
func (e *Editor) glyphFor(c rune) (rune, bool) {
	switch {
	case c == '\n':
		if e.cfg.Glyphs.EOLVisible {
			return e.cfg.Glyphs.EOL, true
		}
		return ' ', true
	case c == '\t':
		return e.cfg.Glyphs.Tab, true
	case c < 0x20 || c == 0x7f:
		return e.cfg.Glyphs.Control, true
	default:
		return c, false
	}
}

// Render first runs Tokenize (a no-op when the clocks agree), then draws
// the buffer's visible window starting at top_line.row_pos into the
// attached window's canvas, then updates and draws the banner (spec §4.3
// "Rendering").
func (e *Editor) Render() {
	e.Tokenize()
	canvas := e.win.Canvas()
	if canvas.Rows == 0 || canvas.Cols == 0 {
		return
	}
	canvas.Clear()

	span := e.computeSelectSpan()
	cursorRow := e.cursorPoint.Row

	line := e.topLine
	lineNum := line.LineNum

	row, col := 0, 0
	e.drawMargin(canvas, row, lineNum+1, line.RowPos == line.LinePos)

	it := e.buf.Forward(e.topLine.RowPos)
	pos := e.topLine.RowPos
	for row <= e.rows-1 {
		c, ok := it.Next()
		if !ok {
			break
		}

		glyph, isSpecial := e.glyphFor(c)
		fg, bg := e.colorsFor(pos, isSpecial, row == cursorRow, span)

		if c == '\n' {
			e.fillRowRemainder(canvas, row, col, fg, bg)
			row++
			col = 0
			pos++
			if row <= e.rows-1 {
				lineNum++
				e.drawMargin(canvas, row, lineNum+1, true)
			}
			continue
		}

		canvas.SetCell(row, e.marginCols+col, grid.Cell{Rune: glyph, Fg: fg, Bg: bg})
		col++
		pos++
		if col >= e.cols {
			row++
			col = 0
			if row <= e.rows-1 {
				e.drawMargin(canvas, row, lineNum+1, false)
			}
		}
	}

	e.fillRowRemainder(canvas, row, col, e.cfg.Colors.TextFg, e.cfg.Colors.TextBg)
	for r := row + 1; r <= e.rows-1; r++ {
		e.fillRowRemainder(canvas, r, 0, e.cfg.Colors.TextFg, e.cfg.Colors.TextBg)
	}

	e.updateBanner()
	e.win.Banner().Draw(canvas.Cols)
}

func (e *Editor) colorsFor(pos int, isSpecial bool, onCursorRow bool, span selectSpan) (fg, bg uint8) {
	bg = e.cfg.Colors.TextBg
	if span.contains(pos) {
		bg = e.cfg.Colors.SelectionBg
	} else if onCursorRow {
		bg = e.cfg.Colors.SpotlightBg
	}

	tc := e.tokenizer.Find(e.tokCursor, pos)
	if col := tc.Color(); col != nil {
		return col.Fg, bg
	}
	if isSpecial {
		return e.cfg.Colors.WhitespaceFg, bg
	}
	return e.cfg.Colors.TextFg, bg
}

func (e *Editor) fillRowRemainder(canvas *grid.Grid, row, fromCol int, fg, bg uint8) {
	if row > e.rows-1 || row < 0 {
		return
	}
	for c := fromCol; c < e.cols; c++ {
		canvas.SetCell(row, e.marginCols+c, grid.Cell{Rune: ' ', Fg: fg, Bg: bg})
	}
}

// drawMargin draws the left line-number margin at row (spec §4.3
// "Margin"): reserved only when line numbers are enabled and cols >= 2 *
// MarginCols; numbers beyond what MarginCols-1 digits can hold render as
// dashes. atLineStart selects whether this row shows a number or blank
// continuation spaces.
func (e *Editor) drawMargin(canvas *grid.Grid, row, lineNumOneBased int, atLineStart bool) {
	if e.marginCols == 0 {
		return
	}
	text := strings.Repeat(" ", e.marginCols)
	if atLineStart {
		text = formatMargin(lineNumOneBased, e.marginCols)
	}
	for i, r := range []rune(text) {
		if i >= e.marginCols {
			break
		}
		canvas.SetCell(row, i, grid.Cell{Rune: r, Fg: e.cfg.Colors.WhitespaceFg, Bg: e.cfg.Colors.TextBg})
	}
}

func formatMargin(n, width int) string {
	digits := width - 1
	s := fmt.Sprintf("%d", n)
	if len(s) > digits {
		s = strings.Repeat("-", digits)
	}
	return fmt.Sprintf("%*s ", digits, s)
}

// updateBanner pushes the editor's dirty/source/syntax/location state
// into the attached window's banner, ready to be drawn.
func (e *Editor) updateBanner() {
	b := e.win.Banner()
	b.SetDirty(e.dirty)
	b.SetSource(e.src.Display())
	b.SetSyntax(e.syntaxName)
	b.SetLocation(fmt.Sprintf("%d:%d", e.curLine.LineNum+1, e.curPos-e.curLine.LinePos+1))
}
