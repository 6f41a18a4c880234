package editor

import (
	"github.com/dledwards/ped/internal/buffer"
	"github.com/dledwards/ped/internal/numeric"
)

// Line is a display row: a soft-wrapped slice of a buffer line (spec §3
// "Display row").
type Line struct {
	RowPos     int
	RowLen     int
	LinePos    int
	LineLen    int
	LineNum    int
	LineBottom bool
}

// DoesWrap reports whether more display rows follow within the same
// buffer line (spec §7's invariant: does_wrap() ⇒ row_pos + row_len <
// line_pos + line_len).
func (l Line) DoesWrap() bool {
	return l.RowPos+l.RowLen < l.LinePos+l.LineLen
}

// EndCol returns the right-most column a cursor may stand at on this row
// (spec §4.3 "Line geometry"): a wrapped (non-final) row's end column is
// its full row_len; the line's true final row ends at row_len for an
// unterminated buffer-final line, or row_len-1 otherwise (the trailing
// '\n' is shown but not a valid cursor column).
func (l Line) EndCol() int {
	if l.DoesWrap() {
		return l.RowLen
	}
	if l.LineBottom {
		return l.RowLen
	}
	if l.RowLen > 0 {
		return l.RowLen - 1
	}
	return 0
}

func rowCount(lineLen, cols int) int {
	if cols <= 0 {
		cols = 1
	}
	if lineLen == 0 {
		return 1
	}
	n := (lineLen + cols - 1) / cols
	if n == 0 {
		n = 1
	}
	return n
}

// findLine builds the Line enclosing pos at the given display width
// (spec §4.3 "find_line(pos)").
func findLine(buf *buffer.Buffer, pos, cols int) Line {
	if cols <= 0 {
		cols = 1
	}
	linePos := buf.FindStartLine(pos)
	lineEnd, reachedEnd := buf.FindNextLine(linePos)
	lineLen := lineEnd - linePos
	lineNum := buf.LineOf(linePos)

	rowIdx := (pos - linePos) / cols
	if maxIdx := rowCount(lineLen, cols) - 1; rowIdx > maxIdx {
		rowIdx = maxIdx
	}
	if rowIdx < 0 {
		rowIdx = 0
	}
	rowPos := linePos + rowIdx*cols
	rowLen := lineLen - rowIdx*cols
	if rowLen > cols {
		rowLen = cols
	}
	if rowLen < 0 {
		rowLen = 0
	}

	return Line{
		RowPos:     rowPos,
		RowLen:     rowLen,
		LinePos:    linePos,
		LineLen:    lineLen,
		LineNum:    lineNum,
		LineBottom: reachedEnd,
	}
}

// prevLine steps to the display row immediately above line, wrapping from
// the first soft-wrapped piece of a buffer line into the previous buffer
// line. ok is false at the start of the buffer.
func prevLine(buf *buffer.Buffer, line Line, cols int) (Line, bool) {
	if line.RowPos > line.LinePos {
		return findLine(buf, line.RowPos-1, cols), true
	}
	if line.LinePos == 0 {
		return line, false
	}
	return findLine(buf, line.LinePos-1, cols), true
}

// nextLine steps to the display row immediately below line. ok is false
// at the end of the buffer.
func nextLine(buf *buffer.Buffer, line Line, cols int) (Line, bool) {
	if line.DoesWrap() {
		return findLine(buf, line.RowPos+line.RowLen, cols), true
	}
	if line.LineBottom {
		return line, false
	}
	return findLine(buf, line.LinePos+line.LineLen, cols), true
}

// updateLine recomputes row_len/line_len/line_bottom in place after the
// underlying buffer line changed without row_pos/line_pos/line_num
// changing (spec §4.3 "update_line(line)").
func updateLine(buf *buffer.Buffer, line Line, cols int) Line {
	if cols <= 0 {
		cols = 1
	}
	lineEnd, reachedEnd := buf.FindNextLine(line.LinePos)
	lineLen := lineEnd - line.LinePos
	rowLen := lineLen - (line.RowPos - line.LinePos)
	if rowLen > cols {
		rowLen = cols
	}
	if rowLen < 0 {
		rowLen = 0
	}
	line.RowLen = rowLen
	line.LineLen = lineLen
	line.LineBottom = reachedEnd
	return line
}

func clamp(v, lo, hi int) int { return numeric.Clamp(v, lo, hi) }
