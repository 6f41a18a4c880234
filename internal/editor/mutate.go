package editor

// Mutating operations each follow the ten-step contract of spec §4.3:
// (1) move the gap to the edit position — delegated to *buffer.Buffer's
// own SetPos inside Insert/Remove, (2) mutate the buffer, (3) log a
// Change, (4) update the tokenizer incrementally, (5) refresh cur_line/
// top_line, (6) reposition the cursor, (7) clear snap_col, (8) realign
// the syntax cursor to top_line.row_pos, (9) set dirty, (10) increment
// the change clock.

func (e *Editor) logChange(c Change) {
	if top := len(e.undo) - 1; top >= 0 {
		if combined, ok := possiblyCombine(c, e.undo[top]); ok {
			e.undo[top] = combined
			e.redo = nil
			e.trimUndo()
			return
		}
	}
	e.undo = append(e.undo, c)
	e.redo = nil
	e.trimUndo()
}

func (e *Editor) trimUndo() {
	if len(e.undo) <= undoHardCap {
		return
	}
	drop := len(e.undo) - undoSoftCap
	e.undo = append([]Change(nil), e.undo[drop:]...)
}

// possiblyCombine coalesces sequential single-character inserts or
// removals moving in the same direction into one Change, so a burst of
// ordinary typing or backspacing collapses to a single undo step (spec
// §4.3 "log(change)").
func possiblyCombine(next, prev Change) (Change, bool) {
	if next.Kind != prev.Kind {
		return Change{}, false
	}
	switch next.Kind {
	case ChangeInsert:
		if len(next.Text) == 1 && next.Pos == prev.Pos+len(prev.Text) {
			return Change{Kind: ChangeInsert, Pos: prev.Pos, Text: append(append([]rune(nil), prev.Text...), next.Text...)}, true
		}
	case ChangeRemoveBefore:
		if len(next.Text) == 1 && next.Pos == prev.Pos-1 {
			return Change{Kind: ChangeRemoveBefore, Pos: next.Pos, Text: append(append([]rune(nil), next.Text...), prev.Text...)}, true
		}
	case ChangeRemoveAfter:
		if len(next.Text) == 1 && next.Pos == prev.Pos {
			return Change{Kind: ChangeRemoveAfter, Pos: prev.Pos, Text: append(append([]rune(nil), prev.Text...), next.Text...)}, true
		}
	}
	return Change{}, false
}

func (e *Editor) tokenizerInsert(pos, length int) {
	c := e.tokenizer.Find(e.tokCursor, pos)
	e.tokCursor = e.tokenizer.Insert(c, length)
}

func (e *Editor) tokenizerRemove(pos, length int) {
	c := e.tokenizer.Find(e.tokCursor, pos)
	e.tokCursor = e.tokenizer.Remove(c, length)
}

// settle performs steps 5-10 when a mutation moves the cursor to newPos.
func (e *Editor) settle(newPos int) {
	e.curPos = clamp(newPos, 0, e.buf.Size())
	e.curLine = findLine(e.buf, e.curPos, e.effCols())
	e.topLine = updateLine(e.buf, e.topLine, e.effCols())
	e.moveToAuto(e.curPos)
	e.clearSnapCol()
	e.dirty = true
	e.clock++
	e.realignTokenizer()
}

// settleInPlace performs steps 5-10 for a mutation that does not move
// cur_pos (e.g. remove_end), refreshing line lengths and the cursor's
// on-screen row without moving cur_pos itself.
func (e *Editor) settleInPlace() {
	e.curLine = updateLine(e.buf, e.curLine, e.effCols())
	if e.topLine.LinePos == e.curLine.LinePos {
		e.topLine = updateLine(e.buf, e.topLine, e.effCols())
	}
	e.moveToAuto(e.curPos)
	e.clearSnapCol()
	e.dirty = true
	e.clock++
	e.realignTokenizer()
}

// InsertChar inserts a single character at the cursor.
func (e *Editor) InsertChar(c rune) error {
	pos := e.curPos
	newPos, err := e.buf.InsertChar(pos, c)
	if err != nil {
		return err
	}
	e.logChange(Change{Kind: ChangeInsert, Pos: pos, Text: []rune{c}})
	e.tokenizerInsert(pos, 1)
	e.settle(newPos)
	return nil
}

// InsertString inserts s at the cursor.
func (e *Editor) InsertString(s string) error { return e.Insert([]rune(s)) }

// Insert inserts text at the cursor; the cursor ends after it.
func (e *Editor) Insert(text []rune) error {
	if len(text) == 0 {
		return nil
	}
	pos := e.curPos
	newPos, err := e.buf.Insert(pos, text)
	if err != nil {
		return err
	}
	e.logChange(Change{Kind: ChangeInsert, Pos: pos, Text: append([]rune(nil), text...)})
	e.tokenizerInsert(pos, len(text))
	e.settle(newPos)
	return nil
}

// RemoveBefore removes the character immediately before the cursor
// (backspace).
func (e *Editor) RemoveBefore() {
	if e.curPos == 0 {
		return
	}
	pos := e.curPos - 1
	removed := e.buf.Remove(pos, 1)
	if len(removed) == 0 {
		return
	}
	e.logChange(Change{Kind: ChangeRemoveBefore, Pos: pos, Text: removed})
	e.tokenizerRemove(pos, 1)
	e.settle(pos)
}

// RemoveAfter removes the character immediately after the cursor (delete
// forward).
func (e *Editor) RemoveAfter() {
	if e.curPos >= e.buf.Size() {
		return
	}
	pos := e.curPos
	removed := e.buf.Remove(pos, 1)
	if len(removed) == 0 {
		return
	}
	e.logChange(Change{Kind: ChangeRemoveAfter, Pos: pos, Text: removed})
	e.tokenizerRemove(pos, 1)
	e.settle(pos)
}

// RemoveMark removes the range between the mark and the cursor, logging
// a RemoveSelectionBefore/After depending on which side of the cursor the
// mark fell on, carrying the mark's soft flag. No-op if no mark is set.
func (e *Editor) RemoveMark() {
	m := e.mark
	if m == nil {
		return
	}
	lo, hi := m.Pos, e.curPos
	before := m.Pos < e.curPos
	if lo > hi {
		lo, hi = hi, lo
	}
	removed := e.buf.Remove(lo, hi-lo)
	if len(removed) == 0 {
		e.mark = nil
		return
	}
	kind := ChangeRemoveSelectionAfter
	if before {
		kind = ChangeRemoveSelectionBefore
	}
	e.logChange(Change{Kind: kind, Pos: lo, Text: removed, Soft: m.Soft})
	e.tokenizerRemove(lo, len(removed))
	e.mark = nil
	e.settle(lo)
}

// RemoveLine removes the entire buffer line enclosing the cursor.
func (e *Editor) RemoveLine() {
	start := e.curLine.LinePos
	end := start + e.curLine.LineLen
	removed := e.buf.Remove(start, end-start)
	if len(removed) == 0 {
		return
	}
	e.logChange(Change{Kind: ChangeRemoveAfter, Pos: start, Text: removed})
	e.tokenizerRemove(start, len(removed))
	e.settle(start)
}

// RemoveStart removes from the start of the current row to the cursor,
// falling through to RemoveBefore when already at the row start.
func (e *Editor) RemoveStart() {
	start := e.curLine.RowPos
	if e.curPos <= start {
		e.RemoveBefore()
		return
	}
	removed := e.buf.Remove(start, e.curPos-start)
	if len(removed) == 0 {
		return
	}
	e.logChange(Change{Kind: ChangeRemoveBefore, Pos: start, Text: removed})
	e.tokenizerRemove(start, len(removed))
	e.settle(start)
}

// RemoveEnd removes from the cursor to the current row's end column.
func (e *Editor) RemoveEnd() {
	end := e.curLine.RowPos + e.curLine.EndCol()
	if end <= e.curPos {
		return
	}
	removed := e.buf.Remove(e.curPos, end-e.curPos)
	if len(removed) == 0 {
		return
	}
	pos := e.curPos
	e.logChange(Change{Kind: ChangeRemoveAfter, Pos: pos, Text: removed})
	e.tokenizerRemove(pos, len(removed))
	e.settleInPlace()
}

// Remove removes the general range between the cursor and pos.
func (e *Editor) Remove(pos int) {
	lo, hi := e.curPos, pos
	before := pos < e.curPos
	if lo > hi {
		lo, hi = hi, lo
	}
	removed := e.buf.Remove(lo, hi-lo)
	if len(removed) == 0 {
		return
	}
	kind := ChangeRemoveAfter
	if before {
		kind = ChangeRemoveBefore
	}
	e.logChange(Change{Kind: kind, Pos: lo, Text: removed})
	e.tokenizerRemove(lo, len(removed))
	e.settle(lo)
}

// --- Undo / redo ---

// Undo pops the top undo entry, applies its inverse, and pushes the
// original onto the redo stack.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	c := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.applyInverse(c)
	e.redo = append(e.redo, c)
	return true
}

// Redo pops the top redo entry, re-applies it, and pushes it back onto
// undo.
func (e *Editor) Redo() bool {
	if len(e.redo) == 0 {
		return false
	}
	c := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.applyForward(c)
	e.undo = append(e.undo, c)
	return true
}

// applyInverse undoes a Change without re-logging it.
func (e *Editor) applyInverse(c Change) {
	switch c.Kind {
	case ChangeInsert:
		e.buf.Remove(c.Pos, len(c.Text))
		e.tokenizerRemove(c.Pos, len(c.Text))
		e.settle(c.Pos)
	case ChangeRemoveBefore:
		e.buf.Insert(c.Pos, c.Text)
		e.tokenizerInsert(c.Pos, len(c.Text))
		e.settle(c.Pos + len(c.Text))
	case ChangeRemoveAfter:
		e.buf.Insert(c.Pos, c.Text)
		e.tokenizerInsert(c.Pos, len(c.Text))
		e.settle(c.Pos)
	case ChangeRemoveSelectionBefore:
		e.buf.Insert(c.Pos, c.Text)
		e.tokenizerInsert(c.Pos, len(c.Text))
		e.settle(c.Pos + len(c.Text))
		e.mark = &Mark{Pos: c.Pos, Soft: c.Soft}
	case ChangeRemoveSelectionAfter:
		e.buf.Insert(c.Pos, c.Text)
		e.tokenizerInsert(c.Pos, len(c.Text))
		e.settle(c.Pos)
		e.mark = &Mark{Pos: c.Pos + len(c.Text), Soft: c.Soft}
	}
}

// applyForward re-applies a Change without re-logging it (redo).
func (e *Editor) applyForward(c Change) {
	switch c.Kind {
	case ChangeInsert:
		e.buf.Insert(c.Pos, c.Text)
		e.tokenizerInsert(c.Pos, len(c.Text))
		e.settle(c.Pos + len(c.Text))
	case ChangeRemoveBefore, ChangeRemoveSelectionBefore:
		e.buf.Remove(c.Pos, len(c.Text))
		e.tokenizerRemove(c.Pos, len(c.Text))
		e.settle(c.Pos)
	case ChangeRemoveAfter, ChangeRemoveSelectionAfter:
		e.buf.Remove(c.Pos, len(c.Text))
		e.tokenizerRemove(c.Pos, len(c.Text))
		e.settle(c.Pos)
	}
}
