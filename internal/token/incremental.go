package token

// Insert incrementally adjusts the span list for an insertion of length
// characters at cursor c's position, without re-running the regex (spec
// §4.2). The resulting cursor points at the newly inserted gap span.
func (t *Tokenizer) Insert(c Cursor, length int) Cursor {
	if length <= 0 {
		return c
	}
	t.chars += length

	idx := c.Index
	sp := t.spans[idx]

	switch {
	case c.Pos == c.Start:
		// At the span's start: insert a single gap(len) before it.
		t.spans = insertSpan(t.spans, idx, span{id: 0, len: length})
		return Cursor{tok: t, Index: idx, Start: c.Start, End: c.Start + length, Pos: c.Start}

	case c.Pos == c.End && idx == len(t.spans)-1:
		// At the end of the final span (appending at end-of-buffer):
		// append a trailing gap.
		t.spans = append(t.spans, span{id: 0, len: length})
		newIdx := len(t.spans) - 1
		return Cursor{tok: t, Index: newIdx, Start: c.End, End: c.End + length, Pos: c.End}

	default:
		// Strictly inside: split into prefix | gap(len) | suffix,
		// carrying the original id on both sides.
		prefixLen := c.Pos - c.Start
		suffixLen := sp.len - prefixLen

		replacement := make([]span, 0, 3)
		if prefixLen > 0 {
			replacement = append(replacement, span{id: sp.id, len: prefixLen})
		}
		replacement = append(replacement, span{id: 0, len: length})
		if suffixLen > 0 {
			replacement = append(replacement, span{id: sp.id, len: suffixLen})
		}
		t.spans = replaceSpan(t.spans, idx, replacement)

		gapIdx := idx
		if prefixLen > 0 {
			gapIdx++
		}
		newStart := c.Start + prefixLen
		return Cursor{tok: t, Index: gapIdx, Start: newStart, End: newStart + length, Pos: newStart}
	}
}

// Remove incrementally adjusts the span list for a removal of length
// characters starting at cursor c's position (spec §4.2). The resulting
// cursor points at the surviving/right-hand neighbor span.
func (t *Tokenizer) Remove(c Cursor, length int) Cursor {
	if length <= 0 {
		return c
	}
	endPos := c.Pos + length
	if endPos > t.chars {
		endPos = t.chars
	}
	length = endPos - c.Pos
	if length <= 0 {
		return c
	}

	end := t.Find(c, endPos)
	t.chars -= length

	if c.Index == end.Index {
		t.spans[c.Index].len -= length
		newEnd := c.Start + t.spans[c.Index].len
		return Cursor{tok: t, Index: c.Index, Start: c.Start, End: newEnd, Pos: c.Pos}
	}

	startIdx, endIdx := c.Index, end.Index

	var out []span
	out = append(out, t.spans[:startIdx]...)

	keepPrefix := c.Pos > c.Start
	if keepPrefix {
		out = append(out, span{id: t.spans[startIdx].id, len: c.Pos - c.Start})
	}
	keepSuffix := endPos < end.End
	if keepSuffix {
		out = append(out, span{id: t.spans[endIdx].id, len: end.End - endPos})
	}
	out = append(out, t.spans[endIdx+1:]...)

	if len(out) == 0 {
		out = []span{{id: 0, len: 0}}
	}
	t.spans = out

	resultIdx := startIdx
	if keepPrefix {
		resultIdx++
	}
	if resultIdx >= len(t.spans) {
		resultIdx = len(t.spans) - 1
	}
	start := c.Pos
	return Cursor{tok: t, Index: resultIdx, Start: start, End: start + t.spans[resultIdx].len, Pos: c.Pos}
}

// insertSpan inserts s before index i.
func insertSpan(spans []span, i int, s span) []span {
	out := make([]span, 0, len(spans)+1)
	out = append(out, spans[:i]...)
	out = append(out, s)
	out = append(out, spans[i:]...)
	return out
}

// replaceSpan replaces the span at index i with replacement (one or more
// spans).
func replaceSpan(spans []span, i int, replacement []span) []span {
	out := make([]span, 0, len(spans)-1+len(replacement))
	out = append(out, spans[:i]...)
	out = append(out, replacement...)
	out = append(out, spans[i+1:]...)
	return out
}
