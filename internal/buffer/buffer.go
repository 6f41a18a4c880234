// Package buffer implements a gap buffer: a character-addressable mutable
// sequence supporting O(1) amortized insertion/removal around a moving gap,
// bidirectional iteration, and line-oriented queries (spec §4.1).
//
// Grounded on the array-with-a-hole technique in
// _examples/other_examples/1b95be32_Release-Candidate-go-gap-buffer, with
// growth and line-geometry semantics following
// _examples/original_source/src/document.rs.
package buffer

import (
	"bufio"
	"io"
	"math"

	"github.com/dledwards/ped/internal/editorerr"
)

// growIncrement is the fixed allocation unit; capacity is always an exact
// power-of-two multiple of it.
const growIncrement = 64 * 1024

// maxCapacity bounds how large the backing store may grow to, expressed in
// rune slots (spec: "bounded by ⌊isize_max / sizeof(char)⌋").
const maxCapacity = math.MaxInt / 4

// Buffer is a gap buffer of Unicode scalar values.
type Buffer struct {
	data     []rune
	gapStart int
	gapEnd   int
}

// New returns an empty gap buffer.
func New() *Buffer {
	return &Buffer{}
}

// FromString returns a gap buffer pre-populated with s, gap positioned at
// the end.
func FromString(s string) (*Buffer, error) {
	b := New()
	if _, err := b.InsertString(0, s); err != nil {
		return nil, err
	}
	return b, nil
}

// Size returns the number of characters currently in the buffer.
func (b *Buffer) Size() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

// Capacity returns the size of the backing store.
func (b *Buffer) Capacity() int {
	return len(b.data)
}

// dataIndex translates an external position into an index into b.data.
// Caller must ensure 0 <= pos <= Size().
func (b *Buffer) dataIndex(pos int) int {
	if pos < b.gapStart {
		return pos
	}
	return pos + (b.gapEnd - b.gapStart)
}

// Get reads the character at pos. ok is false if pos is out of [0, size).
func (b *Buffer) Get(pos int) (c rune, ok bool) {
	if pos < 0 || pos >= b.Size() {
		return 0, false
	}
	return b.data[b.dataIndex(pos)], true
}

// SetPos moves the gap so that its start is at pos, via a bulk block copy
// across the gap. pos must be in [0, size].
func (b *Buffer) SetPos(pos int) {
	size := b.Size()
	if pos < 0 {
		pos = 0
	}
	if pos > size {
		pos = size
	}
	switch {
	case pos < b.gapStart:
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
		b.gapStart = pos
		b.gapEnd -= n
	case pos > b.gapStart:
		n := pos - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+n], b.data[b.gapEnd:b.gapEnd+n])
		b.gapStart += n
		b.gapEnd += n
	}
}

// ensureGap grows the backing store, if needed, so the gap can hold at
// least n more characters.
func (b *Buffer) ensureGap(n int) error {
	if b.gapEnd-b.gapStart >= n {
		return nil
	}
	minCap := b.Size() + n
	if minCap > maxCapacity {
		return &editorerr.ErrBufferTooLarge{Requested: minCap}
	}
	newCap := growIncrement
	for newCap < minCap {
		newCap *= 2
	}
	newData, err := safeMakeRunes(newCap)
	if err != nil {
		return err
	}
	copy(newData[:b.gapStart], b.data[:b.gapStart])
	suffixLen := len(b.data) - b.gapEnd
	copy(newData[newCap-suffixLen:], b.data[b.gapEnd:])
	b.gapEnd = newCap - suffixLen
	b.data = newData
	return nil
}

func safeMakeRunes(n int) (data []rune, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &editorerr.ErrOutOfMemory{}
		}
	}()
	data = make([]rune, n)
	return data, nil
}

// InsertChar inserts a single rune at pos and returns the position just
// after it.
func (b *Buffer) InsertChar(pos int, c rune) (int, error) {
	if err := b.ensureGap(1); err != nil {
		return pos, err
	}
	b.SetPos(pos)
	b.data[b.gapStart] = c
	b.gapStart++
	return b.gapStart, nil
}

// Insert inserts text (a rune slice) at pos and returns the position just
// after the inserted text.
func (b *Buffer) Insert(pos int, text []rune) (int, error) {
	if len(text) == 0 {
		return pos, nil
	}
	if err := b.ensureGap(len(text)); err != nil {
		return pos, err
	}
	b.SetPos(pos)
	copy(b.data[b.gapStart:b.gapStart+len(text)], text)
	b.gapStart += len(text)
	return b.gapStart, nil
}

// InsertString is Insert with a string argument; collapses to InsertChar's
// fast path internally is unnecessary in Go since []rune(s) is already one
// allocation, but we keep a single logical operation per spec §9 ("the
// design collapses these into one logical operation").
func (b *Buffer) InsertString(pos int, s string) (int, error) {
	return b.Insert(pos, []rune(s))
}

// RemoveChar removes the single character immediately after the gap once
// it has been positioned at pos, returning the removed rune.
func (b *Buffer) RemoveChar(pos int) (rune, bool) {
	removed := b.Remove(pos, 1)
	if len(removed) == 0 {
		return 0, false
	}
	return removed[0], true
}

// Remove removes n characters starting at pos (the characters immediately
// following the gap once positioned there) and returns them.
func (b *Buffer) Remove(pos int, n int) []rune {
	if n <= 0 {
		return nil
	}
	b.SetPos(pos)
	size := b.Size()
	if n > size-pos {
		n = size - pos
	}
	if n <= 0 {
		return nil
	}
	removed := make([]rune, n)
	copy(removed, b.data[b.gapEnd:b.gapEnd+n])
	b.gapEnd += n
	return removed
}

// FindStartLine scans backward from pos and returns the position just after
// the nearest prior '\n', or 0 if there is none.
func (b *Buffer) FindStartLine(pos int) int {
	for i := pos - 1; i >= 0; i-- {
		if c, _ := b.Get(i); c == '\n' {
			return i + 1
		}
	}
	return 0
}

// FindNextLine scans forward from pos and returns the position just after
// the next '\n', or end-of-buffer with reachedEnd=true.
func (b *Buffer) FindNextLine(pos int) (next int, reachedEnd bool) {
	size := b.Size()
	for i := pos; i < size; i++ {
		if c, _ := b.Get(i); c == '\n' {
			return i + 1, false
		}
	}
	return size, true
}

// FindLine returns the first position on 0-based line n, saturating to the
// end of the buffer if n exceeds the line count.
func (b *Buffer) FindLine(n int) int {
	pos := 0
	for line := 0; line < n; line++ {
		next, reachedEnd := b.FindNextLine(pos)
		if reachedEnd {
			return b.Size()
		}
		pos = next
	}
	return pos
}

// LineOf returns the 0-based line number containing pos.
func (b *Buffer) LineOf(pos int) int {
	line := 0
	for i := 0; i < pos && i < b.Size(); i++ {
		if c, _ := b.Get(i); c == '\n' {
			line++
		}
	}
	return line
}

// Copy returns the characters in the open interval between from and to,
// regardless of their relative order.
func (b *Buffer) Copy(from, to int) []rune {
	lo, hi := from, to
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi > b.Size() {
		hi = b.Size()
	}
	if lo >= hi {
		return nil
	}
	out := make([]rune, 0, hi-lo)
	for i := lo; i < hi; i++ {
		c, _ := b.Get(i)
		out = append(out, c)
	}
	return out
}

// ForwardIter iterates characters forward, inclusive of the starting
// position.
type ForwardIter struct {
	buf *Buffer
	pos int
}

// Forward returns a lazy forward iterator starting at (and including) pos.
func (b *Buffer) Forward(pos int) *ForwardIter {
	return &ForwardIter{buf: b, pos: pos}
}

// Next returns the next character and advances the iterator.
func (it *ForwardIter) Next() (rune, bool) {
	c, ok := it.buf.Get(it.pos)
	if !ok {
		return 0, false
	}
	it.pos++
	return c, true
}

// IndexNext returns the (position, character) pair for the next character
// and advances the iterator.
func (it *ForwardIter) IndexNext() (int, rune, bool) {
	pos := it.pos
	c, ok := it.Next()
	return pos, c, ok
}

// BackwardIter iterates characters backward, exclusive of the starting
// position: the first character yielded is at pos-1.
type BackwardIter struct {
	buf *Buffer
	pos int
}

// Backward returns a lazy backward iterator starting just before pos.
func (b *Buffer) Backward(pos int) *BackwardIter {
	return &BackwardIter{buf: b, pos: pos}
}

// Next returns the previous character and retreats the iterator.
func (it *BackwardIter) Next() (rune, bool) {
	if it.pos <= 0 {
		return 0, false
	}
	it.pos--
	return it.buf.Get(it.pos)
}

// IndexNext returns the (position, character) pair for the previous
// character and retreats the iterator.
func (it *BackwardIter) IndexNext() (int, rune, bool) {
	if it.pos <= 0 {
		return 0, 0, false
	}
	it.pos--
	c, ok := it.buf.Get(it.pos)
	return it.pos, c, ok
}

// Read streams UTF-8 text from r into the buffer, replacing its contents.
// CR immediately before LF is stripped (canonicalized to a bare '\n').
func (b *Buffer) Read(r io.Reader) error {
	b.data = nil
	b.gapStart = 0
	b.gapEnd = 0

	br := bufio.NewReader(r)
	var pendingCR bool
	pos := 0
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			return &editorerr.ErrIO{Cause: err}
		}
		if pendingCR {
			pendingCR = false
			if c == '\n' {
				// CR before LF is dropped; the LF is inserted below
			} else {
				if _, ierr := b.InsertChar(pos, '\r'); ierr != nil {
					return ierr
				}
				pos++
			}
		}
		if c == '\r' {
			pendingCR = true
			continue
		}
		if _, ierr := b.InsertChar(pos, c); ierr != nil {
			return ierr
		}
		pos++
	}
	if pendingCR {
		if _, ierr := b.InsertChar(pos, '\r'); ierr != nil {
			return ierr
		}
	}
	return nil
}

// Write streams the buffer's contents to w, emitting "\r\n" line endings
// if crlf is true, else "\n".
func (b *Buffer) Write(w io.Writer, crlf bool) error {
	bw := bufio.NewWriter(w)
	it := b.Forward(0)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		if c == '\n' && crlf {
			if _, err := bw.WriteRune('\r'); err != nil {
				return &editorerr.ErrIO{Cause: err}
			}
		}
		if _, err := bw.WriteRune(c); err != nil {
			return &editorerr.ErrIO{Cause: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &editorerr.ErrIO{Cause: err}
	}
	return nil
}
