// Package token implements the incremental tokenizer: a span list over a
// buffer with O(1) cursor-based color lookup and incremental adjustment
// under insertions and removals (spec §4.2).
//
// The alternation regex is built and matched with dlclark/regexp2 rather
// than the standard library regexp package, following the teacher's own
// reach for regexp2 as the engine behind its Chroma-based highlighter
// (go.mod's indirect dependency on it), and because regexp2 reports match
// offsets in rune units, which line up directly with the character
// positions this package tracks.
package token

import (
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/dledwards/ped/internal/editorerr"
)

// span is a (token_id, length) pair; id 0 denotes an uncolored gap.
type span struct {
	id  int
	len int
}

// Tokenizer holds the compiled alternation for a Syntax and the current
// span list produced against some buffer.
type Tokenizer struct {
	rules []Rule
	re    *regexp2.Regexp
	chars int
	spans []span
}

// New compiles rules into a single alternation regex with named groups
// "_1".."_k" and returns an (as yet untokenized) Tokenizer.
func New(rules []Rule) (*Tokenizer, error) {
	t := &Tokenizer{rules: rules, spans: []span{{id: 0, len: 0}}}
	if len(rules) == 0 {
		return t, nil
	}
	pattern := ""
	for i, r := range rules {
		if i > 0 {
			pattern += "|"
		}
		pattern += fmt.Sprintf("(?<_%d>%s)", i+1, r.Pattern)
	}
	re, err := regexp2.Compile(pattern, regexp2.Multiline)
	if err != nil {
		return nil, &editorerr.ErrInvalidRegex{Pattern: pattern, Cause: err}
	}
	t.re = re
	return t, nil
}

// Rules returns the ordered rule list the tokenizer was built with.
func (t *Tokenizer) Rules() []Rule { return t.rules }

// Chars returns the character count the current span list covers.
func (t *Tokenizer) Chars() int { return t.chars }

// Cursor is (position, span_index, span_start_pos, span_end_pos); Color()
// resolves to nil for a gap span.
type Cursor struct {
	tok   *Tokenizer
	Pos   int
	Index int
	Start int
	End   int
}

// Color returns the color of the span the cursor sits in, or nil if it is
// an uncolored gap.
func (c Cursor) Color() *Color {
	return c.tok.colorOf(c.Index)
}

func (t *Tokenizer) colorOf(index int) *Color {
	id := t.spans[index].id
	if id == 0 {
		return nil
	}
	col := t.rules[id-1].Color
	return &col
}

// runeSource is satisfied by the subset of *buffer.Buffer this package
// depends on, avoiding an import cycle with internal/buffer while keeping
// the tokenizer generic over any character-addressable source.
type runeSource interface {
	Size() int
	Copy(from, to int) []rune
}

// Tokenize runs the alternation regex over the entire buffer and rebuilds
// the span list from scratch, per spec §4.2's initial-tokenization
// algorithm. It returns a cursor positioned at 0.
func (t *Tokenizer) Tokenize(buf runeSource) (Cursor, error) {
	t.chars = buf.Size()
	t.spans = t.spans[:0]

	if t.chars == 0 {
		t.spans = append(t.spans, span{id: 0, len: 0})
		return t.Find(Cursor{tok: t, Index: 0, Start: 0, End: 0}, 0), nil
	}

	if t.re == nil {
		t.spans = append(t.spans, span{id: 0, len: t.chars})
		return t.Find(Cursor{tok: t, Index: 0, Start: 0, End: t.chars}, 0), nil
	}

	text := string(buf.Copy(0, t.chars))
	pos := 0

	m, err := t.re.FindStringMatch(text)
	if err != nil {
		return Cursor{}, &editorerr.ErrInvalidRegex{Pattern: "<compiled>", Cause: err}
	}
	for m != nil {
		ruleIdx, start, end, ok := t.lookup(m)
		if !ok {
			m, err = t.re.FindNextMatch(m)
			if err != nil {
				return Cursor{}, &editorerr.ErrInvalidRegex{Cause: err}
			}
			continue
		}
		if start > pos {
			t.spans = append(t.spans, span{id: 0, len: start - pos})
		}
		t.spans = append(t.spans, span{id: ruleIdx + 1, len: end - start})
		pos = end

		m, err = t.re.FindNextMatch(m)
		if err != nil {
			return Cursor{}, &editorerr.ErrInvalidRegex{Cause: err}
		}
	}
	if pos < t.chars {
		t.spans = append(t.spans, span{id: 0, len: t.chars - pos})
	}
	if len(t.spans) == 0 {
		t.spans = append(t.spans, span{id: 0, len: 0})
	}
	return t.Find(Cursor{tok: t, Index: 0, Start: 0, End: t.spans[0].len}, 0), nil
}

// lookup resolves which named group ("_1".."_k") matched, returning the
// 0-based rule index and the match's [start, end) character range.
func (t *Tokenizer) lookup(m *regexp2.Match) (ruleIdx, start, end int, ok bool) {
	for i := range t.rules {
		name := fmt.Sprintf("_%d", i+1)
		g := m.GroupByName(name)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		cap := g.Captures[0]
		return i, cap.Index, cap.Index + cap.Length, true
	}
	return 0, 0, 0, false
}

// Find repositions cursor c to pos: O(1) if pos is inside c's span, else a
// linear walk forward or backward over spans.
func (t *Tokenizer) Find(c Cursor, pos int) Cursor {
	if pos > t.chars {
		pos = t.chars
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= c.Start && pos < c.End {
		c.Pos = pos
		return c
	}
	if pos == c.End && pos == t.chars {
		c.Pos = pos
		return c
	}
	if pos < c.Start {
		c = t.findBackward(c, pos)
	} else {
		c = t.findForward(c, pos)
	}
	c.Pos = pos
	return c
}

func (t *Tokenizer) findForward(c Cursor, pos int) Cursor {
	for pos >= c.End && c.Index+1 < len(t.spans) {
		c.Index++
		c.Start = c.End
		c.End = c.Start + t.spans[c.Index].len
	}
	return c
}

func (t *Tokenizer) findBackward(c Cursor, pos int) Cursor {
	for pos < c.Start && c.Index > 0 {
		c.Index--
		c.End = c.Start
		c.Start = c.End - t.spans[c.Index].len
	}
	return c
}

// Forward repositions the cursor n characters ahead.
func (t *Tokenizer) Forward(c Cursor, n int) Cursor {
	return t.Find(c, c.Pos+n)
}

// Backward repositions the cursor n characters behind.
func (t *Tokenizer) Backward(c Cursor, n int) Cursor {
	pos := c.Pos - n
	if pos < 0 {
		pos = 0
	}
	return t.Find(c, pos)
}
