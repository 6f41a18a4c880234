package editor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/config"
	"github.com/dledwards/ped/internal/editor"
	"github.com/dledwards/ped/internal/source"
	"github.com/dledwards/ped/internal/window"
)

func newEditor(t *testing.T, rows, cols int, text string) *editor.Editor {
	t.Helper()
	cfg := config.Default()
	e, err := editor.New(cfg, nil, source.NewEphemeral("scratch"), "plain")
	require.NoError(t, err)
	win := window.New(rows, cols)
	e.Attach(win)
	if text != "" {
		require.NoError(t, e.Load(strings.NewReader(text)))
		e.Attach(win)
	}
	return e
}

func TestInsertAdvancesCursorAndMarksDirty(t *testing.T) {
	e := newEditor(t, 10, 40, "")
	require.NoError(t, e.InsertString("hello"))
	require.Equal(t, 5, e.Pos())
	require.True(t, e.Dirty())
	require.Equal(t, []rune("hello"), e.Buffer().Copy(0, 5))
}

func TestUndoRedoInsertIsExactInverse(t *testing.T) {
	e := newEditor(t, 10, 40, "")
	require.NoError(t, e.InsertString("abc"))
	before := e.Buffer().Copy(0, e.Buffer().Size())

	ok := e.Undo()
	require.True(t, ok)
	require.Equal(t, 0, e.Buffer().Size())

	ok = e.Redo()
	require.True(t, ok)
	require.Equal(t, before, e.Buffer().Copy(0, e.Buffer().Size()))
}

func TestUndoCoalescesSequentialTyping(t *testing.T) {
	e := newEditor(t, 10, 40, "")
	require.NoError(t, e.InsertChar('a'))
	require.NoError(t, e.InsertChar('b'))
	require.NoError(t, e.InsertChar('c'))

	ok := e.Undo()
	require.True(t, ok)
	// Coalesced single-character inserts collapse to one undo step.
	require.Equal(t, 0, e.Buffer().Size())
}

func TestRemoveBeforeIsBackspace(t *testing.T) {
	e := newEditor(t, 10, 40, "abc")
	e.MoveEnd()
	e.RemoveBefore()
	require.Equal(t, []rune("ab"), e.Buffer().Copy(0, e.Buffer().Size()))
}

func TestRemoveAcrossNewlineJoinsLines(t *testing.T) {
	e := newEditor(t, 10, 40, "ab\ncd")
	// position cursor right after '\n', at start of second line
	e.MoveLine(1, editor.Top())
	e.RemoveBefore()
	require.Equal(t, []rune("abcd"), e.Buffer().Copy(0, e.Buffer().Size()))
}

func TestMoveForwardWordLandsOnTrailingWhitespace(t *testing.T) {
	e := newEditor(t, 10, 40, "foo   bar baz")
	e.MoveForwardWord()
	require.Equal(t, 3, e.Pos()) // the whitespace run right after "foo"
}

func TestMoveForwardWordSkipsLeadingWhitespaceThenWord(t *testing.T) {
	e := newEditor(t, 10, 40, "  foo bar  baz")
	e.MoveForwardWord()
	require.Equal(t, 5, e.Pos()) // spec.md §8 Scenario D's first forward move
}

func TestMoveBackwardWord(t *testing.T) {
	e := newEditor(t, 10, 40, "foo   bar baz")
	e.MoveTo(13, editor.Auto())
	e.MoveBackwardWord()
	require.Equal(t, 10, e.Pos()) // start of "baz"
}

func TestScrollPreservesCursorPositionWhenStillVisible(t *testing.T) {
	lines := strings.Repeat("x\n", 50)
	e := newEditor(t, 10, 40, lines)
	e.MoveLine(5, editor.Auto())
	pos := e.Pos()
	e.ScrollDown(1)
	e.ScrollUp(1)
	require.Equal(t, pos, e.Pos())
}

func TestSelectionMarkAndCopy(t *testing.T) {
	e := newEditor(t, 10, 40, "hello world")
	e.SetHardMark()
	e.MoveTo(5, editor.Auto())
	require.Equal(t, []rune("hello"), e.CopyMark())
}

func TestCaptureRestore(t *testing.T) {
	e := newEditor(t, 10, 40, "hello world")
	e.MoveTo(3, editor.Auto())
	cap := e.Capture()
	e.MoveTo(8, editor.Auto())
	require.Equal(t, 8, e.Pos())
	e.Restore(cap)
	require.Equal(t, 3, e.Pos())
}

func TestRenderIsIdempotentWhenNothingChanges(t *testing.T) {
	e := newEditor(t, 10, 40, "hello\nworld\n")
	win := window.New(10, 40)
	e.Attach(win)
	e.Render()
	before := append(win.Canvas().Cells[:0:0], win.Canvas().Cells...)
	e.Render()
	after := win.Canvas().Cells
	require.Equal(t, before, after)
}

func TestTabWidthConfigDoesNotPanicRender(t *testing.T) {
	e := newEditor(t, 5, 20, "a\tb\tc\n")
	require.NotPanics(t, func() { e.Render() })
}

func TestInsertAcrossWrapBoundary(t *testing.T) {
	e := newEditor(t, 10, 5, "")
	require.NoError(t, e.InsertString("abcdefgh"))
	require.Equal(t, 8, e.Pos())
}
