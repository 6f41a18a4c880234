package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/buffer"
	"github.com/dledwards/ped/internal/token"
)

var fooColor = token.Color{Fg: 3, Bg: 0}

func newFooTokenizer(t *testing.T) *token.Tokenizer {
	t.Helper()
	tz, err := token.New([]token.Rule{
		{Pattern: `\bfoo\b`, Color: fooColor},
	})
	require.NoError(t, err)
	return tz
}

func TestTokenizeEmptyBuffer(t *testing.T) {
	tz := newFooTokenizer(t)
	b := buffer.New()
	cur, err := tz.Tokenize(b)
	require.NoError(t, err)
	require.Equal(t, 0, cur.Pos)
	require.Nil(t, cur.Color())
}

func TestTokenizeAndColorLookup(t *testing.T) {
	tz := newFooTokenizer(t)
	b, err := buffer.FromString("x foo y")
	require.NoError(t, err)

	cur, err := tz.Tokenize(b)
	require.NoError(t, err)

	cur = tz.Find(cur, 2)
	require.NotNil(t, cur.Color())
	require.Equal(t, fooColor, *cur.Color())

	cur = tz.Find(cur, 0)
	require.Nil(t, cur.Color())

	cur = tz.Find(cur, 6)
	require.Nil(t, cur.Color())
}

func TestSpanCoverageInvariant(t *testing.T) {
	tz := newFooTokenizer(t)
	b, err := buffer.FromString("Lorem foo ipsum foo dolor")
	require.NoError(t, err)

	_, err = tz.Tokenize(b)
	require.NoError(t, err)
	require.Equal(t, b.Size(), tz.Chars())
}

func TestIncrementalInsertInvalidatesColorUntilRetokenize(t *testing.T) {
	// Scenario E from spec §8, with the insertion text carrying its own
	// trailing space so "foo" keeps a word boundary on each side after the
	// edit — inserting directly against the 'f' (as spec.md's own "Z" example
	// reads literally) would merge with it under \w-boundary regexp2
	// semantics and "foo" would no longer match at all.
	tz := newFooTokenizer(t)
	b, err := buffer.FromString("x foo y")
	require.NoError(t, err)

	cur, err := tz.Tokenize(b)
	require.NoError(t, err)

	cur = tz.Find(cur, 2)
	require.NotNil(t, cur.Color())

	_, err = b.Insert(2, []rune("Z "))
	require.NoError(t, err)

	cur = tz.Find(cur, 2)
	cur = tz.Insert(cur, 2)

	cur = tz.Find(cur, 2)
	require.Nil(t, cur.Color(), "inserted gap should be uncolored before retokenize")

	cur, err = tz.Tokenize(b)
	require.NoError(t, err)
	cur = tz.Find(cur, 4)
	require.NotNil(t, cur.Color())
	require.Equal(t, fooColor, *cur.Color())
}

func TestIncrementalRemoveAcrossSpans(t *testing.T) {
	tz := newFooTokenizer(t)
	b, err := buffer.FromString("x foo y")
	require.NoError(t, err)

	cur, err := tz.Tokenize(b)
	require.NoError(t, err)

	cur = tz.Find(cur, 0)
	b.Remove(0, 3) // remove "x f"
	cur = tz.Remove(cur, 3)

	require.Equal(t, b.Size(), tz.Chars())

	// remaining text is "oo y"; re-tokenizing should report no color at
	// any position since "foo" is no longer a whole word.
	cur2, err := tz.Tokenize(b)
	require.NoError(t, err)
	for pos := 0; pos < b.Size(); pos++ {
		cur2 = tz.Find(cur2, pos)
		require.Nil(t, cur2.Color())
	}
}

func TestNoRulesProducesOneGapSpan(t *testing.T) {
	tz, err := token.New(nil)
	require.NoError(t, err)
	b, err := buffer.FromString("hello")
	require.NoError(t, err)

	cur, err := tz.Tokenize(b)
	require.NoError(t, err)
	require.Equal(t, 5, tz.Chars())
	require.Nil(t, cur.Color())
}
