package buffer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/buffer"
)

func TestInsertAndGet(t *testing.T) {
	b := buffer.New()
	pos, err := b.InsertString(0, "hello")
	require.NoError(t, err)
	require.Equal(t, 5, pos)
	require.Equal(t, 5, b.Size())

	c, ok := b.Get(0)
	require.True(t, ok)
	require.Equal(t, 'h', c)

	c, ok = b.Get(4)
	require.True(t, ok)
	require.Equal(t, 'o', c)

	_, ok = b.Get(5)
	require.False(t, ok)
}

func TestCharacterCountInvariant(t *testing.T) {
	b := buffer.New()
	inserted, removed := 0, 0

	_, err := b.InsertString(0, "abcdef")
	require.NoError(t, err)
	inserted += 6

	b.Remove(2, 2)
	removed += 2

	_, err = b.InsertString(b.Size(), "xyz")
	require.NoError(t, err)
	inserted += 3

	require.Equal(t, inserted-removed, b.Size())
}

func TestPositionStableAcrossGapMoves(t *testing.T) {
	b, err := buffer.FromString("Hello world!")
	require.NoError(t, err)

	want := make([]rune, b.Size())
	for i := range want {
		c, _ := b.Get(i)
		want[i] = c
	}

	for _, q := range []int{0, 5, 12, 3, 7, 1, 0} {
		b.SetPos(q)
		for i, w := range want {
			c, ok := b.Get(i)
			require.True(t, ok)
			require.Equalf(t, w, c, "position %d after SetPos(%d)", i, q)
		}
	}
}

func TestRemoveAdjacentToGap(t *testing.T) {
	b, err := buffer.FromString("Hello world!")
	require.NoError(t, err)

	removed := b.Remove(5, 6) // " world"
	require.Equal(t, []rune(" world"), removed)
	require.Equal(t, 6, b.Size())

	var sb strings.Builder
	it := b.Forward(0)
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		sb.WriteRune(c)
	}
	require.Equal(t, "Hello!", sb.String())
}

func TestForwardBackwardIterators(t *testing.T) {
	b, err := buffer.FromString("abc")
	require.NoError(t, err)

	fwd := b.Forward(0)
	var got []rune
	for {
		c, ok := fwd.Next()
		if !ok {
			break
		}
		got = append(got, c)
	}
	require.Equal(t, []rune("abc"), got)

	bwd := b.Backward(3)
	got = nil
	for {
		c, ok := bwd.Next()
		if !ok {
			break
		}
		got = append(got, c)
	}
	require.Equal(t, []rune("cba"), got)
}

func TestFindStartAndNextLine(t *testing.T) {
	b, err := buffer.FromString("abc\ndef\nghi")
	require.NoError(t, err)

	require.Equal(t, 0, b.FindStartLine(2))
	require.Equal(t, 4, b.FindStartLine(5))
	require.Equal(t, 8, b.FindStartLine(10))

	next, reachedEnd := b.FindNextLine(0)
	require.Equal(t, 4, next)
	require.False(t, reachedEnd)

	next, reachedEnd = b.FindNextLine(8)
	require.Equal(t, b.Size(), next)
	require.True(t, reachedEnd)
}

func TestFindLineAndLineOf(t *testing.T) {
	b, err := buffer.FromString("abc\ndef\nghi")
	require.NoError(t, err)

	require.Equal(t, 0, b.FindLine(0))
	require.Equal(t, 4, b.FindLine(1))
	require.Equal(t, 8, b.FindLine(2))
	// saturates to end when n exceeds line count
	require.Equal(t, b.Size(), b.FindLine(99))

	require.Equal(t, 0, b.LineOf(0))
	require.Equal(t, 0, b.LineOf(3))
	require.Equal(t, 1, b.LineOf(4))
	require.Equal(t, 2, b.LineOf(9))
}

func TestCopyRegardlessOfOrder(t *testing.T) {
	b, err := buffer.FromString("0123456789")
	require.NoError(t, err)

	require.Equal(t, []rune("234"), b.Copy(2, 5))
	require.Equal(t, []rune("234"), b.Copy(5, 2))
}

func TestRoundTripIO(t *testing.T) {
	text := "line one\nline two\nline three"

	b := buffer.New()
	require.NoError(t, b.Read(strings.NewReader(text)))

	var out bytes.Buffer
	require.NoError(t, b.Write(&out, false))
	require.Equal(t, text, out.String())
}

func TestRoundTripIOWithCRLF(t *testing.T) {
	text := "line one\nline two"

	b := buffer.New()
	require.NoError(t, b.Read(strings.NewReader(text)))

	var out bytes.Buffer
	require.NoError(t, b.Write(&out, true))
	require.Equal(t, "line one\r\nline two", out.String())

	b2 := buffer.New()
	require.NoError(t, b2.Read(bytes.NewReader(out.Bytes())))
	var out2 bytes.Buffer
	require.NoError(t, b2.Write(&out2, false))
	require.Equal(t, text, out2.String())
}

func TestEmptyBuffer(t *testing.T) {
	b := buffer.New()
	require.Equal(t, 0, b.Size())
	_, ok := b.Get(0)
	require.False(t, ok)
}

func TestGrowthAcrossIncrement(t *testing.T) {
	b := buffer.New()
	big := strings.Repeat("x", 200*1024) // forces more than one grow step
	pos, err := b.InsertString(0, big)
	require.NoError(t, err)
	require.Equal(t, len(big), pos)
	require.Equal(t, len(big), b.Size())
	require.GreaterOrEqual(t, b.Capacity(), len(big))
}
