package keyevent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/keyevent"
)

func TestDecodePlainChar(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader("a"))
	ev, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.Char, ev.Key)
	require.Equal(t, 'a', ev.Rune)
}

func TestDecodeCtrlChar(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader(string([]byte{0x03})))
	ev, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.Char, ev.Key)
	require.Equal(t, 'c', ev.Rune)
	require.Equal(t, keyevent.Ctrl, ev.Mods&keyevent.Ctrl)
}

func TestDecodeBackspace(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader(string([]byte{0x7f})))
	ev, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.Control, ev.Key)
	require.Equal(t, rune(0x7f), ev.Rune)
}

func TestDecodeArrowKeys(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader("\x1b[A\x1b[B\x1b[C\x1b[D"))
	for _, want := range []keyevent.Key{keyevent.Up, keyevent.Down, keyevent.Right, keyevent.Left} {
		ev, err := d.Next()
		require.NoError(t, err)
		require.Equal(t, want, ev.Key)
	}
}

func TestDecodeHomeEndTilde(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader("\x1b[1~\x1b[4~"))
	ev, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.Home, ev.Key)

	ev, err = d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.End, ev.Key)
}

func TestDecodeDeleteTilde(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader("\x1b[3~"))
	ev, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.Control, ev.Key)
	require.Equal(t, rune(0x7f), ev.Rune)
}

func TestDecodeSS3Function(t *testing.T) {
	d := keyevent.NewDecoder(strings.NewReader("\x1bOP"))
	ev, err := d.Next()
	require.NoError(t, err)
	require.Equal(t, keyevent.Function, ev.Key)
	require.Equal(t, 1, ev.FN)
}

func TestParseKeyNameKnownAndChar(t *testing.T) {
	ev, err := keyevent.ParseKeyName("up")
	require.NoError(t, err)
	require.Equal(t, keyevent.Up, ev.Key)

	ev, err = keyevent.ParseKeyName("x")
	require.NoError(t, err)
	require.Equal(t, keyevent.Char, ev.Key)
	require.Equal(t, 'x', ev.Rune)
}

func TestParseKeyNameInvalid(t *testing.T) {
	_, err := keyevent.ParseKeyName("")
	require.Error(t, err)
}
