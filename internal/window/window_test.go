package window_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/grid"
	"github.com/dledwards/ped/internal/window"
)

func TestNewWindowSize(t *testing.T) {
	w := window.New(10, 20)
	rows, cols := w.Size()
	require.Equal(t, 9, rows) // one row reserved for the banner
	require.Equal(t, 20, cols)
	require.False(t, w.IsZombie())
}

func TestZombieWindow(t *testing.T) {
	w := window.Zombie()
	require.True(t, w.IsZombie())
	rows, cols := w.Size()
	require.Equal(t, 0, rows)
	require.Equal(t, 0, cols)
}

func TestBannerBlankBelowMinWidth(t *testing.T) {
	b := window.NewBanner()
	b.SetSource("main.go")
	cells := b.Draw(10)
	for _, c := range cells {
		require.Equal(t, ' ', c.Rune)
	}
}

func TestBannerDrawsTitleAndLocation(t *testing.T) {
	b := window.NewBanner()
	b.SetDirty(true)
	b.SetSource("main.go")
	b.SetSyntax("go")
	b.SetLocation("12:4")

	cells := b.Draw(40)
	s := cellsToString(cells)
	require.Contains(t, s, "*")
	require.Contains(t, s, "main.go [go]")
	require.Contains(t, s, "12:4")
}

func TestBannerDropsLocationFirstWhenTight(t *testing.T) {
	b := window.NewBanner()
	b.SetSource("a-fairly-long-file-name.go")
	b.SetLocation("100:50")

	cells := b.Draw(20)
	s := cellsToString(cells)
	require.NotContains(t, s, "100:50")
}

func cellsToString(cells []grid.Cell) string {
	r := make([]rune, len(cells))
	for i, c := range cells {
		r[i] = c.Rune
	}
	return string(r)
}
