package grid_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/grid"
)

func TestNewGridIsBlank(t *testing.T) {
	g := grid.New(3, 4)
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			require.Equal(t, grid.Blank, g.CellAt(r, c))
		}
	}
}

func TestSetAndGetCell(t *testing.T) {
	g := grid.New(2, 2)
	cell := grid.Cell{Rune: 'x', Fg: 1, Bg: 2}
	g.SetCell(1, 1, cell)
	require.Equal(t, cell, g.CellAt(1, 1))
	require.Equal(t, grid.Blank, g.CellAt(0, 0))
}

func TestReconcileIdenticalGridsProducesNoUpdates(t *testing.T) {
	a := grid.New(5, 5)
	b := grid.New(5, 5)
	updates := a.Reconcile(b)
	require.Empty(t, updates)
}

func TestReconcileReportsOnlyChangedCells(t *testing.T) {
	a := grid.New(2, 3)
	b := grid.New(2, 3)
	b.SetCell(0, 1, grid.Cell{Rune: 'a'})
	b.SetCell(1, 2, grid.Cell{Rune: 'b'})

	updates := a.Reconcile(b)
	require.Len(t, updates, 2)
	require.Equal(t, 'a', updates[0].Cell.Rune)
	require.Equal(t, grid.Point{Row: 0, Col: 1}, updates[0].Point)
	require.Equal(t, 'b', updates[1].Cell.Rune)
	require.Equal(t, grid.Point{Row: 1, Col: 2}, updates[1].Point)

	// After reconcile, a should equal b, and a second reconcile is a no-op.
	require.Empty(t, a.Reconcile(b))
}

func TestReconcileDifferentSizeReplacesWholeGrid(t *testing.T) {
	a := grid.New(2, 2)
	b := grid.New(3, 3)
	b.SetCell(2, 2, grid.Cell{Rune: 'z'})

	updates := a.Reconcile(b)
	require.Len(t, updates, 9)
	require.Equal(t, 3, a.Rows)
	require.Equal(t, 3, a.Cols)
	require.Equal(t, grid.Cell{Rune: 'z'}, a.CellAt(2, 2))
}

func TestClearRows(t *testing.T) {
	g := grid.New(3, 2)
	for c := 0; c < 2; c++ {
		g.SetCell(1, c, grid.Cell{Rune: 'x'})
	}
	g.ClearRows(1, 2)
	require.Equal(t, grid.Blank, g.CellAt(1, 0))
	require.Equal(t, grid.Blank, g.CellAt(1, 1))
}

func TestMoveRowsDownShiftsContent(t *testing.T) {
	g := grid.New(4, 1)
	g.SetCell(0, 0, grid.Cell{Rune: 'a'})
	g.SetCell(1, 0, grid.Cell{Rune: 'b'})

	g.MoveRows(0, 2, 2)
	require.Equal(t, 'a', g.CellAt(2, 0).Rune)
	require.Equal(t, 'b', g.CellAt(3, 0).Rune)
}

func TestMoveRowsUpShiftsContent(t *testing.T) {
	g := grid.New(4, 1)
	g.SetCell(2, 0, grid.Cell{Rune: 'a'})
	g.SetCell(3, 0, grid.Cell{Rune: 'b'})

	g.MoveRows(2, 0, 2)
	require.Equal(t, 'a', g.CellAt(0, 0).Rune)
	require.Equal(t, 'b', g.CellAt(1, 0).Rune)
}

func TestResizePreservesOverlap(t *testing.T) {
	g := grid.New(2, 2)
	g.SetCell(0, 0, grid.Cell{Rune: 'a'})
	g.SetCell(1, 1, grid.Cell{Rune: 'b'})

	out := g.Resize(3, 3)
	require.Equal(t, 'a', out.CellAt(0, 0).Rune)
	require.Equal(t, 'b', out.CellAt(1, 1).Rune)
	require.Equal(t, grid.Blank, out.CellAt(2, 2))
}
