// Package window implements the editor-facing Window: a canvas Grid plus a
// one-row Banner, and the zero-size "zombie" sentinel an editor detaches to
// (spec §4.5, §6 "Window attachment").
package window

import "github.com/dledwards/ped/internal/grid"

// Window owns a back canvas and a status banner. The editor kernel treats
// it as a weak attachment (spec §3 ownership): a Workspace/View recreates
// Windows on resize, and the editor simply re-attaches.
type Window struct {
	canvas  *grid.Grid
	banner  *Banner
	zombie  bool
}

// New returns a Window whose total footprint is rows x cols: one row is
// reserved for the banner (spec §4.5 "a Window owns a back Canvas and a
// Banner"), so the canvas itself gets rows-1, following the teacher-absent
// but original_source/src/window.rs-grounded Window::new(size), which
// subtracts one row from size before sizing its canvas.
func New(rows, cols int) *Window {
	canvasRows := rows - 1
	if canvasRows < 0 {
		canvasRows = 0
	}
	return &Window{
		canvas: grid.New(canvasRows, cols),
		banner: NewBanner(),
	}
}

// Zombie constructs a zero-size Window used as a detach target: its
// canvas/banner operations are all safe no-ops since the grid has no
// cells.
func Zombie() *Window {
	return &Window{
		canvas: grid.New(0, 0),
		banner: NewBanner(),
		zombie: true,
	}
}

// Canvas returns the window's back canvas.
func (w *Window) Canvas() *grid.Grid { return w.canvas }

// Banner returns the window's status banner.
func (w *Window) Banner() *Banner { return w.banner }

// IsZombie reports whether this is a detached placeholder window.
func (w *Window) IsZombie() bool { return w.zombie }

// Size returns the window's usable text-canvas rows and columns — one less
// row than the window's total footprint passed to New/Resize, since that
// row belongs to the banner.
func (w *Window) Size() (rows, cols int) {
	return w.canvas.Rows, w.canvas.Cols
}

// Resize replaces the window's canvas with a freshly sized one (rows is the
// window's total footprint, banner row included, matching New), preserving
// no content: a resized window is always fully redrawn by its editor.
func (w *Window) Resize(rows, cols int) {
	if w.zombie {
		return
	}
	canvasRows := rows - 1
	if canvasRows < 0 {
		canvasRows = 0
	}
	w.canvas = grid.New(canvasRows, cols)
}
