// Package workspace implements the vertical view tiler: N views stacked
// in a rectangular terminal region with one row reserved for a shared
// alert line (spec §4.6).
package workspace

import (
	"github.com/dledwards/ped/internal/assertx"
	"github.com/dledwards/ped/internal/numeric"
	"github.com/dledwards/ped/internal/window"
)

// MinRows is the minimum row count a view may be tiled down to; an
// AddView that would produce a smaller share is refused (spec §4.6).
const MinRows = 3

// PlaceKind enumerates where a new view is inserted relative to the
// existing stack.
type PlaceKind int

const (
	Top PlaceKind = iota
	Bottom
	Above
	Below
)

// Placement names where a new view goes; ID is only meaningful for
// Above/Below.
type Placement struct {
	Kind PlaceKind
	ID   int
}

// AtTop places a new view above every existing view.
func AtTop() Placement { return Placement{Kind: Top} }

// AtBottom places a new view below every existing view.
func AtBottom() Placement { return Placement{Kind: Bottom} }

// AboveView places a new view immediately above the view with the given id.
func AboveView(id int) Placement { return Placement{Kind: Above, ID: id} }

// BelowView places a new view immediately below the view with the given id.
func BelowView(id int) Placement { return Placement{Kind: Below, ID: id} }

// View is one tiled region: a stable id, its current origin/size, and the
// Window it owns (spec §3: "a View exclusively owns a Window").
type View struct {
	ID     int
	Origin int
	Rows   int
	Cols   int
	Win    *window.Window
}

// Workspace tiles its views vertically across rows x cols, reserving the
// bottom row for a shared alert line, following the teacher's
// layout_engine.go flex-share formula (share = available * weight /
// totalWeight, remainder to earliest children) specialized to equal
// weights and a single axis.
type Workspace struct {
	rows   int
	cols   int
	views  []*View
	nextID int
	alert  string
}

// New returns a Workspace with a single view filling the available rows.
func New(rows, cols int) *Workspace {
	w := &Workspace{rows: rows, cols: cols}
	id := w.allocID()
	v := &View{ID: id, Origin: 0, Rows: w.distributable(), Cols: cols}
	v.Win = window.New(v.Rows, cols)
	w.views = append(w.views, v)
	return w
}

func (w *Workspace) allocID() int {
	id := w.nextID
	w.nextID++
	return id
}

func (w *Workspace) distributable() int {
	return numeric.Max(w.rows-1, 0)
}

// Views returns the views top-to-bottom.
func (w *Workspace) Views() []*View { return w.views }

// SetAlert replaces the text shown on the shared alert line (the row
// reserved by distributable()); an empty string clears it.
func (w *Workspace) SetAlert(text string) { w.alert = text }

// Alert returns the current alert line text.
func (w *Workspace) Alert() string { return w.alert }

// Rows and Cols report the workspace's total terminal area.
func (w *Workspace) Rows() int { return w.rows }
func (w *Workspace) Cols() int { return w.cols }

func (w *Workspace) indexOf(id int) int {
	for i, v := range w.views {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// AddView inserts a new view per place, refusing (returning false) when
// the resulting per-view share would fall below MinRows.
func (w *Workspace) AddView(place Placement) (*View, bool) {
	n := len(w.views) + 1
	share := w.distributable() / n
	if share < MinRows {
		return nil, false
	}

	id := w.allocID()
	nv := &View{ID: id, Cols: w.cols}

	insertAt := len(w.views)
	switch place.Kind {
	case Top:
		insertAt = 0
	case Bottom:
		insertAt = len(w.views)
	case Above:
		if i := w.indexOf(place.ID); i >= 0 {
			insertAt = i
		}
	case Below:
		if i := w.indexOf(place.ID); i >= 0 {
			insertAt = i + 1
		}
	}

	views := make([]*View, 0, n)
	views = append(views, w.views[:insertAt]...)
	views = append(views, nv)
	views = append(views, w.views[insertAt:]...)
	w.views = views

	w.retile()
	return nv, true
}

// RemoveView drops the view with the given id, refusing when it is the
// only remaining view, and returns the id of the view that takes its
// place in focus order (the next view, wrapping to the first).
func (w *Workspace) RemoveView(id int) (nextID int, ok bool) {
	if len(w.views) <= 1 {
		return 0, false
	}
	i := w.indexOf(id)
	if i < 0 {
		return 0, false
	}
	w.views = append(w.views[:i], w.views[i+1:]...)
	w.retile()

	if i >= len(w.views) {
		i = 0
	}
	return w.views[i].ID, true
}

// retile recomputes every view's origin/size after the stack changes,
// distributing the remainder one extra row at a time to the top-most
// views, and recreates each view's Window at its new size (spec §4.6:
// "Reconstruct all views at new origin/size; recreate their Windows").
func (w *Workspace) retile() {
	n := len(w.views)
	assertx.Assertf(n > 0, "workspace: retile called with zero views")

	total := w.distributable()
	share := total / n
	remainder := total % n

	origin := 0
	for i, v := range w.views {
		rows := share
		if i < remainder {
			rows++
		}
		v.Origin = origin
		v.Rows = rows
		v.Cols = w.cols
		v.Win = window.New(rows, w.cols)
		origin += rows
	}
}

// Resize changes the workspace's total terminal area and retiles.
func (w *Workspace) Resize(rows, cols int) {
	w.rows, w.cols = rows, cols
	w.retile()
}

// TopView returns the topmost view.
func (w *Workspace) TopView() *View { return w.views[0] }

// BottomView returns the bottommost view.
func (w *Workspace) BottomView() *View { return w.views[len(w.views)-1] }

// AboveView returns the view immediately above id, wrapping to the
// bottom-most view.
func (w *Workspace) AboveView(id int) *View {
	i := w.indexOf(id)
	if i < 0 {
		return nil
	}
	if i == 0 {
		return w.views[len(w.views)-1]
	}
	return w.views[i-1]
}

// BelowView returns the view immediately below id, wrapping to the
// top-most view.
func (w *Workspace) BelowView(id int) *View {
	i := w.indexOf(id)
	if i < 0 {
		return nil
	}
	if i == len(w.views)-1 {
		return w.views[0]
	}
	return w.views[i+1]
}
