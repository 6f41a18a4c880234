// Package editor implements the editor kernel: cursor/line state,
// navigation, mutation with undo/redo, tokenizer-clock reconciliation,
// and rendering onto an attached window (spec §4.3).
package editor

// AlignKind selects how move_to repositions the on-screen cursor row
// relative to a new buffer position (spec §4.3 "move_to").
type AlignKind int

const (
	AlignAuto AlignKind = iota
	AlignTop
	AlignCenter
	AlignBottom
	AlignRow
)

// Align carries an AlignKind plus the target row for AlignRow.
type Align struct {
	Kind AlignKind
	Row  int
}

// Auto is "put the cursor wherever its current on-screen position
// naturally falls, scrolling only when it would otherwise go off-screen."
func Auto() Align { return Align{Kind: AlignAuto} }

// Top pins the target position to on-screen row 0.
func Top() Align { return Align{Kind: AlignTop} }

// Center pins the target position to the vertical middle row.
func Center() Align { return Align{Kind: AlignCenter} }

// Bottom pins the target position to the last on-screen row.
func Bottom() Align { return Align{Kind: AlignBottom} }

// RowAlign pins the target position to on-screen row r, clamped to the
// visible region.
func RowAlign(r int) Align { return Align{Kind: AlignRow, Row: r} }

// Point is an on-screen (row, col) location, 0-based.
type Point struct {
	Row int
	Col int
}

// Mark is the selection anchor: at most one exists per editor. A soft
// mark clears itself on any non-selection operation; a hard mark persists
// until explicitly cleared (spec §3).
type Mark struct {
	Pos  int
	Soft bool
}

// ChangeKind discriminates the undo-log's Change record variants (spec §3
// "Change record").
type ChangeKind int

const (
	ChangeInsert ChangeKind = iota
	ChangeRemoveBefore
	ChangeRemoveAfter
	ChangeRemoveSelectionBefore
	ChangeRemoveSelectionAfter
)

// Change is one undoable edit: its kind, the position it applies at, the
// text involved, and (for selection variants) whether the removed mark
// was soft.
type Change struct {
	Kind ChangeKind
	Pos  int
	Text []rune
	Soft bool
}
