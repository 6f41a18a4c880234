package workspace_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dledwards/ped/internal/workspace"
)

func TestNewWorkspaceSingleView(t *testing.T) {
	w := workspace.New(25, 80)
	require.Len(t, w.Views(), 1)
	v := w.TopView()
	require.Equal(t, 24, v.Rows) // 25 - 1 alert row
	require.Equal(t, 0, v.Origin)
}

func TestAddViewSplitsEvenly(t *testing.T) {
	w := workspace.New(25, 80)
	_, ok := w.AddView(workspace.AtBottom())
	require.True(t, ok)
	require.Len(t, w.Views(), 2)

	top, bottom := w.TopView(), w.BottomView()
	require.Equal(t, 24, top.Rows+bottom.Rows)
	require.Equal(t, 0, top.Origin)
	require.Equal(t, top.Rows, bottom.Origin)
}

func TestAddViewRemainderGoesToTopViews(t *testing.T) {
	// distributable = 10, 3 views -> 4,3,3: the single remainder row
	// goes to the top view.
	w := workspace.New(11, 80)
	_, ok := w.AddView(workspace.AtBottom())
	require.True(t, ok)
	_, ok = w.AddView(workspace.AtBottom())
	require.True(t, ok)

	views := w.Views()
	require.Len(t, views, 3)
	total := 0
	var rows []int
	for _, v := range views {
		total += v.Rows
		rows = append(rows, v.Rows)
	}
	require.Equal(t, 10, total)
	require.Equal(t, []int{4, 3, 3}, rows)
}

func TestAddViewRefusedBelowMinRows(t *testing.T) {
	w := workspace.New(7, 80) // distributable = 6
	_, ok := w.AddView(workspace.AtBottom())
	require.True(t, ok) // 3,3 is fine

	_, ok = w.AddView(workspace.AtBottom())
	require.False(t, ok) // would be 2,2,2 < MinRows
	require.Len(t, w.Views(), 2)
}

func TestRemoveViewRefusedWhenLastOne(t *testing.T) {
	w := workspace.New(25, 80)
	id := w.TopView().ID
	_, ok := w.RemoveView(id)
	require.False(t, ok)
	require.Len(t, w.Views(), 1)
}

func TestRemoveViewRedistributesAndReturnsNextID(t *testing.T) {
	w := workspace.New(25, 80)
	topID := w.TopView().ID
	bottomView, _ := w.AddView(workspace.AtBottom())

	nextID, ok := w.RemoveView(topID)
	require.True(t, ok)
	require.Equal(t, bottomView.ID, nextID)
	require.Len(t, w.Views(), 1)
	require.Equal(t, 24, w.Views()[0].Rows)
}

func TestAboveBelowWrapAround(t *testing.T) {
	w := workspace.New(25, 80)
	topID := w.TopView().ID
	bottom, _ := w.AddView(workspace.AtBottom())

	require.Equal(t, bottom.ID, w.AboveView(topID).ID)
	require.Equal(t, topID, w.BelowView(bottom.ID).ID)
}

func TestAlertLine(t *testing.T) {
	w := workspace.New(25, 80)
	require.Equal(t, "", w.Alert())
	w.SetAlert("undefined key")
	require.Equal(t, "undefined key", w.Alert())
	w.SetAlert("")
	require.Equal(t, "", w.Alert())
}

func TestAddViewAboveAndBelowID(t *testing.T) {
	w := workspace.New(37, 80) // distributable 36, plenty of room
	first := w.TopView().ID

	second, ok := w.AddView(workspace.BelowView(first))
	require.True(t, ok)

	third, ok := w.AddView(workspace.AboveView(second.ID))
	require.True(t, ok)

	views := w.Views()
	require.Equal(t, first, views[0].ID)
	require.Equal(t, third.ID, views[1].ID)
	require.Equal(t, second.ID, views[2].ID)
}
