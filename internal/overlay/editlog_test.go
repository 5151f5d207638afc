package overlay

import (
	"fmt"
	"testing"

	"github.com/automate-controls/basstudio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectWithTokens(n int) *domain.Project {
	p := domain.NewProject()
	for i := 0; i < n; i++ {
		p.OverlayNodes = append(p.OverlayNodes, domain.OverlayNode{
			ID: uint64(100 + i), ObjectID: 1, X: float64(i), Y: float64(i),
		})
	}
	return p
}

func TestEditLog_UndoRedoRoundTrip(t *testing.T) {
	p := projectWithTokens(1)
	l := NewEditLog()

	l.PushSnapshot(p)
	p.OverlayNodes = append(p.OverlayNodes, domain.OverlayNode{ID: 200, ObjectID: 1})
	require.Len(t, p.OverlayNodes, 2)

	require.True(t, l.Undo(p))
	assert.Len(t, p.OverlayNodes, 1)

	require.True(t, l.Redo(p))
	assert.Len(t, p.OverlayNodes, 2)
}

func TestEditLog_EmptyStacksReturnFalse(t *testing.T) {
	p := projectWithTokens(0)
	l := NewEditLog()
	assert.False(t, l.Undo(p))
	assert.False(t, l.Redo(p))
}

func TestEditLog_PushClearsRedo(t *testing.T) {
	p := projectWithTokens(1)
	l := NewEditLog()

	l.PushSnapshot(p)
	p.OverlayNodes = nil
	require.True(t, l.Undo(p))
	require.Equal(t, 1, l.RedoDepth())

	l.PushSnapshot(p)
	assert.Zero(t, l.RedoDepth())
	assert.False(t, l.Redo(p))
}

func TestEditLog_HistoryCapEvictsOldest(t *testing.T) {
	p := projectWithTokens(0)
	l := NewEditLog()

	for i := 0; i < HistoryLimit+10; i++ {
		l.PushSnapshot(p)
		p.OverlayNodes = append(p.OverlayNodes, domain.OverlayNode{ID: uint64(i), ObjectID: 1})
	}
	assert.Equal(t, HistoryLimit, l.UndoDepth())

	// Unwinding everything lands on the oldest surviving snapshot, which
	// already carries the evicted edits.
	for l.Undo(p) {
	}
	assert.Len(t, p.OverlayNodes, 10)
}

func TestEditLog_SnapshotsAreIsolatedCopies(t *testing.T) {
	p := projectWithTokens(1)
	l := NewEditLog()

	l.PushSnapshot(p)
	p.OverlayNodes[0].X = 999 // in-place edit must not leak into history

	require.True(t, l.Undo(p))
	assert.Equal(t, 0.0, p.OverlayNodes[0].X)
}

func TestEditLog_RouteGesture(t *testing.T) {
	p := projectWithTokens(0)
	l := NewEditLog()

	assert.False(t, l.CompleteRoute(p, [2]float64{5, 5}))

	l.BeginRoute([2]float64{1, 2})
	require.NotNil(t, l.PendingRoute())
	require.True(t, l.CompleteRoute(p, [2]float64{3, 4}))

	require.Len(t, p.OverlayLines, 1)
	assert.Equal(t, [2]float64{1, 2}, p.OverlayLines[0].From)
	assert.Equal(t, [2]float64{3, 4}, p.OverlayLines[0].To)
	assert.Nil(t, l.PendingRoute())

	// The completed route is one undoable step.
	require.True(t, l.Undo(p))
	assert.Empty(t, p.OverlayLines)
}

func TestEditLog_UndoCancelsPendingRoute(t *testing.T) {
	p := projectWithTokens(0)
	l := NewEditLog()

	l.PushSnapshot(p)
	l.BeginRoute([2]float64{0, 0})
	require.True(t, l.Undo(p))
	assert.Nil(t, l.PendingRoute())

	l.BeginRoute([2]float64{0, 0})
	require.True(t, l.Redo(p))
	assert.Nil(t, l.PendingRoute())
}

func TestEditLog_Clear(t *testing.T) {
	p := projectWithTokens(0)
	l := NewEditLog()
	for i := 0; i < 3; i++ {
		l.PushSnapshot(p)
	}
	l.BeginRoute([2]float64{1, 1})
	l.Clear()

	assert.Zero(t, l.UndoDepth())
	assert.Zero(t, l.RedoDepth())
	assert.Nil(t, l.PendingRoute())
}

func TestEditLog_DepthsTrackOperations(t *testing.T) {
	p := projectWithTokens(0)
	l := NewEditLog()
	for i := 1; i <= 5; i++ {
		l.PushSnapshot(p)
		require.Equal(t, i, l.UndoDepth(), fmt.Sprintf("after push %d", i))
	}
	require.True(t, l.Undo(p))
	require.True(t, l.Undo(p))
	assert.Equal(t, 3, l.UndoDepth())
	assert.Equal(t, 2, l.RedoDepth())
}
