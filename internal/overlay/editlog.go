// Package overlay manages the drawing-overlay state: placed tokens, routed
// lines, and a bounded undo/redo history scoped to overlay edits only. The
// object tree carries no undo history; the two are deliberately decoupled.
package overlay

import "github.com/automate-controls/basstudio/internal/domain"

// HistoryLimit caps the undo stack; the oldest snapshot is evicted first.
const HistoryLimit = 50

// Snapshot is one captured overlay state: token placements plus routed
// lines, deep-copied so later edits cannot reach back into history.
type Snapshot struct {
	Nodes []domain.OverlayNode
	Lines []domain.OverlayLine
}

func capture(p *domain.Project) Snapshot {
	s := Snapshot{
		Nodes: make([]domain.OverlayNode, len(p.OverlayNodes)),
		Lines: make([]domain.OverlayLine, len(p.OverlayLines)),
	}
	copy(s.Nodes, p.OverlayNodes)
	copy(s.Lines, p.OverlayLines)
	return s
}

func (s Snapshot) restore(p *domain.Project) {
	p.OverlayNodes = s.Nodes
	p.OverlayLines = s.Lines
}

// EditLog is the two-stack undo/redo model over overlay snapshots. It also
// tracks the in-progress route gesture (first click placed, second click
// pending) so undo/redo can cancel it instead of completing a route against
// a different canvas.
type EditLog struct {
	undo []Snapshot
	redo []Snapshot

	routeStart *[2]float64
}

func NewEditLog() *EditLog {
	return &EditLog{}
}

// PushSnapshot records the current overlay state before a mutating edit.
// A new edit invalidates the redo branch.
func (l *EditLog) PushSnapshot(p *domain.Project) {
	l.undo = append(l.undo, capture(p))
	if len(l.undo) > HistoryLimit {
		l.undo = l.undo[1:]
	}
	l.redo = l.redo[:0]
}

// Undo restores the most recent snapshot, moving the current state to the
// redo stack. Returns false when there is nothing to undo.
func (l *EditLog) Undo(p *domain.Project) bool {
	if len(l.undo) == 0 {
		return false
	}
	top := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, capture(p))
	top.restore(p)
	l.routeStart = nil
	return true
}

// Redo is the symmetric inverse of Undo.
func (l *EditLog) Redo(p *domain.Project) bool {
	if len(l.redo) == 0 {
		return false
	}
	top := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, capture(p))
	top.restore(p)
	l.routeStart = nil
	return true
}

// UndoDepth returns the number of undoable snapshots.
func (l *EditLog) UndoDepth() int { return len(l.undo) }

// RedoDepth returns the number of redoable snapshots.
func (l *EditLog) RedoDepth() int { return len(l.redo) }

// Clear drops all history and any pending gesture, e.g. after loading a
// different project.
func (l *EditLog) Clear() {
	l.undo = nil
	l.redo = nil
	l.routeStart = nil
}

// BeginRoute records the first click of a line-routing gesture.
func (l *EditLog) BeginRoute(pos [2]float64) {
	p := pos
	l.routeStart = &p
}

// PendingRoute returns the recorded first click, or nil when no gesture is
// in progress.
func (l *EditLog) PendingRoute() *[2]float64 { return l.routeStart }

// CompleteRoute finishes the gesture: snapshots the current state, appends
// the line, and clears the pending click. Returns false when no gesture was
// in progress.
func (l *EditLog) CompleteRoute(p *domain.Project, end [2]float64) bool {
	if l.routeStart == nil {
		return false
	}
	start := *l.routeStart
	l.PushSnapshot(p)
	p.OverlayLines = append(p.OverlayLines, domain.OverlayLine{From: start, To: end})
	l.routeStart = nil
	return true
}
