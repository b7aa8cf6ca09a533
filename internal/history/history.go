// Package history keeps bounded undo/redo stacks of whole-document
// snapshots.
package history

import "cardsmith/internal/card"

// DefaultDepth is the number of undo steps kept.
const DefaultDepth = 20

// Notifier receives the user-visible message for an undo or redo.
type Notifier func(message string)

// Manager records a snapshot of the document before each mutating action.
// History is linear: recording a new action discards the redo stack.
type Manager struct {
	past   []card.Document // oldest first
	future []card.Document // next redo first
	depth  int
	notify Notifier
}

// New returns a manager keeping at most depth undo steps. A non-positive
// depth means DefaultDepth.
func New(depth int, notify Notifier) *Manager {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Manager{depth: depth, notify: notify}
}

// BeginInteraction snapshots current onto the undo stack and clears the
// redo stack. When the stack is full the oldest snapshot is dropped.
func (m *Manager) BeginInteraction(current card.Document) {
	m.past = append(m.past, current.Clone())
	if over := len(m.past) - m.depth; over > 0 {
		m.past = append(m.past[:0:0], m.past[over:]...)
	}
	m.future = nil
}

// Undo returns the most recent snapshot and moves current onto the redo
// stack. It reports false, and changes nothing, when there is nothing to
// undo.
func (m *Manager) Undo(current card.Document) (card.Document, bool) {
	if len(m.past) == 0 {
		return current, false
	}
	prev := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append([]card.Document{current.Clone()}, m.future...)
	m.emit("Undo")
	return prev.Clone(), true
}

// Redo is the mirror of Undo.
func (m *Manager) Redo(current card.Document) (card.Document, bool) {
	if len(m.future) == 0 {
		return current, false
	}
	next := m.future[0]
	m.future = m.future[1:]
	m.past = append(m.past, current.Clone())
	m.emit("Redo")
	return next.Clone(), true
}

func (m *Manager) CanUndo() bool { return len(m.past) > 0 }

func (m *Manager) CanRedo() bool { return len(m.future) > 0 }

// Past is the number of undo steps available.
func (m *Manager) Past() int { return len(m.past) }

// Future is the number of redo steps available.
func (m *Manager) Future() int { return len(m.future) }

func (m *Manager) Depth() int { return m.depth }

// Reset forgets all history.
func (m *Manager) Reset() {
	m.past = nil
	m.future = nil
}

func (m *Manager) emit(message string) {
	if m.notify != nil {
		m.notify(message)
	}
}
