package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cardsmith/internal/selection"
)

type fakeTarget struct {
	sel     selection.Set
	undos   int
	redos   int
	deletes int
	nudges  [][2]float64
}

func (f *fakeTarget) Selection() selection.Set { return f.sel }
func (f *fakeTarget) Undo() bool               { f.undos++; return true }
func (f *fakeTarget) Redo() bool               { f.redos++; return true }

func (f *fakeTarget) DeleteSelection() int {
	f.deletes++
	n := len(f.sel)
	f.sel = nil
	return n
}

func (f *fakeTarget) NudgeSelection(dx, dy float64) bool {
	f.nudges = append(f.nudges, [2]float64{dx, dy})
	return true
}

func TestRouter_Bindings(t *testing.T) {
	tests := []struct {
		key        string
		wantAction Action
		wantUndo   int
		wantRedo   int
		wantDelete int
		wantNudge  [][2]float64
	}{
		{key: "ctrl+z", wantAction: ActionUndo, wantUndo: 1},
		{key: "ctrl+shift+z", wantAction: ActionRedo, wantRedo: 1},
		{key: "ctrl+y", wantAction: ActionRedo, wantRedo: 1},
		{key: "delete", wantAction: ActionDelete, wantDelete: 1},
		{key: "backspace", wantAction: ActionDelete, wantDelete: 1},
		{key: "up", wantAction: ActionNudge, wantNudge: [][2]float64{{0, -1}}},
		{key: "right", wantAction: ActionNudge, wantNudge: [][2]float64{{1, 0}}},
		{key: "shift+down", wantAction: ActionNudge, wantNudge: [][2]float64{{0, 10}}},
		{key: "shift+left", wantAction: ActionNudge, wantNudge: [][2]float64{{-10, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			target := &fakeTarget{sel: selection.Set{"a"}}
			r := NewRouter(target, DefaultKeyMap())

			action, handled := r.Handle(KeyEvent{Key: tt.key})

			assert.True(t, handled)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantUndo, target.undos)
			assert.Equal(t, tt.wantRedo, target.redos)
			assert.Equal(t, tt.wantDelete, target.deletes)
			assert.Equal(t, tt.wantNudge, target.nudges)
		})
	}
}

func TestRouter_IgnoresTextInputFocus(t *testing.T) {
	target := &fakeTarget{sel: selection.Set{"a"}}
	r := NewRouter(target, DefaultKeyMap())

	for _, k := range []string{"ctrl+z", "ctrl+y", "backspace", "delete", "left", "shift+up"} {
		action, handled := r.Handle(KeyEvent{Key: k, Focus: FocusTextInput})
		assert.False(t, handled, k)
		assert.Equal(t, ActionNone, action, k)
	}
	assert.Zero(t, target.undos+target.redos+target.deletes)
	assert.Empty(t, target.nudges)
}

func TestRouter_ReadsStateAtEventTime(t *testing.T) {
	target := &fakeTarget{}
	r := NewRouter(target, DefaultKeyMap())

	_, handled := r.Handle(KeyEvent{Key: "left"})
	assert.False(t, handled, "nothing selected yet")

	target.sel = selection.Set{"a", "b"}
	_, handled = r.Handle(KeyEvent{Key: "left"})
	assert.True(t, handled)
	assert.Len(t, target.nudges, 1)

	_, handled = r.Handle(KeyEvent{Key: "delete"})
	assert.True(t, handled)
	_, handled = r.Handle(KeyEvent{Key: "delete"})
	assert.False(t, handled, "selection was cleared by the delete")
	assert.Equal(t, 1, target.deletes)
}

func TestRouter_UnknownKeysPassThrough(t *testing.T) {
	target := &fakeTarget{sel: selection.Set{"a"}}
	r := NewRouter(target, DefaultKeyMap())

	action, handled := r.Handle(KeyEvent{Key: "x"})
	assert.False(t, handled)
	assert.Equal(t, ActionNone, action)
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()
	assert.NotEmpty(t, km.ShortHelp())
	assert.Len(t, km.FullHelp(), 2)
	assert.Equal(t, "undo", km.Undo.Help().Desc)
}
