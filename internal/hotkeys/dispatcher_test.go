package hotkeys

import (
	"errors"
	"testing"
	"time"

	"dodo/internal/vd"
)

type recorderActions struct {
	switched []int
	moved    []int
	toggles  int
	pins     int

	err error
}

func (r *recorderActions) SwitchTo(index int) error {
	r.switched = append(r.switched, index)
	return r.err
}

func (r *recorderActions) MoveActiveWindowTo(index int) error {
	r.moved = append(r.moved, index)
	return r.err
}

func (r *recorderActions) ToggleToPrevious() error {
	r.toggles++
	return r.err
}

func (r *recorderActions) TogglePinActiveWindow() error {
	r.pins++
	return r.err
}

func TestDispatchRoutesEveryActionKind(t *testing.T) {
	rec := &recorderActions{}
	d := NewDispatcher(rec, nil)

	d.dispatch(Binding{Mods: ModAlt, Key: Key4, Action: ActionSwitch, Desktop: 4})
	d.dispatch(Binding{Mods: ModAlt | ModShift, Key: Key9, Action: ActionMoveWindow, Desktop: 9})
	d.dispatch(Binding{Mods: ModAlt, Key: KeyMinus, Action: ActionTogglePrevious})
	d.dispatch(Binding{Mods: ModAlt | ModShift, Key: KeyBacktick, Action: ActionTogglePin})

	if len(rec.switched) != 1 || rec.switched[0] != 4 {
		t.Errorf("switched = %v, want [4]", rec.switched)
	}
	if len(rec.moved) != 1 || rec.moved[0] != 9 {
		t.Errorf("moved = %v, want [9]", rec.moved)
	}
	if rec.toggles != 1 {
		t.Errorf("toggles = %d, want 1", rec.toggles)
	}
	if rec.pins != 1 {
		t.Errorf("pins = %d, want 1", rec.pins)
	}
}

func TestDispatchReportsActionFailures(t *testing.T) {
	rec := &recorderActions{err: vd.ErrSwitchFailed}
	var chords []string
	d := NewDispatcher(rec, func(chord string, err error) {
		chords = append(chords, chord)
	})

	d.dispatch(Binding{Mods: ModAlt, Key: Key2, Action: ActionSwitch, Desktop: 2})

	if len(chords) != 1 || chords[0] != "Alt+2" {
		t.Errorf("reported chords = %v, want [Alt+2]", chords)
	}
}

func TestDispatchSilencesNoActiveWindow(t *testing.T) {
	rec := &recorderActions{err: vd.ErrNoActiveWindow}
	reported := false
	d := NewDispatcher(rec, func(string, error) { reported = true })

	d.dispatch(Binding{Mods: ModAlt | ModShift, Key: Key1, Action: ActionMoveWindow, Desktop: 1})

	if reported {
		t.Error("no-active-window condition was surfaced to the user")
	}
	if len(rec.moved) != 1 {
		t.Errorf("moved = %v, want one attempt", rec.moved)
	}
}

func TestDispatchIgnoresWrappedNoActiveWindow(t *testing.T) {
	rec := &recorderActions{err: errors.Join(vd.ErrNoActiveWindow)}
	reported := false
	d := NewDispatcher(rec, func(string, error) { reported = true })

	d.dispatch(Binding{Mods: ModAlt | ModShift, Key: KeyBacktick, Action: ActionTogglePin})

	if reported {
		t.Error("wrapped no-active-window condition was surfaced to the user")
	}
}

type channelActions struct {
	recorderActions
	ch chan int
}

func (c *channelActions) SwitchTo(index int) error {
	c.ch <- index
	return nil
}

func TestRunDrainsEnqueuedEvents(t *testing.T) {
	rec := &channelActions{ch: make(chan int, 8)}
	d := NewDispatcher(rec, nil)

	done := make(chan struct{})
	go func() {
		d.Run()
		close(done)
	}()

	for i := 1; i <= 5; i++ {
		d.Enqueue(Binding{Mods: ModAlt, Key: Key0 + Key(i), Action: ActionSwitch, Desktop: i})
	}

	for i := 1; i <= 5; i++ {
		select {
		case idx := <-rec.ch:
			if idx != i {
				t.Fatalf("dispatch order: got %d, want %d", idx, i)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}

	d.Stop()
	<-done
}
