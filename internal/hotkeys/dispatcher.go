package hotkeys

import (
	"errors"
	"log/slog"
	"sync"

	"dodo/internal/vd"
)

// Actions is the controller surface the dispatcher drives.
type Actions interface {
	SwitchTo(index int) error
	ToggleToPrevious() error
	MoveActiveWindowTo(index int) error
	TogglePinActiveWindow() error
}

// Dispatcher funnels chord events from every source (hotkey listeners, tray
// menu clicks) into one buffered channel drained by a single loop, so
// controller calls are never re-entrant.
type Dispatcher struct {
	actions Actions
	onError func(chord string, err error)

	ch     chan Binding
	stopCh chan struct{}
	once   sync.Once
}

// NewDispatcher builds a dispatcher over actions. onError receives
// user-visible action failures and may be nil.
func NewDispatcher(actions Actions, onError func(chord string, err error)) *Dispatcher {
	return &Dispatcher{
		actions: actions,
		onError: onError,
		ch:      make(chan Binding, 64),
		stopCh:  make(chan struct{}),
	}
}

// Enqueue hands a chord event to the dispatch loop. Never blocks; events
// past the buffer are dropped.
func (d *Dispatcher) Enqueue(b Binding) {
	select {
	case d.ch <- b:
	default:
		slog.Debug("[hotkey] event dropped, dispatch queue full", "chord", b.String())
	}
}

// Run drains the event channel until Stop. Meant to own its goroutine.
func (d *Dispatcher) Run() {
	for {
		select {
		case <-d.stopCh:
			return
		case b := <-d.ch:
			d.dispatch(b)
		}
	}
}

func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		close(d.stopCh)
	})
}

func (d *Dispatcher) dispatch(b Binding) {
	var err error
	switch b.Action {
	case ActionSwitch:
		err = d.actions.SwitchTo(b.Desktop)
	case ActionMoveWindow:
		err = d.actions.MoveActiveWindowTo(b.Desktop)
	case ActionTogglePrevious:
		err = d.actions.ToggleToPrevious()
	case ActionTogglePin:
		err = d.actions.TogglePinActiveWindow()
	default:
		slog.Debug("[hotkey] unbound event ignored", "chord", b.String())
		return
	}

	if err == nil {
		return
	}
	// Pressing a window chord with nothing focused is an expected condition.
	if errors.Is(err, vd.ErrNoActiveWindow) {
		slog.Debug("[hotkey] no active window", "chord", b.String())
		return
	}
	slog.Warn("[hotkey] action failed", "chord", b.String(), "error", err)
	if d.onError != nil {
		d.onError(b.String(), err)
	}
}
