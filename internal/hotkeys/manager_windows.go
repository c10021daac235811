//go:build windows

package hotkeys

import (
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// Manager registers the binding table as system-wide hotkeys. Each chord is
// registered on its own; a chord already claimed by another application is
// reported and skipped while the rest stay active.
type Manager struct {
	d *Dispatcher

	mu         sync.Mutex
	registered []*hotkey.Hotkey
	stopCh     chan struct{}
	once       sync.Once
}

func NewManager(d *Dispatcher) *Manager {
	return &Manager{d: d, stopCh: make(chan struct{})}
}

// Start registers every chord in the table and begins forwarding presses to
// the dispatcher. Only a fully failed registration (zero chords) is an
// error to the caller.
func (m *Manager) Start() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range DefaultBindings() {
		hk := hotkey.New(platformMods(b.Mods), hotkey.Key(b.Key))
		if err := hk.Register(); err != nil {
			slog.Warn("[hotkey] registration failed, chord left to its current owner",
				"chord", b.String(), "error", err)
			continue
		}
		m.registered = append(m.registered, hk)
		go m.listen(hk, b)
		slog.Debug("[hotkey] registered", "chord", b.String())
	}

	slog.Info("[hotkey] registration complete",
		"registered", len(m.registered), "total", len(DefaultBindings()))
	return len(m.registered), nil
}

func (m *Manager) Stop() {
	m.once.Do(func() {
		close(m.stopCh)
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, hk := range m.registered {
		_ = hk.Unregister()
	}
	m.registered = nil
}

func (m *Manager) listen(hk *hotkey.Hotkey, b Binding) {
	for {
		select {
		case <-m.stopCh:
			return
		case <-hk.Keydown():
			m.d.Enqueue(b)
		}
	}
}

func platformMods(mods Modifier) []hotkey.Modifier {
	var out []hotkey.Modifier
	if mods&ModAlt != 0 {
		out = append(out, hotkey.ModAlt)
	}
	if mods&ModShift != 0 {
		out = append(out, hotkey.ModShift)
	}
	if mods&ModCtrl != 0 {
		out = append(out, hotkey.ModCtrl)
	}
	if mods&ModWin != 0 {
		out = append(out, hotkey.ModWin)
	}
	return out
}
