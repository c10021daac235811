//go:build !windows

package hotkeys

import "errors"

// Manager is Windows-only; the chords target the Windows virtual desktop
// subsystem.
type Manager struct{}

func NewManager(d *Dispatcher) *Manager { return &Manager{} }

func (m *Manager) Start() (int, error) {
	return 0, errors.New("global hotkeys are only supported on Windows")
}

func (m *Manager) Stop() {}
