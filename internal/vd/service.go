package vd

import "errors"

// Service is the capability surface of the OS virtual desktop subsystem.
// Desktop indices are 1-based ordinals as reported by the OS; the OS owns
// the ordering and may shuffle it if desktops are removed externally.
type Service interface {
	// Count returns how many virtual desktops currently exist.
	Count() (int, error)
	// Create appends a new virtual desktop after the existing ones.
	Create() error
	// Current returns the 1-based index of the active desktop.
	Current() (int, error)
	// SwitchTo makes the desktop at index the active one.
	SwitchTo(index int) error
	// ActiveWindow returns the foreground window handle, 0 if there is none.
	ActiveWindow() (uintptr, error)
	// MoveWindow places the window on the desktop at index.
	MoveWindow(hwnd uintptr, index int) error
	// IsPinned reports whether the window is shown on every desktop.
	IsPinned(hwnd uintptr) (bool, error)
	// SetPinned pins or unpins the window on all desktops.
	SetPinned(hwnd uintptr, pinned bool) error
}

var (
	// ErrPlatformUnavailable means the virtual desktop service could not be
	// reached at all. Fatal at startup.
	ErrPlatformUnavailable = errors.New("virtual desktop service unavailable")

	// ErrInvalidIndex means a desktop index outside [1, max]. With the fixed
	// binding table this is a logic fault, not a user condition.
	ErrInvalidIndex = errors.New("desktop index out of range")

	// ErrNoActiveWindow means there is no foreground window to act on.
	ErrNoActiveWindow = errors.New("no active window")

	ErrSwitchFailed = errors.New("desktop switch failed")
	ErrMoveFailed   = errors.New("window move failed")
	ErrPinFailed    = errors.New("window pin failed")
)
