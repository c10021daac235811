package vd

import (
	"fmt"
	"log/slog"
	"sync"
)

// Controller performs switch/move/pin operations against a Service while
// keeping the previous/current desktop pair consistent. The pair is the only
// state dodo owns; it is re-synchronized from the OS on every switch.
type Controller struct {
	svc Service
	max int

	// Tray clicks and hotkey events arrive on different goroutines.
	mu       sync.Mutex
	current  int
	previous int // 0 until the first successful switch

	onSwitch func(index int)
}

// NewController builds a controller over svc. max is the highest addressable
// desktop index. onSwitch is invoked after every visible-desktop request
// (including a switch to the already-active desktop) and may be nil.
func NewController(svc Service, max int, onSwitch func(index int)) (*Controller, error) {
	cur, err := svc.Current()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}
	return &Controller{svc: svc, max: max, current: cur, onSwitch: onSwitch}, nil
}

// Current returns the last observed active desktop index.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Previous returns the previously active desktop index, 0 if none yet.
func (c *Controller) Previous() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previous
}

// EnsureMinimumDesktops creates desktops until at least n exist. Existing
// desktops and their order are never touched; calling this when the count is
// already satisfied performs no mutation.
func (c *Controller) EnsureMinimumDesktops(n int) error {
	count, err := c.svc.Count()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}
	if count >= n {
		slog.Debug("[desktop] minimum desktop count satisfied", "have", count, "want", n)
		return nil
	}
	slog.Info("[desktop] creating additional desktops", "have", count, "want", n)
	for i := count; i < n; i++ {
		if err := c.svc.Create(); err != nil {
			return fmt.Errorf("create desktop %d: %w", i+1, err)
		}
	}
	return nil
}

// SwitchTo activates the desktop at index and records the departed desktop
// as previous. Switching to the already-active desktop changes nothing but
// still shows the indicator. On OS failure the previous/current pair is left
// untouched.
func (c *Controller) SwitchTo(index int) error {
	if index < 1 || index > c.max {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	c.mu.Lock()
	// The user can also switch natively (Win+Ctrl+arrow), so ask the OS
	// where we are before recording the departure desktop.
	if cur, err := c.svc.Current(); err == nil {
		c.current = cur
	} else {
		slog.Debug("[desktop] could not read active desktop, using last known", "error", err)
	}
	if index == c.current {
		c.mu.Unlock()
		c.notifySwitch(index)
		return nil
	}
	if err := c.svc.SwitchTo(index); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: desktop %d: %v", ErrSwitchFailed, index, err)
	}
	c.previous = c.current
	c.current = index
	slog.Debug("[desktop] switched", "current", c.current, "previous", c.previous)
	c.mu.Unlock()

	c.notifySwitch(index)
	return nil
}

// ToggleToPrevious flips back to the desktop that was active before the last
// switch. Two toggles in a row restore the starting point; with no previous
// desktop recorded yet this is a no-op and no OS call is made.
func (c *Controller) ToggleToPrevious() error {
	c.mu.Lock()
	target := c.previous
	c.mu.Unlock()

	if target == 0 {
		slog.Debug("[desktop] no previous desktop recorded")
		return nil
	}
	return c.SwitchTo(target)
}

// MoveActiveWindowTo sends the foreground window to the desktop at index.
// The active desktop, and therefore the previous/current pair, is unaffected.
func (c *Controller) MoveActiveWindowTo(index int) error {
	if index < 1 || index > c.max {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	hwnd, err := c.svc.ActiveWindow()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMoveFailed, err)
	}
	if hwnd == 0 {
		return ErrNoActiveWindow
	}
	if err := c.svc.MoveWindow(hwnd, index); err != nil {
		return fmt.Errorf("%w: desktop %d: %v", ErrMoveFailed, index, err)
	}
	slog.Debug("[desktop] moved window", "hwnd", hwnd, "desktop", index)
	return nil
}

// TogglePinActiveWindow flips the all-desktops pin state of the foreground
// window.
func (c *Controller) TogglePinActiveWindow() error {
	hwnd, err := c.svc.ActiveWindow()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPinFailed, err)
	}
	if hwnd == 0 {
		return ErrNoActiveWindow
	}
	pinned, err := c.svc.IsPinned(hwnd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPinFailed, err)
	}
	if err := c.svc.SetPinned(hwnd, !pinned); err != nil {
		return fmt.Errorf("%w: %v", ErrPinFailed, err)
	}
	slog.Debug("[desktop] toggled pin", "hwnd", hwnd, "pinned", !pinned)
	return nil
}

func (c *Controller) notifySwitch(index int) {
	if c.onSwitch != nil {
		c.onSwitch(index)
	}
}
