package indicator

import (
	"log/slog"
	"time"

	"github.com/gen2brain/beeep"
)

// Indicator is the transient feedback surface: a desktop number flashed on
// screen after every switch, and notifications for failed operations.
type Indicator interface {
	ShowDesktop(index int)
	Notify(title, message string)
}

type Options struct {
	// Overlay toggles the on-screen desktop number.
	Overlay bool
	// Duration is how long the overlay stays up.
	Duration time.Duration
	// Notifications toggles failure notifications.
	Notifications bool
}

// New returns the platform indicator: a layered overlay window on Windows,
// plain notifications elsewhere.
func New(opts Options) Indicator {
	return newPlatform(opts)
}

// label renders the overlay text. Desktop 10 sits on the 0 key, so it is
// shown as "0" the way the chord reads.
func label(index int) string {
	if index == 10 {
		return "0"
	}
	return string(rune('0' + index))
}

type notifier struct {
	enabled bool
}

func (n notifier) Notify(title, message string) {
	if !n.enabled {
		return
	}
	if err := beeep.Alert(title, message, ""); err != nil {
		slog.Warn("[indicator] notification failed", "error", err)
	}
}
