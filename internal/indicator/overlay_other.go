//go:build !windows

package indicator

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
)

// plain has no overlay to draw; the desktop number goes out as a
// notification instead.
type plain struct {
	notifier
	overlay bool
}

func newPlatform(opts Options) Indicator {
	return &plain{notifier: notifier{enabled: opts.Notifications}, overlay: opts.Overlay}
}

func (p *plain) ShowDesktop(index int) {
	if !p.overlay {
		return
	}
	if err := beeep.Notify("Dodo", fmt.Sprintf("Desktop %d", index), ""); err != nil {
		slog.Warn("[indicator] desktop notification failed", "error", err)
	}
}
