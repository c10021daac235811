// Package services assembles dodo's pieces: the desktop controller, the
// hotkey dispatch loop, the tray menu and the indicator.
package services

import (
	"fmt"
	"log/slog"
	"sync"

	"dodo/internal/autostart"
	"dodo/internal/config"
	"dodo/internal/hotkeys"
	"dodo/internal/indicator"
	"dodo/internal/tray"
	"dodo/internal/vd"
)

type Dependencies struct {
	// OnExit is invoked after the tray's Exit item has shut everything down.
	OnExit func()
}

type Services struct {
	deps Dependencies
	cfg  *config.Config

	ctrl *vd.Controller
	disp *hotkeys.Dispatcher
	hk   *hotkeys.Manager
	tr   *tray.Manager
	ind  indicator.Indicator

	stopOnce sync.Once
}

// New connects to the OS virtual desktop service and wires everything up.
// An unreachable desktop service is fatal; callers should exit non-zero.
func New(cfg *config.Config, deps Dependencies) (*Services, error) {
	osSvc, err := vd.NewService()
	if err != nil {
		return nil, fmt.Errorf("initialize Virtual Desktop Manager: %w", err)
	}

	ind := indicator.New(indicator.Options{
		Overlay:       cfg.Indicator.Enabled,
		Duration:      cfg.IndicatorDuration(),
		Notifications: cfg.Notifications.Enabled,
	})

	ctrl, err := vd.NewController(osSvc, config.MaxDesktops, ind.ShowDesktop)
	if err != nil {
		return nil, fmt.Errorf("initialize Virtual Desktop Manager: %w", err)
	}
	slog.Info("[dodo] Virtual Desktop Manager initialized", "current", ctrl.Current())

	s := &Services{deps: deps, cfg: cfg, ctrl: ctrl, ind: ind}
	s.disp = hotkeys.NewDispatcher(ctrl, func(chord string, err error) {
		ind.Notify("Dodo", fmt.Sprintf("%s failed: %v", chord, err))
	})
	s.hk = hotkeys.NewManager(s.disp)
	s.tr = tray.NewManager(tray.Dependencies{
		OnSwitchDesktop: func(index int) {
			s.disp.Enqueue(hotkeys.SwitchBinding(index))
		},
		OnAbout:        func() { ind.Notify("Dodo Desktop Switcher", aboutText) },
		OnSetAutostart: s.setAutostart,
		AutostartState: autostart.Installed,
		OnExit:         s.exit,
	})
	return s, nil
}

// Start brings up desktop bookkeeping, the dispatch loop, hotkeys and the
// tray. A partial hotkey table (chords held by other applications) is a
// warning, not a failure.
func (s *Services) Start() {
	if err := s.ctrl.EnsureMinimumDesktops(s.cfg.Desktops.Minimum); err != nil {
		slog.Error("[dodo] could not ensure desktop count", "want", s.cfg.Desktops.Minimum, "error", err)
		s.ind.Notify("Dodo", fmt.Sprintf("Could not create %d desktops: %v", s.cfg.Desktops.Minimum, err))
	}

	go s.disp.Run()

	registered, err := s.hk.Start()
	if err != nil {
		slog.Warn("[dodo] hotkeys unavailable", "error", err)
	} else if registered < len(hotkeys.DefaultBindings()) {
		s.ind.Notify("Dodo", fmt.Sprintf(
			"%d of %d shortcuts registered; another application may be using the rest",
			registered, len(hotkeys.DefaultBindings())))
	}

	s.tr.Start()
}

func (s *Services) Stop() {
	s.stopOnce.Do(func() {
		s.hk.Stop()
		s.disp.Stop()
		s.tr.Stop()
	})
}

func (s *Services) exit() {
	s.Stop()
	if s.deps.OnExit != nil {
		s.deps.OnExit()
	}
}

func (s *Services) setAutostart(enabled bool) bool {
	if enabled {
		created, err := autostart.Install()
		if err != nil {
			slog.Error("[dodo] autostart install failed", "error", err)
			s.ind.Notify("Dodo", fmt.Sprintf("Could not install autostart: %v", err))
		} else if created {
			slog.Info("[dodo] installed to startup")
		}
	} else {
		removed, err := autostart.Uninstall()
		if err != nil {
			slog.Error("[dodo] autostart uninstall failed", "error", err)
			s.ind.Notify("Dodo", fmt.Sprintf("Could not remove autostart: %v", err))
		} else if removed {
			slog.Info("[dodo] removed from startup")
		}
	}
	return autostart.Installed()
}

const aboutText = "Alt+1..9: switch to desktop 1-9 | " +
	"Alt+0: desktop 10 | " +
	"Alt+-: previous desktop | " +
	"Alt+Shift+1..9/0: move window | " +
	"Alt+Shift+`: pin window to all desktops"
