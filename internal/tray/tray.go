package tray

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/getlantern/systray"
)

// Dependencies are the callbacks the menu drives. All of them are invoked
// on systray's goroutine and must not block.
type Dependencies struct {
	OnSwitchDesktop func(index int)
	OnAbout         func()
	OnSetAutostart  func(enabled bool) bool // returns the resulting state
	AutostartState  func() bool
	OnExit          func()
}

type Manager struct {
	deps      Dependencies
	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
}

func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps, stop: make(chan struct{})}
}

func (m *Manager) Start() {
	m.startOnce.Do(func() {
		go systray.Run(m.onReady, m.onExit)
	})
}

// Stop can be reached from the tray Exit handler and the signal path at the
// same time.
func (m *Manager) Stop() {
	m.signalStop()
	systray.Quit()
}

func (m *Manager) signalStop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Manager) onReady() {
	systray.SetTitle("Dodo")
	systray.SetTooltip("Dodo Desktop Switcher")
	m.setTrayIcon()

	for i := 1; i <= 10; i++ {
		chord := fmt.Sprintf("Alt+%d", i%10)
		item := systray.AddMenuItem(
			fmt.Sprintf("Desktop %d (%s)", i, chord),
			fmt.Sprintf("Switch to desktop %d", i))
		go m.watchDesktopItem(item, i)
	}
	systray.AddSeparator()

	autostart := systray.AddMenuItemCheckbox(
		"Start with Windows", "Launch dodo at login", m.autostartState())
	itemAbout := systray.AddMenuItem("About", "Keyboard shortcuts")
	systray.AddSeparator()
	itemExit := systray.AddMenuItem("Exit", "Exit")

	go func() {
		for {
			select {
			case <-m.stop:
				return
			case <-autostart.ClickedCh:
				if m.deps.OnSetAutostart != nil {
					if m.deps.OnSetAutostart(!autostart.Checked()) {
						autostart.Check()
					} else {
						autostart.Uncheck()
					}
				}
			case <-itemAbout.ClickedCh:
				if m.deps.OnAbout != nil {
					m.deps.OnAbout()
				}
			case <-itemExit.ClickedCh:
				if m.deps.OnExit != nil {
					m.deps.OnExit()
				}
				m.Stop()
				return
			}
		}
	}()
}

func (m *Manager) onExit() {}

func (m *Manager) watchDesktopItem(item *systray.MenuItem, index int) {
	for {
		select {
		case <-m.stop:
			return
		case <-item.ClickedCh:
			if m.deps.OnSwitchDesktop != nil {
				m.deps.OnSwitchDesktop(index)
			}
		}
	}
}

func (m *Manager) autostartState() bool {
	if m.deps.AutostartState == nil {
		return false
	}
	return m.deps.AutostartState()
}

func (m *Manager) setTrayIcon() {
	exePath, err := os.Executable()
	if err != nil {
		return
	}

	exeDir := filepath.Dir(exePath)
	iconPaths := []string{
		filepath.Join(exeDir, "icon.ico"),
		filepath.Join(exeDir, "..", "icon.ico"),
	}
	for _, iconPath := range iconPaths {
		iconPath = filepath.Clean(iconPath)
		if _, err := os.Stat(iconPath); err == nil {
			iconData, err := os.ReadFile(iconPath)
			if err != nil {
				continue
			}
			systray.SetIcon(iconData)
			return
		}
	}
}
