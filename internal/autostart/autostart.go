// Package autostart manages the Startup-folder shortcut that launches dodo
// at login. The only state is the shortcut file itself.
package autostart

import (
	"errors"
	"os"
	"path/filepath"
)

const shortcutName = "Dodo.lnk"

var errNoStartupFolder = errors.New("startup folder not found (APPDATA unset)")

// ShortcutPath returns where the startup shortcut lives:
// %APPDATA%\Microsoft\Windows\Start Menu\Programs\Startup\Dodo.lnk.
func ShortcutPath() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", errNoStartupFolder
	}
	return filepath.Join(appData, "Microsoft", "Windows",
		"Start Menu", "Programs", "Startup", shortcutName), nil
}

// Installed reports whether the startup shortcut exists.
func Installed() bool {
	path, err := ShortcutPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Uninstall removes the startup shortcut. Removing an absent shortcut
// reports false with no error.
func Uninstall() (removed bool, err error) {
	path, err := ShortcutPath()
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
