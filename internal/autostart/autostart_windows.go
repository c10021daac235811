//go:build windows

package autostart

import (
	"fmt"
	"os"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// Install drops Dodo.lnk into the Startup folder, pointing at the running
// executable. Installing over an existing shortcut reports false and leaves
// it untouched.
func Install() (created bool, err error) {
	path, err := ShortcutPath()
	if err != nil {
		return false, err
	}
	if Installed() {
		return false, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve executable: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	if err := ole.CoInitialize(0); err != nil {
		oleErr, ok := err.(*ole.OleError)
		const sFalse = 0x00000001
		if !ok || oleErr.Code() != sFalse {
			return false, fmt.Errorf("CoInitialize: %w", err)
		}
	}

	obj, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return false, fmt.Errorf("WScript.Shell: %w", err)
	}
	defer obj.Release()

	shell, err := obj.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return false, fmt.Errorf("WScript.Shell dispatch: %w", err)
	}
	defer shell.Release()

	cs, err := oleutil.CallMethod(shell, "CreateShortcut", path)
	if err != nil {
		return false, fmt.Errorf("CreateShortcut: %w", err)
	}
	shortcut := cs.ToIDispatch()
	defer shortcut.Release()

	if _, err := oleutil.PutProperty(shortcut, "TargetPath", exe); err != nil {
		return false, fmt.Errorf("set TargetPath: %w", err)
	}
	if home != "" {
		if _, err := oleutil.PutProperty(shortcut, "WorkingDirectory", home); err != nil {
			return false, fmt.Errorf("set WorkingDirectory: %w", err)
		}
	}
	if _, err := oleutil.PutProperty(shortcut, "Description", "Dodo Desktop Switcher"); err != nil {
		return false, fmt.Errorf("set Description: %w", err)
	}
	if _, err := oleutil.CallMethod(shortcut, "Save"); err != nil {
		return false, fmt.Errorf("save shortcut: %w", err)
	}
	return true, nil
}
