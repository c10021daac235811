//go:build !windows

package autostart

import "errors"

func Install() (created bool, err error) {
	return false, errors.New("autostart is only supported on Windows")
}
