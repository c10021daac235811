package services

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"
)

// InstanceLock keeps a second dodo from starting; two processes would race
// over the same hotkey registrations and both end up with a partial table.
type InstanceLock struct {
	file *os.File
	path string
}

func NewInstanceLock(appName string) *InstanceLock {
	return &InstanceLock{
		path: filepath.Join(os.TempDir(), appName+".lock"),
	}
}

// TryLock acquires the lock, reclaiming it from a stale file whose owning
// process is gone. Returns false when another dodo is running.
func (l *InstanceLock) TryLock() bool {
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return l.reclaimStale()
		}
		return false
	}

	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		file.Close()
		os.Remove(l.path)
		return false
	}
	l.file = file
	return true
}

func (l *InstanceLock) reclaimStale() bool {
	data, err := os.ReadFile(l.path)
	if err != nil {
		os.Remove(l.path)
		return l.TryLock()
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil || !processRunning(pid) {
		os.Remove(l.path)
		return l.TryLock()
	}
	return false
}

func processRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}

func (l *InstanceLock) Release() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if l.path != "" {
		os.Remove(l.path)
	}
}
