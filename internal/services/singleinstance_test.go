package services

import (
	"os"
	"runtime"
	"testing"
)

func TestInstanceLockExcludesSecondInstance(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signal-0 liveness probe is not reliable on windows")
	}
	t.Setenv("TMPDIR", t.TempDir())

	first := NewInstanceLock("dodo-test")
	if !first.TryLock() {
		t.Fatal("first instance could not acquire the lock")
	}
	defer first.Release()

	second := NewInstanceLock("dodo-test")
	if second.TryLock() {
		t.Error("second instance acquired the lock while the first holds it")
	}
}

func TestInstanceLockReclaimsStaleFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signal-0 liveness probe is not reliable on windows")
	}
	t.Setenv("TMPDIR", t.TempDir())

	lock := NewInstanceLock("dodo-test")
	// A lock file holding garbage instead of a live PID is stale.
	if err := os.WriteFile(lock.path, []byte("not-a-pid"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !lock.TryLock() {
		t.Error("stale lock file was not reclaimed")
	}
	lock.Release()
}

func TestInstanceLockReleaseAllowsReacquire(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signal-0 liveness probe is not reliable on windows")
	}
	t.Setenv("TMPDIR", t.TempDir())

	lock := NewInstanceLock("dodo-test")
	if !lock.TryLock() {
		t.Fatal("could not acquire the lock")
	}
	lock.Release()

	again := NewInstanceLock("dodo-test")
	if !again.TryLock() {
		t.Error("lock not reacquirable after release")
	}
	again.Release()
}
