package autostart

import (
	"os"
	"path/filepath"
	"testing"
)

func TestShortcutPathDerivesFromAppData(t *testing.T) {
	t.Setenv("APPDATA", filepath.Join("C:", "Users", "dodo", "AppData", "Roaming"))

	path, err := ShortcutPath()
	if err != nil {
		t.Fatalf("ShortcutPath: %v", err)
	}
	want := filepath.Join("C:", "Users", "dodo", "AppData", "Roaming",
		"Microsoft", "Windows", "Start Menu", "Programs", "Startup", "Dodo.lnk")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestShortcutPathWithoutAppData(t *testing.T) {
	t.Setenv("APPDATA", "")
	if _, err := ShortcutPath(); err == nil {
		t.Error("expected an error with APPDATA unset")
	}
}

func TestInstalledAndUninstall(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APPDATA", dir)

	if Installed() {
		t.Fatal("Installed() = true before any shortcut exists")
	}

	// Uninstalling nothing is not an error, just a no-op.
	removed, err := Uninstall()
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if removed {
		t.Error("Uninstall removed a shortcut that was never there")
	}

	path, err := ShortcutPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("lnk"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !Installed() {
		t.Error("Installed() = false with the shortcut present")
	}

	removed, err = Uninstall()
	if err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if !removed {
		t.Error("Uninstall did not report removal")
	}
	if Installed() {
		t.Error("shortcut survived Uninstall")
	}
}
