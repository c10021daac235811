package hotkeys

import "testing"

func TestDefaultBindingsCoverTheFullTable(t *testing.T) {
	bindings := DefaultBindings()
	if len(bindings) != 22 {
		t.Fatalf("binding count = %d, want 22", len(bindings))
	}

	type chord struct {
		mods Modifier
		key  Key
	}
	seen := map[chord]Binding{}
	switchTargets := map[int]bool{}
	moveTargets := map[int]bool{}

	for _, b := range bindings {
		c := chord{b.Mods, b.Key}
		if prev, dup := seen[c]; dup {
			t.Errorf("chord %s bound twice: %+v and %+v", b, prev, b)
		}
		seen[c] = b

		switch b.Action {
		case ActionSwitch:
			switchTargets[b.Desktop] = true
			if b.Mods != ModAlt {
				t.Errorf("switch chord %s has modifiers %#x, want Alt only", b, b.Mods)
			}
		case ActionMoveWindow:
			moveTargets[b.Desktop] = true
			if b.Mods != ModAlt|ModShift {
				t.Errorf("move chord %s has modifiers %#x, want Alt+Shift", b, b.Mods)
			}
		}
	}

	for i := 1; i <= 10; i++ {
		if !switchTargets[i] {
			t.Errorf("no switch chord for desktop %d", i)
		}
		if !moveTargets[i] {
			t.Errorf("no move chord for desktop %d", i)
		}
	}
}

func TestDesktopTenSitsOnTheZeroKey(t *testing.T) {
	for _, b := range DefaultBindings() {
		if b.Desktop == 10 && b.Key != Key0 {
			t.Errorf("desktop 10 chord %s uses key %#x, want the 0 key", b, b.Key)
		}
		if b.Desktop >= 1 && b.Desktop <= 9 && b.Key != Key0+Key(b.Desktop) {
			t.Errorf("desktop %d chord %s uses key %#x", b.Desktop, b, b.Key)
		}
	}
}

func TestBindingString(t *testing.T) {
	tests := []struct {
		b    Binding
		want string
	}{
		{Binding{Mods: ModAlt, Key: Key3, Action: ActionSwitch, Desktop: 3}, "Alt+3"},
		{Binding{Mods: ModAlt, Key: Key0, Action: ActionSwitch, Desktop: 10}, "Alt+0"},
		{Binding{Mods: ModAlt, Key: KeyMinus, Action: ActionTogglePrevious}, "Alt+-"},
		{Binding{Mods: ModAlt | ModShift, Key: Key7, Action: ActionMoveWindow, Desktop: 7}, "Alt+Shift+7"},
		{Binding{Mods: ModAlt | ModShift, Key: KeyBacktick, Action: ActionTogglePin}, "Alt+Shift+`"},
		{Binding{Mods: ModCtrl | ModWin, Key: Key1}, "Ctrl+Win+1"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
