package hotkeys

import "strings"

// Modifier is a chord modifier bit set.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModShift
	ModCtrl
	ModWin
)

// Key is a Windows virtual-key code. The binding table only uses the digit
// row: 0-9, the minus key and the backtick key.
type Key uint16

const (
	Key0 Key = 0x30 + iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

const (
	KeyMinus    Key = 0xBD // VK_OEM_MINUS
	KeyBacktick Key = 0xC0 // VK_OEM_3
)

// ActionKind is the logical operation a chord maps to.
type ActionKind int

const (
	ActionSwitch ActionKind = iota
	ActionMoveWindow
	ActionTogglePrevious
	ActionTogglePin
)

// Binding maps a chord to an action. Desktop is the 1-based target for
// switch and move actions, 0 for the rest.
type Binding struct {
	Mods    Modifier
	Key     Key
	Action  ActionKind
	Desktop int
}

func (b Binding) String() string {
	var sb strings.Builder
	if b.Mods&ModCtrl != 0 {
		sb.WriteString("Ctrl+")
	}
	if b.Mods&ModWin != 0 {
		sb.WriteString("Win+")
	}
	if b.Mods&ModAlt != 0 {
		sb.WriteString("Alt+")
	}
	if b.Mods&ModShift != 0 {
		sb.WriteString("Shift+")
	}
	sb.WriteString(keyName(b.Key))
	return sb.String()
}

func keyName(k Key) string {
	switch {
	case k >= Key0 && k <= Key9:
		return string(rune('0' + (k - Key0)))
	case k == KeyMinus:
		return "-"
	case k == KeyBacktick:
		return "`"
	}
	return "?"
}

// DefaultBindings is the fixed table: Alt+1..9 and Alt+0 switch to desktops
// 1-10, Alt+- flips to the previous desktop, the Shift variants move the
// active window instead, and Alt+Shift+` toggles the all-desktops pin.
func DefaultBindings() []Binding {
	bindings := make([]Binding, 0, 22)
	for i := 1; i <= 10; i++ {
		key := Key0 + Key(i%10) // desktop 10 sits on the 0 key
		bindings = append(bindings,
			Binding{Mods: ModAlt, Key: key, Action: ActionSwitch, Desktop: i},
			Binding{Mods: ModAlt | ModShift, Key: key, Action: ActionMoveWindow, Desktop: i},
		)
	}
	bindings = append(bindings,
		Binding{Mods: ModAlt, Key: KeyMinus, Action: ActionTogglePrevious},
		Binding{Mods: ModAlt | ModShift, Key: KeyBacktick, Action: ActionTogglePin},
	)
	return bindings
}

// SwitchBinding returns the table's switch chord for a desktop. Used by the
// tray menu so its clicks flow through the same dispatch queue as key
// presses.
func SwitchBinding(desktop int) Binding {
	return Binding{
		Mods:    ModAlt,
		Key:     Key0 + Key(desktop%10),
		Action:  ActionSwitch,
		Desktop: desktop,
	}
}
