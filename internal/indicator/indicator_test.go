package indicator

import "testing"

func TestLabelShowsZeroForDesktopTen(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{1, "1"},
		{5, "5"},
		{9, "9"},
		{10, "0"},
	}
	for _, tt := range tests {
		if got := label(tt.index); got != tt.want {
			t.Errorf("label(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestDisabledNotifierIsSilent(t *testing.T) {
	// Must not reach the OS notification daemon when disabled.
	n := notifier{enabled: false}
	n.Notify("Dodo", "should not appear")
}
