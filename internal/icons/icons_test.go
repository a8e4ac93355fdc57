package icons

import "testing"

func TestInit(t *testing.T) {
	tests := []struct {
		style string
		want  Icons
	}{
		{"nerd", nerdIcons},
		{"unicode", unicodeIcons},
		{"none", noneIcons},
		{"", noneIcons},
		{"sparkles", noneIcons},
	}
	t.Cleanup(func() { Init("none") })

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			if Current() != tt.want {
				t.Errorf("Init(%q) selected %+v", tt.style, Current())
			}
		})
	}
}

func TestMode(t *testing.T) {
	Init("none")
	t.Cleanup(func() { Init("none") })

	tests := []struct {
		mode string
		want string
	}{
		{"sequential", "[R]"},
		{"random", "[S]"},
		{"single", "[1]"},
		{"unknown", "[R]"},
	}
	for _, tt := range tests {
		if got := Mode(tt.mode); got != tt.want {
			t.Errorf("Mode(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestTransport(t *testing.T) {
	Init("unicode")
	t.Cleanup(func() { Init("none") })

	if got := Transport(true); got != "▶" {
		t.Errorf("Transport(true) = %q", got)
	}
	if got := Transport(false); got != "⏸" {
		t.Errorf("Transport(false) = %q", got)
	}
}

func TestAllStylesComplete(t *testing.T) {
	for name, set := range map[string]Icons{"nerd": nerdIcons, "unicode": unicodeIcons, "none": noneIcons} {
		fields := []string{set.Play, set.Pause, set.Sequential, set.Shuffle, set.RepeatOne, set.Lyrics, set.Pin, set.Volume}
		for i, f := range fields {
			if f == "" {
				t.Errorf("%s: field %d is empty", name, i)
			}
		}
	}
}
