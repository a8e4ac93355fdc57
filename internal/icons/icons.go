// Package icons picks the glyphs used by the player for its transport and
// play-mode indicators.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play       string
	Pause      string
	Sequential string
	Shuffle    string
	RepeatOne  string
	Lyrics     string
	Pin        string
	Volume     string
}

var (
	nerdIcons = Icons{
		Play:       "\uf04b", // nf-fa-play
		Pause:      "\uf04c", // nf-fa-pause
		Sequential: "󰑖",      // nf-md-repeat
		Shuffle:    "󰒟",      // nf-md-shuffle
		RepeatOne:  "󰑘",      // nf-md-repeat_once
		Lyrics:     "󰍬",      // nf-md-microphone
		Pin:        "󰐃",      // nf-md-pin
		Volume:     "󰕾",      // nf-md-volume_high
	}

	unicodeIcons = Icons{
		Play:       "▶",
		Pause:      "⏸",
		Sequential: "🔁",
		Shuffle:    "🔀",
		RepeatOne:  "🔂",
		Lyrics:     "♪",
		Pin:        "📌",
		Volume:     "🔊",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Sequential: "[R]",
		Shuffle:    "[S]",
		RepeatOne:  "[1]",
		Lyrics:     "~",
		Pin:        "^",
		Volume:     "vol",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init selects the icon set. Unknown styles fall back to plain ASCII.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Current returns the active icon set.
func Current() Icons {
	return current
}

// Transport returns the play or pause glyph.
func Transport(playing bool) string {
	if playing {
		return current.Play
	}
	return current.Pause
}

// Mode returns the glyph for a play mode name as persisted:
// "sequential", "random" or "single".
func Mode(name string) string {
	switch name {
	case "random":
		return current.Shuffle
	case "single":
		return current.RepeatOne
	default:
		return current.Sequential
	}
}
