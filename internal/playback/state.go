// internal/playback/state.go
package playback

// PlayMode selects what follows the current track.
type PlayMode int

const (
	ModeSequential PlayMode = iota
	ModeRandom
	ModeSingle
)

// String returns the persisted name of the mode.
func (m PlayMode) String() string {
	switch m {
	case ModeSequential:
		return "sequential"
	case ModeRandom:
		return "random"
	case ModeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the cycle
// sequential -> random -> single -> sequential.
func (m PlayMode) Next() PlayMode {
	switch m {
	case ModeSequential:
		return ModeRandom
	case ModeRandom:
		return ModeSingle
	default:
		return ModeSequential
	}
}

// ParsePlayMode maps a persisted name back to a mode.
func ParsePlayMode(s string) (PlayMode, bool) {
	switch s {
	case "sequential":
		return ModeSequential, true
	case "random":
		return ModeRandom, true
	case "single":
		return ModeSingle, true
	default:
		return ModeSequential, false
	}
}

// VisualizerMode is the audio visualizer style shown by front-ends.
type VisualizerMode string

const (
	VisualizerRing VisualizerMode = "ring"
	VisualizerBars VisualizerMode = "bars"
	VisualizerNone VisualizerMode = "none"
)

// Valid reports whether v is a known mode.
func (v VisualizerMode) Valid() bool {
	return v == VisualizerRing || v == VisualizerBars || v == VisualizerNone
}

const defaultVolume = 0.8
