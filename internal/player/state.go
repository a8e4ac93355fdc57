// internal/player/state.go
package player

// State represents the device state machine.
//
//	Idle ──load──▶ Loading ──ready──▶ Paused ◀──pause── Playing
//	                  │                  │  ──play──▶      │
//	                  └──error──▶ Failed                  end
//	                                                       ▼
//	                                         Ended ──play/seek──▶ Playing/Paused
//
// Load from any state returns to Loading (or Idle for an empty url).
type State int

const (
	Idle State = iota
	Loading
	Paused
	Playing
	Ended
	Failed
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Loading:
		return "Loading"
	case Paused:
		return "Paused"
	case Playing:
		return "Playing"
	case Ended:
		return "Ended"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// HasSource returns true if a decoded resource is attached.
func (s State) HasSource() bool {
	return s == Paused || s == Playing || s == Ended
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing || s == Loading
}
