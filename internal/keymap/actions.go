package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionHelp   Action = "help"
	ActionReload Action = "reload"

	// Playback actions
	ActionPlayPause     Action = "play_pause"
	ActionNextTrack     Action = "next_track"
	ActionPrevTrack     Action = "prev_track"
	ActionSeekForward   Action = "seek_forward"
	ActionSeekBack      Action = "seek_back"
	ActionVolumeUp      Action = "volume_up"
	ActionVolumeDown    Action = "volume_down"
	ActionCyclePlayMode Action = "cycle_play_mode"

	// Player surface
	ActionToggleList      Action = "toggle_list"
	ActionToggleExpanded  Action = "toggle_expanded"
	ActionTogglePinned    Action = "toggle_pinned"
	ActionCycleVisualizer Action = "cycle_visualizer"

	// Track list
	ActionMoveUp       Action = "move_up"
	ActionMoveDown     Action = "move_down"
	ActionSelect       Action = "select"         // enter - play highlighted track
	ActionMoveItemUp   Action = "move_item_up"   // shift+k
	ActionMoveItemDown Action = "move_item_down" // shift+j
)
