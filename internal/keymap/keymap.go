// Package keymap defines key bindings and action dispatch for the player.
package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "player", "list"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionReload, []string{"ctrl+r"}, "Reload playlist", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5%", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5%", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionCyclePlayMode, []string{"m"}, "Cycle play mode", "playback"},

	// Player surface
	{ActionToggleList, []string{"tab"}, "Toggle track list", "player"},
	{ActionToggleExpanded, []string{"e"}, "Expand/collapse player", "player"},
	{ActionTogglePinned, []string{"P"}, "Pin player", "player"},
	{ActionCycleVisualizer, []string{"v"}, "Cycle visualizer", "player"},

	// Track list
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionSelect, []string{"enter"}, "Play track", "list"},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move track up", "list"},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move track down", "list"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
